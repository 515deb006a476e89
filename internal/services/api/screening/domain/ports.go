package domain

import (
	"context"
	"encoding/json"
)

// ServicePort is the interface implemented by the screening service
type ServicePort interface {
	// Submit runs the full pipeline and always returns a terminal Outcome
	// transport level failures are folded into the outcome, not returned
	Submit(ctx context.Context, req SubmissionRequest) Outcome

	// ValidateEmail proxies the domain authorization check
	ValidateEmail(ctx context.Context, email string) (ValidateRow, error)
}

// Decision is a domain validator verdict
type Decision struct {
	Authorized bool
	Reason     string
}

// ValidatorPort authorizes a submitting email's domain
type ValidatorPort interface {
	Validate(ctx context.Context, email string) (Decision, error)
}

// ScorePayload is the job metadata handed to the scoring service
type ScorePayload struct {
	OrgID          int
	JobTitle       string
	ExeName        string
	JobDescription string
}

// ScoreResult is the scoring verdict, Raw is the full result payload
type ScoreResult struct {
	CaseID string
	Raw    json.RawMessage
}

// ScorerPort invokes the external scoring workflow
type ScorerPort interface {
	Score(ctx context.Context, p ScorePayload, resumes []ResumeFile) (ScoreResult, error)
}
