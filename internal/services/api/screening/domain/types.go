// Package domain holds DTOs for screening http and service contracts
package domain

import "encoding/json"

// SourceServiceNow is the routing hint that turns on record sync
const SourceServiceNow = "servicenow"

// ResumeFile is one uploaded resume, forwarded to scoring verbatim
type ResumeFile struct {
	Filename string
	Content  []byte
}

// SubmissionRequest is the caller input, immutable once handed to Submit
// Resumes arrive as multipart file parts, not JSON
type SubmissionRequest struct {
	JobTitle          string `json:"job_title"`
	JobType           string `json:"job_type"`
	YearsOfExperience string `json:"years_of_experience"`
	Industry          string `json:"industry"`
	Email             string `json:"email"`
	RequiredSkills    string `json:"required_skills"`
	JobDescription    string `json:"job_description"`

	// Source carries the external routing hint, sync runs only for "servicenow"
	Source string `json:"source,omitempty"`

	// CaseID optionally pins the sync record to an externally issued case
	// when empty the scoring service's case id is used
	CaseID string `json:"case_id,omitempty"`

	Resumes []ResumeFile `json:"-"`
}

// Status is the terminal state of a submission
type Status string

// Terminal states
const (
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
	StatusFailed    Status = "failed"
)

// Pipeline stages, reported on rejection and failure
const (
	StageReceived  = "received"
	StageValidated = "validated"
	StageQuota     = "quota_reserved"
	StageScored    = "scored"
	StageSynced    = "synced"
)

// SyncOutcome annotates a completed submission with what record sync did
// a failed sync fills Error and leaves the rest zero
type SyncOutcome struct {
	Action string `json:"action,omitempty"`
	SysID  string `json:"sys_id,omitempty"`
	Number string `json:"number,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Outcome is the discriminated result reported to the caller
type Outcome struct {
	SubmissionID     string          `json:"submission_id"`
	Status           Status          `json:"status"`
	Stage            string          `json:"stage,omitempty"`
	Reason           string          `json:"reason,omitempty"`
	CaseID           string          `json:"case_id,omitempty"`
	CreditsRemaining int             `json:"credits_remaining"`
	Results          json.RawMessage `json:"results,omitempty"`
	Sync             *SyncOutcome    `json:"sync,omitempty"`
}

// ValidateQuery proxies the domain check for UI preflight
type ValidateQuery struct {
	Email string `json:"email" validate:"required,email"`
}

// ValidateRow is the preflight verdict
type ValidateRow struct {
	Authorized bool   `json:"authorized"`
	Reason     string `json:"reason,omitempty"`
}
