// Package domain holds DTOs for mail http and service contracts
package domain

// CandidateResult is one ranked candidate rendered into the mail body
type CandidateResult struct {
	Name          string  `json:"name"`
	Score         float64 `json:"score"`
	Email         string  `json:"email,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	Justification string  `json:"justification,omitempty"`
}

// MailRequest is the dispatch input
type MailRequest struct {
	To      string            `json:"to" validate:"required,email"`
	Subject string            `json:"subject"`
	Results []CandidateResult `json:"results" validate:"required,min=1,dive"`
}

// MailReceipt confirms delivery
type MailReceipt struct {
	Message string `json:"message"`
}
