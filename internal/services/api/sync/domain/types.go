// Package domain holds DTOs for sync http and service contracts
package domain

import "encoding/json"

// Action is the branch the upsert took
type Action string

// Upsert branches
const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// Fields is the full record payload written on every sync
// optional fields default to "" on the wire so a later sync can never
// leave stale values behind
type Fields struct {
	CaseID            string          `json:"case_id" validate:"required,min=1,max=200"`
	JobTitle          string          `json:"job_title"`
	JobType           string          `json:"job_type"`
	YearsOfExperience string          `json:"years_of_experience"`
	Industry          string          `json:"industry"`
	Email             string          `json:"email"`
	RequiredSkills    string          `json:"required_skills"`
	JobDescription    string          `json:"job_description"`
	AIResults         json.RawMessage `json:"ai_results"`
}

// Receipt reports exactly what the upsert did without a re-query
type Receipt struct {
	Action Action `json:"action"`
	SysID  string `json:"sys_id"`
	Number string `json:"number,omitempty"`
}
