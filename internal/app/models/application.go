package models

import "time"

// Application is a candidate's submission to a job posting
type Application struct {
	ID          int64     `json:"id" db:"id"`
	JobID       int64     `json:"jobId" db:"job_id"`
	CandidateID int64     `json:"candidateId" db:"candidate_id"`
	DocumentID  *int64    `json:"documentId,omitempty" db:"document_id"`
	FullName    string    `json:"fullName" db:"full_name"`
	Email       string    `json:"email" db:"email"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	CandidateUsername string    `json:"candidateUsername,omitempty"`
	JobTitle          string    `json:"jobTitle,omitempty"`
	Document          *Document `json:"document,omitempty"`
}
