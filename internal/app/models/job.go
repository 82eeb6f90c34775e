package models

import "time"

// JobPosting is a job published by a recruiter
type JobPosting struct {
	ID          int64     `json:"id" db:"id"`
	RecruiterID int64     `json:"recruiterId" db:"recruiter_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Location    string    `json:"location" db:"location"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Filled by joins
	RecruiterName  string `json:"recruiterName,omitempty"`
	ApplicantCount int    `json:"applicantCount,omitempty"`
}
