package dto

import "github.com/yigit/talentbridge/internal/app/models"

// CreateJobRequest represents the job posting form
type CreateJobRequest struct {
	Title       string `form:"title" binding:"required,max=200"`
	Description string `form:"description" binding:"required,max=10000"`
	Location    string `form:"location" binding:"max=200"`
}

// JobListResponse is one page of job postings
type JobListResponse struct {
	Jobs       []models.JobPosting
	Query      string
	Pagination PaginationInfo
}

// ApplyRequest represents the application form. DocumentID selects an
// existing document; when zero a resume file must be uploaded.
type ApplyRequest struct {
	FullName   string `form:"full_name" binding:"required,max=100"`
	Email      string `form:"email" binding:"required,email,max=255"`
	DocumentID int64  `form:"document_id" binding:"min=0"`
}

// ApplicantsResponse is the applicants page of one job
type ApplicantsResponse struct {
	Job          *models.JobPosting
	Applications []models.Application
}
