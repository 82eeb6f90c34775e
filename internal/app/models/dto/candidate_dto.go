package dto

import "github.com/yigit/talentbridge/internal/app/models"

// CandidateListResponse is one page of the candidate browser
type CandidateListResponse struct {
	Candidates []models.CandidateSummary
	Query      string
	Pagination PaginationInfo
}

// CandidateProfileResponse is what a recruiter sees about one candidate
type CandidateProfileResponse struct {
	Candidate *models.User
	Documents []models.Document
}
