package auth

import (
	"context"

	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/app/repositories"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
)

// Role and ownership errors shown on the forbidden page
var (
	ErrNotRecruiter = apperrors.NewForbiddenError("Only recruiters can perform this action")
	ErrNotCandidate = apperrors.NewForbiddenError("Only candidates can perform this action")
)

// AuthorizationService answers role and ownership questions
type AuthorizationService struct {
	jobRepo *repositories.JobRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(jobRepo *repositories.JobRepository) *AuthorizationService {
	return &AuthorizationService{jobRepo: jobRepo}
}

// ValidateRecruiter returns an error unless the user is a recruiter
func (s *AuthorizationService) ValidateRecruiter(user *models.User) error {
	if user == nil {
		return apperrors.ErrUnauthenticated
	}
	if !user.IsRecruiter() {
		return ErrNotRecruiter
	}
	return nil
}

// ValidateCandidate returns an error unless the user is a candidate
func (s *AuthorizationService) ValidateCandidate(user *models.User) error {
	if user == nil {
		return apperrors.ErrUnauthenticated
	}
	if !user.IsCandidate() {
		return ErrNotCandidate
	}
	return nil
}

// CanViewDocument: owners see their documents, recruiters see everyone's
func (s *AuthorizationService) CanViewDocument(user *models.User, doc *models.Document) bool {
	if user == nil || doc == nil {
		return false
	}
	return doc.OwnerID == user.ID || user.IsRecruiter()
}

// CanModifyDocument reports whether the user owns the document
func (s *AuthorizationService) CanModifyDocument(user *models.User, doc *models.Document) bool {
	return user != nil && doc != nil && doc.OwnerID == user.ID
}

// ValidateJobOwner loads a job and checks that the user is the recruiter who posted it
func (s *AuthorizationService) ValidateJobOwner(ctx context.Context, user *models.User, jobID int64) (*models.JobPosting, error) {
	if err := s.ValidateRecruiter(user); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.RecruiterID != user.ID {
		return nil, apperrors.NewForbiddenError("You can only manage your own job postings")
	}
	return job, nil
}
