package services

import (
	"context"
	"strings"

	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/app/models/dto"
	"github.com/yigit/talentbridge/internal/app/repositories"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
	"github.com/yigit/talentbridge/internal/pkg/helpers"
)

// CandidateService defines the interface for browsing candidates
type CandidateService interface {
	List(ctx context.Context, query string, page, size int) (*dto.CandidateListResponse, error)
	Profile(ctx context.Context, candidateID int64) (*dto.CandidateProfileResponse, error)
}

// candidateServiceImpl implements CandidateService
type candidateServiceImpl struct {
	userRepo     *repositories.UserRepository
	documentRepo *repositories.DocumentRepository
}

// NewCandidateService creates a new CandidateService
func NewCandidateService(userRepo *repositories.UserRepository, documentRepo *repositories.DocumentRepository) CandidateService {
	return &candidateServiceImpl{
		userRepo:     userRepo,
		documentRepo: documentRepo,
	}
}

// List returns a page of candidates whose username or documents match query
func (s *candidateServiceImpl) List(ctx context.Context, query string, page, size int) (*dto.CandidateListResponse, error) {
	query = strings.TrimSpace(query)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	candidates, total, err := s.userRepo.ListCandidates(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}

	pagination := helpers.NewPaginationInfo(total, page, limit)
	if total > 0 && page > pagination.CurrentPage {
		offset, _ = helpers.CalculateOffsetLimit(pagination.CurrentPage, limit)
		if candidates, total, err = s.userRepo.ListCandidates(ctx, query, offset, limit); err != nil {
			return nil, err
		}
		pagination = helpers.NewPaginationInfo(total, pagination.CurrentPage, limit)
	}

	return &dto.CandidateListResponse{
		Candidates: candidates,
		Query:      query,
		Pagination: pagination,
	}, nil
}

// Profile returns a candidate with their documents. Non-candidates are not found.
func (s *candidateServiceImpl) Profile(ctx context.Context, candidateID int64) (*dto.CandidateProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if user.RoleType != models.RoleCandidate {
		return nil, apperrors.ErrUserNotFound
	}

	documents, err := s.documentRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.CandidateProfileResponse{
		Candidate: user,
		Documents: documents,
	}, nil
}
