package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	authz "github.com/yigit/talentbridge/internal/app/auth"
	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/app/models/dto"
	"github.com/yigit/talentbridge/internal/app/repositories"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
	"github.com/yigit/talentbridge/internal/pkg/events"
	"github.com/yigit/talentbridge/internal/pkg/helpers"
)

// JobService defines the interface for job posting operations
type JobService interface {
	Create(ctx context.Context, recruiter *models.User, req *dto.CreateJobRequest) (*models.JobPosting, error)
	GetByID(ctx context.Context, id int64) (*models.JobPosting, error)
	List(ctx context.Context, query string, page, size int) (*dto.JobListResponse, error)
	ListByRecruiter(ctx context.Context, recruiterID int64) ([]models.JobPosting, error)
	Latest(ctx context.Context, n int) ([]models.JobPosting, error)
	All(ctx context.Context) ([]models.JobPosting, error)
}

// jobServiceImpl implements JobService
type jobServiceImpl struct {
	jobRepo      *repositories.JobRepository
	publisher    events.Publisher
	authzService *authz.AuthorizationService
	logger       zerolog.Logger
}

// NewJobService creates a new JobService
func NewJobService(
	jobRepo *repositories.JobRepository,
	publisher events.Publisher,
	authzService *authz.AuthorizationService,
	logger zerolog.Logger,
) JobService {
	return &jobServiceImpl{
		jobRepo:      jobRepo,
		publisher:    publisher,
		authzService: authzService,
		logger:       logger,
	}
}

// Create publishes a new job posting for a recruiter
func (s *jobServiceImpl) Create(ctx context.Context, recruiter *models.User, req *dto.CreateJobRequest) (*models.JobPosting, error) {
	if err := s.authzService.ValidateRecruiter(recruiter); err != nil {
		return nil, err
	}

	job := &models.JobPosting{
		RecruiterID:   recruiter.ID,
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Location:      strings.TrimSpace(req.Location),
		RecruiterName: recruiter.Username,
	}
	if job.Title == "" {
		return nil, apperrors.NewValidationError("Title is required")
	}
	if job.Description == "" {
		return nil, apperrors.NewValidationError("Description is required")
	}

	if _, err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("jobID", job.ID).Int64("recruiterID", recruiter.ID).Msg("Job posting created")
	events.PublishAsync(s.publisher, events.JobCreated, map[string]any{
		"jobId":       job.ID,
		"recruiterId": recruiter.ID,
		"title":       job.Title,
		"location":    job.Location,
	})
	return job, nil
}

// GetByID returns one job posting
func (s *jobServiceImpl) GetByID(ctx context.Context, id int64) (*models.JobPosting, error) {
	return s.jobRepo.GetByID(ctx, id)
}

// List returns a page of job postings matching query
func (s *jobServiceImpl) List(ctx context.Context, query string, page, size int) (*dto.JobListResponse, error) {
	query = strings.TrimSpace(query)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	jobs, total, err := s.jobRepo.List(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}

	pagination := helpers.NewPaginationInfo(total, page, limit)
	if total > 0 && page > pagination.CurrentPage {
		// past the last page: show the last page instead of an empty one
		offset, _ = helpers.CalculateOffsetLimit(pagination.CurrentPage, limit)
		if jobs, total, err = s.jobRepo.List(ctx, query, offset, limit); err != nil {
			return nil, err
		}
		pagination = helpers.NewPaginationInfo(total, pagination.CurrentPage, limit)
	}

	return &dto.JobListResponse{
		Jobs:       jobs,
		Query:      query,
		Pagination: pagination,
	}, nil
}

// ListByRecruiter returns every posting of a recruiter with applicant counts
func (s *jobServiceImpl) ListByRecruiter(ctx context.Context, recruiterID int64) ([]models.JobPosting, error) {
	return s.jobRepo.ListByRecruiter(ctx, recruiterID)
}

// All returns every posting, newest first
func (s *jobServiceImpl) All(ctx context.Context) ([]models.JobPosting, error) {
	return s.jobRepo.ListAll(ctx)
}

// Latest returns the n most recent postings
func (s *jobServiceImpl) Latest(ctx context.Context, n int) ([]models.JobPosting, error) {
	_, limit := helpers.CalculateOffsetLimit(1, n)
	jobs, _, err := s.jobRepo.List(ctx, "", 0, limit)
	return jobs, err
}
