package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	authz "github.com/yigit/talentbridge/internal/app/auth"
	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/app/models/dto"
	"github.com/yigit/talentbridge/internal/app/repositories"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
	"github.com/yigit/talentbridge/internal/pkg/events"
)

// ApplicationService defines the interface for job application operations
type ApplicationService interface {
	Apply(ctx context.Context, candidate *models.User, jobID int64, req *dto.ApplyRequest, file *multipart.FileHeader) (*models.Application, error)
	HasApplied(ctx context.Context, candidateID, jobID int64) (bool, error)
	AppliedJobIDs(ctx context.Context, candidateID int64) (map[int64]bool, error)
	ListByCandidate(ctx context.Context, candidateID int64) ([]models.Application, error)
	ListApplicants(ctx context.Context, recruiter *models.User, jobID int64) (*dto.ApplicantsResponse, error)
}

// applicationServiceImpl implements ApplicationService
type applicationServiceImpl struct {
	applicationRepo *repositories.ApplicationRepository
	jobRepo         *repositories.JobRepository
	documentRepo    *repositories.DocumentRepository
	documentService DocumentService
	publisher       events.Publisher
	authzService    *authz.AuthorizationService
	logger          zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	applicationRepo *repositories.ApplicationRepository,
	jobRepo *repositories.JobRepository,
	documentRepo *repositories.DocumentRepository,
	documentService DocumentService,
	publisher events.Publisher,
	authzService *authz.AuthorizationService,
	logger zerolog.Logger,
) ApplicationService {
	return &applicationServiceImpl{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		documentRepo:    documentRepo,
		documentService: documentService,
		publisher:       publisher,
		authzService:    authzService,
		logger:          logger,
	}
}

// Apply submits a candidate's application with either an existing document or a new upload
func (s *applicationServiceImpl) Apply(ctx context.Context, candidate *models.User, jobID int64, req *dto.ApplyRequest, file *multipart.FileHeader) (*models.Application, error) {
	if err := s.authzService.ValidateCandidate(candidate); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	applied, err := s.applicationRepo.Exists(ctx, job.ID, candidate.ID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, apperrors.ErrAlreadyApplied
	}

	app := &models.Application{
		JobID:       job.ID,
		CandidateID: candidate.ID,
		FullName:    strings.TrimSpace(req.FullName),
		Email:       strings.TrimSpace(req.Email),
	}
	if app.FullName == "" || app.Email == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrApplicationInvalid, "Full name and email are required")
	}

	switch {
	case req.DocumentID > 0:
		doc, err := s.documentRepo.GetByID(ctx, req.DocumentID)
		if err != nil || doc.OwnerID != candidate.ID {
			if err != nil && !errors.Is(err, apperrors.ErrDocumentNotFound) {
				return nil, err
			}
			return nil, apperrors.NewCustomError(apperrors.ErrApplicationInvalid, "Choose one of your own documents")
		}
		app.DocumentID = &doc.ID
		app.Document = doc
	case file != nil:
		doc, err := s.documentService.Upload(ctx, candidate.ID, file)
		if err != nil {
			return nil, err
		}
		app.DocumentID = &doc.ID
		app.Document = doc
	default:
		return nil, apperrors.NewCustomError(apperrors.ErrFileRequired, "Attach a resume or choose an uploaded document")
	}

	if _, err := s.applicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationID", app.ID).Int64("jobID", job.ID).Int64("candidateID", candidate.ID).Msg("Application submitted")
	events.PublishAsync(s.publisher, events.ApplicationSubmitted, map[string]any{
		"applicationId": app.ID,
		"jobId":         job.ID,
		"recruiterId":   job.RecruiterID,
		"candidateId":   candidate.ID,
		"documentId":    app.DocumentID,
	})
	return app, nil
}

// HasApplied reports whether a candidate applied to a job
func (s *applicationServiceImpl) HasApplied(ctx context.Context, candidateID, jobID int64) (bool, error) {
	return s.applicationRepo.Exists(ctx, jobID, candidateID)
}

// AppliedJobIDs returns the set of jobs a candidate applied to
func (s *applicationServiceImpl) AppliedJobIDs(ctx context.Context, candidateID int64) (map[int64]bool, error) {
	ids, err := s.applicationRepo.JobIDsByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	applied := make(map[int64]bool, len(ids))
	for _, id := range ids {
		applied[id] = true
	}
	return applied, nil
}

// ListByCandidate returns a candidate's applications with job titles
func (s *applicationServiceImpl) ListByCandidate(ctx context.Context, candidateID int64) ([]models.Application, error) {
	return s.applicationRepo.ListByCandidate(ctx, candidateID)
}

// ListApplicants returns the applications to a job owned by the recruiter
func (s *applicationServiceImpl) ListApplicants(ctx context.Context, recruiter *models.User, jobID int64) (*dto.ApplicantsResponse, error) {
	job, err := s.authzService.ValidateJobOwner(ctx, recruiter, jobID)
	if err != nil {
		return nil, err
	}

	applications, err := s.applicationRepo.ListByJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ApplicantsResponse{
		Job:          job,
		Applications: applications,
	}, nil
}
