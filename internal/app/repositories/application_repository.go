package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/db"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
	"github.com/yigit/talentbridge/internal/pkg/dberrors"
	"github.com/yigit/talentbridge/internal/pkg/helpers"
	"github.com/yigit/talentbridge/internal/pkg/logger"
)

// ApplicationRepository handles job application rows
type ApplicationRepository struct {
	db *db.Database
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(database *db.Database) *ApplicationRepository {
	return &ApplicationRepository{db: database}
}

// Create inserts an application. A second application to the same job by the
// same candidate fails with ErrAlreadyApplied.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) (int64, error) {
	now := helpers.NowUTC()

	query, args, err := r.db.Builder.Insert("applications").
		Columns("job_id", "candidate_id", "document_id", "full_name", "email", "created_at").
		Values(app.JobID, app.CandidateID, helpers.GetNullInt64(app.DocumentID), app.FullName, app.Email, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create application query: %w", err)
	}

	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&app.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "applications_job_candidate_key") {
			return 0, apperrors.ErrAlreadyApplied
		}
		logger.Error().Err(err).
			Int64("jobID", app.JobID).
			Int64("candidateID", app.CandidateID).
			Msg("Error creating application")
		return 0, fmt.Errorf("error creating application: %w", err)
	}

	app.CreatedAt = now
	return app.ID, nil
}

// Exists checks whether a candidate already applied to a job
func (r *ApplicationRepository) Exists(ctx context.Context, jobID, candidateID int64) (bool, error) {
	query, args, err := r.db.Builder.Select("COUNT(*)").
		From("applications").
		Where(squirrel.Eq{"job_id": jobID, "candidate_id": candidateID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build application exists query: %w", err)
	}

	var count int
	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("error checking application: %w", err)
	}
	return count > 0, nil
}

// JobIDsByCandidate returns the IDs of every job the candidate applied to
func (r *ApplicationRepository) JobIDsByCandidate(ctx context.Context, candidateID int64) ([]int64, error) {
	query, args, err := r.db.Builder.Select("job_id").
		From("applications").
		Where(squirrel.Eq{"candidate_id": candidateID}).
		OrderBy("job_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build applied jobs query: %w", err)
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing applied jobs: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning applied job id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applied jobs: %w", err)
	}
	return ids, nil
}

// ListByJob returns the applications to a job, oldest first, with the
// candidate's username and the attached document when there is one.
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID int64) ([]models.Application, error) {
	query, args, err := r.db.Builder.Select(
		"a.id", "a.job_id", "a.candidate_id", "a.document_id", "a.full_name", "a.email", "a.created_at",
		"u.username",
		"d.file_name", "d.mime_type", "d.file_size",
	).
		From("applications a").
		Join("users u ON u.id = a.candidate_id").
		LeftJoin("documents d ON d.id = a.document_id").
		Where(squirrel.Eq{"a.job_id": jobID}).
		OrderBy("a.created_at", "a.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	var applications []models.Application
	for rows.Next() {
		var (
			app        models.Application
			documentID sql.NullInt64
			fileName   sql.NullString
			mimeType   sql.NullString
			fileSize   sql.NullInt64
		)
		err := rows.Scan(
			&app.ID,
			&app.JobID,
			&app.CandidateID,
			&documentID,
			&app.FullName,
			&app.Email,
			&app.CreatedAt,
			&app.CandidateUsername,
			&fileName,
			&mimeType,
			&fileSize,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}

		app.DocumentID = helpers.Int64Ptr(documentID)
		if app.DocumentID != nil && fileName.Valid {
			app.Document = &models.Document{
				ID:       *app.DocumentID,
				OwnerID:  app.CandidateID,
				FileName: fileName.String,
				MimeType: mimeType.String,
				FileSize: fileSize.Int64,
			}
		}
		applications = append(applications, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}
	return applications, nil
}

// ListByCandidate returns a candidate's applications, newest first, with the job titles
func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID int64) ([]models.Application, error) {
	query, args, err := r.db.Builder.Select(
		"a.id", "a.job_id", "a.candidate_id", "a.document_id", "a.full_name", "a.email", "a.created_at",
		"j.title",
	).
		From("applications a").
		Join("jobs j ON j.id = a.job_id").
		Where(squirrel.Eq{"a.candidate_id": candidateID}).
		OrderBy("a.created_at DESC", "a.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build candidate applications query: %w", err)
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing candidate applications: %w", err)
	}
	defer rows.Close()

	var applications []models.Application
	for rows.Next() {
		var (
			app        models.Application
			documentID sql.NullInt64
		)
		err := rows.Scan(&app.ID, &app.JobID, &app.CandidateID, &documentID, &app.FullName, &app.Email, &app.CreatedAt, &app.JobTitle)
		if err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		app.DocumentID = helpers.Int64Ptr(documentID)
		applications = append(applications, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}
	return applications, nil
}
