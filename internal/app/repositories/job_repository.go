package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/db"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
	"github.com/yigit/talentbridge/internal/pkg/helpers"
	"github.com/yigit/talentbridge/internal/pkg/logger"
)

var jobColumns = []string{
	"j.id", "j.recruiter_id", "j.title", "j.description", "j.location", "j.created_at", "j.updated_at",
	"u.username",
	"(SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id) AS applicant_count",
}

// JobRepository handles job posting rows
type JobRepository struct {
	db *db.Database
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(database *db.Database) *JobRepository {
	return &JobRepository{db: database}
}

func scanJob(row rowScanner) (*models.JobPosting, error) {
	var job models.JobPosting
	err := row.Scan(
		&job.ID,
		&job.RecruiterID,
		&job.Title,
		&job.Description,
		&job.Location,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.RecruiterName,
		&job.ApplicantCount,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) selectJobs() squirrel.SelectBuilder {
	return r.db.Builder.Select(jobColumns...).
		From("jobs j").
		Join("users u ON u.id = j.recruiter_id")
}

// Create inserts a job posting and sets its ID and timestamps
func (r *JobRepository) Create(ctx context.Context, job *models.JobPosting) (int64, error) {
	now := helpers.NowUTC()

	query, args, err := r.db.Builder.Insert("jobs").
		Columns("recruiter_id", "title", "description", "location", "created_at", "updated_at").
		Values(job.RecruiterID, job.Title, job.Description, job.Location, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create job query: %w", err)
	}

	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&job.ID); err != nil {
		logger.Error().Err(err).Int64("recruiterID", job.RecruiterID).Msg("Error creating job posting")
		return 0, fmt.Errorf("error creating job posting: %w", err)
	}

	job.CreatedAt = now
	job.UpdatedAt = now
	return job.ID, nil
}

// GetByID retrieves a job posting with its recruiter's username
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.JobPosting, error) {
	query, args, err := r.selectJobs().Where(squirrel.Eq{"j.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get job query: %w", err)
	}

	job, err := scanJob(r.db.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, fmt.Errorf("error getting job posting: %w", err)
	}
	return job, nil
}

// List returns a page of job postings, newest first, optionally filtered by a
// case-insensitive search over title, description and location.
func (r *JobRepository) List(ctx context.Context, search string, offset uint64, limit int) ([]models.JobPosting, int64, error) {
	var filter squirrel.Sqlizer = squirrel.Expr("1 = 1")
	if search != "" {
		pattern := helpers.LikePattern(search)
		filter = squirrel.Or{
			squirrel.Expr(`LOWER(j.title) LIKE ? ESCAPE '\'`, pattern),
			squirrel.Expr(`LOWER(j.description) LIKE ? ESCAPE '\'`, pattern),
			squirrel.Expr(`LOWER(j.location) LIKE ? ESCAPE '\'`, pattern),
		}
	}

	countQuery, countArgs, err := r.db.Builder.Select("COUNT(*)").From("jobs j").Where(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count jobs query: %w", err)
	}
	var total int64
	if err := r.db.DB.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting job postings: %w", err)
	}

	jobs, err := r.query(ctx, r.selectJobs().
		Where(filter).
		OrderBy("j.created_at DESC", "j.id DESC").
		Offset(offset).
		Limit(uint64(limit)))
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// ListAll returns every posting, newest first
func (r *JobRepository) ListAll(ctx context.Context) ([]models.JobPosting, error) {
	return r.query(ctx, r.selectJobs().OrderBy("j.created_at DESC", "j.id DESC"))
}

// ListByRecruiter returns every posting of a recruiter with applicant counts, newest first
func (r *JobRepository) ListByRecruiter(ctx context.Context, recruiterID int64) ([]models.JobPosting, error) {
	return r.query(ctx, r.selectJobs().
		Where(squirrel.Eq{"j.recruiter_id": recruiterID}).
		OrderBy("j.created_at DESC", "j.id DESC"))
}

func (r *JobRepository) query(ctx context.Context, builder squirrel.SelectBuilder) ([]models.JobPosting, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list jobs query: %w", err)
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing job postings: %w", err)
	}
	defer rows.Close()

	var jobs []models.JobPosting
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning job row: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job rows: %w", err)
	}
	return jobs, nil
}
