package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/db"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
	"github.com/yigit/talentbridge/internal/pkg/dberrors"
	"github.com/yigit/talentbridge/internal/pkg/helpers"
	"github.com/yigit/talentbridge/internal/pkg/logger"
)

var userColumns = []string{"u.id", "u.username", "u.password_hash", "u.role_type", "u.created_at", "u.updated_at", "u.last_login_at"}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// UserRepository handles user database operations
type UserRepository struct {
	db *db.Database
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.Database) *UserRepository {
	return &UserRepository{db: database}
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		user        models.User
		lastLoginAt sql.NullTime
	)
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.RoleType,
		&user.CreatedAt,
		&user.UpdatedAt,
		&lastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	if lastLoginAt.Valid {
		user.LastLoginAt = &lastLoginAt.Time
	}
	return &user, nil
}

// CreateUser inserts a user and sets its ID and timestamps
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	now := helpers.NowUTC()

	query, args, err := r.db.Builder.Insert("users").
		Columns("username", "password_hash", "role_type", "created_at", "updated_at").
		Values(user.Username, user.PasswordHash, string(user.RoleType), now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return 0, apperrors.ErrUsernameAlreadyExists
		}
		logger.Error().Err(err).Str("username", user.Username).Msg("Error creating user")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return id, nil
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	query, args, err := r.db.Builder.Select(userColumns...).
		From("users u").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"u.id": id})
}

// GetUserByUsername retrieves a user by username
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"u.username": username})
}

// UsernameExists checks whether a username is taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	query, args, err := r.db.Builder.Select("COUNT(*)").
		From("users").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build username exists query: %w", err)
	}

	var count int
	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("error checking username: %w", err)
	}
	return count > 0, nil
}

// UpdateLastLogin records a successful login
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	query, args, err := r.db.Builder.Update("users").
		Set("last_login_at", at).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	if _, err := r.db.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// ListCandidates returns a page of candidates with their document counts.
// search matches the username or the text extracted from any of their documents.
func (r *UserRepository) ListCandidates(ctx context.Context, search string, offset uint64, limit int) ([]models.CandidateSummary, int64, error) {
	filter := squirrel.And{squirrel.Eq{"u.role_type": string(models.RoleCandidate)}}
	if search != "" {
		pattern := helpers.LikePattern(search)
		filter = append(filter, squirrel.Or{
			squirrel.Expr(`LOWER(u.username) LIKE ? ESCAPE '\'`, pattern),
			squirrel.Expr(`EXISTS (SELECT 1 FROM documents d WHERE d.owner_id = u.id AND LOWER(d.extracted_text) LIKE ? ESCAPE '\')`, pattern),
		})
	}

	countQuery, countArgs, err := r.db.Builder.Select("COUNT(*)").From("users u").Where(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count candidates query: %w", err)
	}
	var total int64
	if err := r.db.DB.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting candidates: %w", err)
	}

	columns := append(append([]string{}, userColumns...),
		"(SELECT COUNT(*) FROM documents d WHERE d.owner_id = u.id) AS document_count")
	query, args, err := r.db.Builder.Select(columns...).
		From("users u").
		Where(filter).
		OrderBy("u.created_at DESC", "u.id DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list candidates query: %w", err)
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing candidates: %w", err)
	}
	defer rows.Close()

	var candidates []models.CandidateSummary
	for rows.Next() {
		var (
			summary     models.CandidateSummary
			lastLoginAt sql.NullTime
		)
		err := rows.Scan(
			&summary.User.ID,
			&summary.User.Username,
			&summary.User.PasswordHash,
			&summary.User.RoleType,
			&summary.User.CreatedAt,
			&summary.User.UpdatedAt,
			&lastLoginAt,
			&summary.DocumentCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning candidate row: %w", err)
		}
		if lastLoginAt.Valid {
			summary.User.LastLoginAt = &lastLoginAt.Time
		}
		candidates = append(candidates, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating candidate rows: %w", err)
	}

	return candidates, total, nil
}
