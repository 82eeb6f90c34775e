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
)

// SessionRepository stores login sessions in the relational database
type SessionRepository struct {
	db *db.Database
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(database *db.Database) *SessionRepository {
	return &SessionRepository{db: database}
}

// Create stores a new session
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	query, args, err := r.db.Builder.Insert("sessions").
		Columns("id", "user_id", "expires_at", "created_at").
		Values(session.ID, session.UserID, session.ExpiresAt.UTC(), session.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create session query: %w", err)
	}

	if _, err := r.db.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error creating session: %w", err)
	}
	return nil
}

// Get loads a session by id
func (r *SessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	query, args, err := r.db.Builder.Select("id", "user_id", "expires_at", "created_at").
		From("sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get session query: %w", err)
	}

	var session models.Session
	err = r.db.DB.QueryRowContext(ctx, query, args...).Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("error getting session: %w", err)
	}
	return &session, nil
}

// Delete removes a session; deleting an unknown session is not an error
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.db.Builder.Delete("sessions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete session query: %w", err)
	}

	if _, err := r.db.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions that expired before now and returns how many were removed
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := r.db.Builder.Delete("sessions").
		Where(squirrel.Lt{"expires_at": now.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete expired sessions query: %w", err)
	}

	result, err := r.db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired sessions: %w", err)
	}
	return result.RowsAffected()
}

// Close is a no-op; the pool is owned by the server
func (r *SessionRepository) Close() error {
	return nil
}
