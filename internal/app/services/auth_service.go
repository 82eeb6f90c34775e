package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/app/models/dto"
	"github.com/yigit/talentbridge/internal/app/repositories"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
	"github.com/yigit/talentbridge/internal/pkg/auth"
	"github.com/yigit/talentbridge/internal/pkg/helpers"
	"github.com/yigit/talentbridge/internal/pkg/validation"
)

// SessionStore persists login sessions. The SQL repository and the Redis store both satisfy it.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	Close() error
}

// AuthConfig tunes session lifetime and password hashing
type AuthConfig struct {
	SessionTTL   time.Duration
	PasswordCost int
}

// AuthService handles registration, login and session verification
type AuthService struct {
	userRepo   *repositories.UserRepository
	sessions   SessionStore
	jwtService *auth.JWTService
	config     AuthConfig
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	sessions SessionStore,
	jwtService *auth.JWTService,
	config AuthConfig,
	logger zerolog.Logger,
) *AuthService {
	if config.SessionTTL <= 0 {
		config.SessionTTL = 24 * time.Hour
	}
	if config.PasswordCost == 0 {
		config.PasswordCost = auth.BcryptCost
	}
	return &AuthService{
		userRepo:   userRepo,
		sessions:   sessions,
		jwtService: jwtService,
		config:     config,
		logger:     logger,
	}
}

// Register creates an account and signs the new user in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResult, error) {
	username := strings.TrimSpace(req.Username)

	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	if req.ConfirmPassword != req.Password {
		return nil, apperrors.NewValidationError("Passwords do not match")
	}
	if !req.RoleType.IsValid() {
		return nil, apperrors.NewValidationError("Choose whether you are a candidate or a recruiter")
	}

	exists, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if exists {
		return nil, apperrors.ErrUsernameAlreadyExists
	}

	hash, err := auth.HashPasswordWithCost(req.Password, s.config.PasswordCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		RoleType:     req.RoleType,
	}
	if _, err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.RoleType)).Msg("User registered")
	return s.openSession(ctx, user)
}

// Login verifies credentials and opens a session
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResult, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn().Str("username", user.Username).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	now := helpers.NowUTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	} else {
		user.LastLoginAt = &now
	}

	return s.openSession(ctx, user)
}

func (s *AuthService) openSession(ctx context.Context, user *models.User) (*dto.AuthResult, error) {
	now := helpers.NowUTC()
	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.config.SessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	token, err := s.jwtService.GenerateSessionToken(user, session.ID, session.ExpiresAt)
	if err != nil {
		_ = s.sessions.Delete(ctx, session.ID)
		return nil, err
	}

	return &dto.AuthResult{
		User:      user,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Logout ends the session behind token. Unknown or invalid tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.SessionID()); err != nil {
		return fmt.Errorf("error ending session: %w", err)
	}
	s.logger.Info().Int64("userID", claims.UserID).Msg("User logged out")
	return nil
}

// Authenticate resolves a session token to its user
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrSessionExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	session, err := s.sessions.Get(ctx, claims.SessionID())
	if err != nil {
		return nil, err
	}
	if session.UserID != claims.UserID {
		return nil, apperrors.ErrTokenInvalid
	}
	if session.IsExpired(helpers.NowUTC()) {
		_ = s.sessions.Delete(ctx, session.ID)
		return nil, apperrors.ErrSessionExpired
	}

	user, err := s.userRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// CleanupExpiredSessions removes sessions past their expiry
func (s *AuthService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	removed, err := s.sessions.DeleteExpired(ctx, helpers.NowUTC())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Debug().Int64("removed", removed).Msg("Expired sessions removed")
	}
	return removed, nil
}

// SessionTTL is how long a new session lives
func (s *AuthService) SessionTTL() time.Duration {
	return s.config.SessionTTL
}
