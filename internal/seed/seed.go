package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/app/repositories"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
	"github.com/yigit/talentbridge/internal/pkg/auth"
)

// Demo accounts created by CreateDemoData
const (
	DemoRecruiter = "demo_recruiter"
	DemoCandidate = "demo_candidate"
	DemoPassword  = "talentbridge1"
)

var demoJobs = []models.JobPosting{
	{
		Title:       "Backend Engineer (Go)",
		Description: "Build and operate the services behind our hiring platform.\nYou will work with Go, PostgreSQL and RabbitMQ.",
		Location:    "Remote",
	},
	{
		Title:       "Technical Recruiter",
		Description: "Partner with engineering leads to find great people.\nExperience sourcing developers is a plus.",
		Location:    "Istanbul",
	},
}

// CreateDemoData creates a demo recruiter with a couple of postings and a demo candidate.
// Existing accounts are left alone, so running it on every start is safe.
func CreateDemoData(ctx context.Context, repos *repositories.Repositories, passwordCost int, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating demo data...")
	var finalErr error

	recruiter, created, err := ensureUser(ctx, repos.UserRepository, DemoRecruiter, models.RoleRecruiter, passwordCost)
	if err != nil {
		lgr.Error().Err(err).Str("username", DemoRecruiter).Msg("Error creating demo recruiter")
		finalErr = errors.Join(finalErr, err)
	} else if created {
		for _, job := range demoJobs {
			job.RecruiterID = recruiter.ID
			if _, err := repos.JobRepository.Create(ctx, &job); err != nil {
				lgr.Error().Err(err).Str("title", job.Title).Msg("Error creating demo job")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if _, _, err := ensureUser(ctx, repos.UserRepository, DemoCandidate, models.RoleCandidate, passwordCost); err != nil {
		lgr.Error().Err(err).Str("username", DemoCandidate).Msg("Error creating demo candidate")
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr == nil {
		lgr.Info().Msg("Demo data ready")
	}
	return finalErr
}

// ensureUser returns the named user, creating it when missing
func ensureUser(ctx context.Context, userRepo *repositories.UserRepository, username string, role models.RoleType, cost int) (*models.User, bool, error) {
	existing, err := userRepo.GetUserByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, false, err
	}

	if cost == 0 {
		cost = auth.BcryptCost
	}
	hash, err := auth.HashPasswordWithCost(DemoPassword, cost)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash demo password: %w", err)
	}

	user := &models.User{Username: username, PasswordHash: hash, RoleType: role}
	if _, err := userRepo.CreateUser(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}
