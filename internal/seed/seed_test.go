package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/app/repositories"
	"github.com/yigit/talentbridge/internal/db/dbtest"
	"github.com/yigit/talentbridge/internal/pkg/auth"
)

func TestCreateDemoData_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := repositories.NewRepositories(dbtest.New(t))

	require.NoError(t, CreateDemoData(ctx, repos, bcrypt.MinCost, zerolog.Nop()))
	require.NoError(t, CreateDemoData(ctx, repos, bcrypt.MinCost, zerolog.Nop()))

	recruiter, err := repos.UserRepository.GetUserByUsername(ctx, DemoRecruiter)
	require.NoError(t, err)
	assert.Equal(t, models.RoleRecruiter, recruiter.RoleType)
	assert.True(t, auth.CheckPassword(recruiter.PasswordHash, DemoPassword))

	jobs, err := repos.JobRepository.ListByRecruiter(ctx, recruiter.ID)
	require.NoError(t, err)
	assert.Len(t, jobs, len(demoJobs))

	candidate, err := repos.UserRepository.GetUserByUsername(ctx, DemoCandidate)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCandidate, candidate.RoleType)
}
