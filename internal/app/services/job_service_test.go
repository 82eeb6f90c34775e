package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/app/models/dto"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
	"github.com/yigit/talentbridge/internal/pkg/events"
)

func TestJobService_CreateIsVisibleToEveryone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	recruiter := env.register(t, "kim", models.RoleRecruiter)

	job := env.postJob(t, recruiter, "Platform Engineer")
	assert.NotZero(t, job.ID)

	page, err := env.jobs.List(ctx, "", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Jobs, 1)
	assert.Equal(t, "Platform Engineer", page.Jobs[0].Title)
	assert.Equal(t, "kim", page.Jobs[0].RecruiterName)
	assert.Equal(t, int64(1), page.Pagination.TotalItems)

	got, err := env.jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, recruiter.ID, got.RecruiterID)

	assert.Eventually(t, func() bool { return env.publisher.has(events.JobCreated) }, time.Second, 10*time.Millisecond)
}

func TestJobService_OnlyRecruitersPost(t *testing.T) {
	env := newTestEnv(t)
	candidate := env.register(t, "lee", models.RoleCandidate)

	_, err := env.jobs.Create(context.Background(), candidate, &dto.CreateJobRequest{Title: "x", Description: "y"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestJobService_RejectsBlankFields(t *testing.T) {
	env := newTestEnv(t)
	recruiter := env.register(t, "max", models.RoleRecruiter)

	_, err := env.jobs.Create(context.Background(), recruiter, &dto.CreateJobRequest{Title: "   ", Description: "y"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestJobService_SearchPaginationAndLatest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	recruiter := env.register(t, "nora", models.RoleRecruiter)

	for _, title := range []string{"Go Developer", "Data Analyst", "Go SRE"} {
		env.postJob(t, recruiter, title)
	}

	found, err := env.jobs.List(ctx, "go", 1, 10)
	require.NoError(t, err)
	assert.Len(t, found.Jobs, 2)
	assert.Equal(t, "go", found.Query)

	second, err := env.jobs.List(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.Len(t, second.Jobs, 1)
	assert.Equal(t, 2, second.Pagination.TotalPages)
	assert.Equal(t, "Go Developer", second.Jobs[0].Title)

	latest, err := env.jobs.Latest(ctx, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "Go SRE", latest[0].Title)

	mine, err := env.jobs.ListByRecruiter(ctx, recruiter.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	all, err := env.jobs.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Go SRE", all[0].Title)
}

func TestJobService_PageBeyondLastShowsLastPage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	recruiter := env.register(t, "olga", models.RoleRecruiter)

	for _, title := range []string{"Go Developer", "Data Analyst", "Go SRE"} {
		env.postJob(t, recruiter, title)
	}

	page, err := env.jobs.List(ctx, "", 99, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	require.Len(t, page.Jobs, 1)
	assert.Equal(t, "Go Developer", page.Jobs[0].Title)

	empty, err := env.jobs.List(ctx, "nothing matches", 5, 2)
	require.NoError(t, err)
	assert.Empty(t, empty.Jobs)
	assert.Equal(t, 1, empty.Pagination.CurrentPage)
}
