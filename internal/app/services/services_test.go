package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authz "github.com/yigit/talentbridge/internal/app/auth"
	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/app/models/dto"
	"github.com/yigit/talentbridge/internal/app/repositories"
	"github.com/yigit/talentbridge/internal/app/services"
	"github.com/yigit/talentbridge/internal/db/dbtest"
	"github.com/yigit/talentbridge/internal/pkg/auth"
	"github.com/yigit/talentbridge/internal/pkg/filestorage"
)

// recordingPublisher keeps every published event type
type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) has(eventType string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.events {
		if e == eventType {
			return true
		}
	}
	return false
}

type testEnv struct {
	repos        *repositories.Repositories
	publisher    *recordingPublisher
	storage      *filestorage.LocalStorage
	auth         *services.AuthService
	documents    services.DocumentService
	jobs         services.JobService
	applications services.ApplicationService
	candidates   services.CandidateService
	messages     services.MessageService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repos := repositories.NewRepositories(dbtest.New(t))
	storage, err := filestorage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	publisher := &recordingPublisher{}
	authzService := authz.NewAuthorizationService(repos.JobRepository)
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenIssuer: "talentbridge-test"})
	logger := zerolog.Nop()

	documents := services.NewDocumentService(repos.DocumentRepository, storage, publisher, authzService, 1<<20, logger)
	return &testEnv{
		repos:     repos,
		publisher: publisher,
		storage:   storage,
		auth: services.NewAuthService(repos.UserRepository, repos.SessionRepository, jwtService,
			services.AuthConfig{SessionTTL: time.Hour, PasswordCost: bcrypt.MinCost}, logger),
		documents:    documents,
		jobs:         services.NewJobService(repos.JobRepository, publisher, authzService, logger),
		applications: services.NewApplicationService(repos.ApplicationRepository, repos.JobRepository, repos.DocumentRepository, documents, publisher, authzService, logger),
		candidates:   services.NewCandidateService(repos.UserRepository, repos.DocumentRepository),
		messages:     services.NewMessageService(repos.MessageRepository, repos.UserRepository, publisher, logger),
	}
}

func (e *testEnv) register(t *testing.T, username string, role models.RoleType) *models.User {
	t.Helper()
	result, err := e.auth.Register(context.Background(), &dto.RegisterRequest{
		Username:        username,
		Password:        "passw0rd!",
		ConfirmPassword: "passw0rd!",
		RoleType:        role,
	})
	require.NoError(t, err)
	return result.User
}

func (e *testEnv) postJob(t *testing.T, recruiter *models.User, title string) *models.JobPosting {
	t.Helper()
	job, err := e.jobs.Create(context.Background(), recruiter, &dto.CreateJobRequest{
		Title:       title,
		Description: title + " description",
		Location:    "Remote",
	})
	require.NoError(t, err)
	return job
}
