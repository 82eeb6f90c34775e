package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/talentbridge/internal/app/auth"
	appControllers "github.com/yigit/talentbridge/internal/app/controllers"
	appMigrations "github.com/yigit/talentbridge/internal/app/migrations"
	appRepos "github.com/yigit/talentbridge/internal/app/repositories"
	appRoutes "github.com/yigit/talentbridge/internal/app/routes"
	appServices "github.com/yigit/talentbridge/internal/app/services"
	"github.com/yigit/talentbridge/internal/config"
	"github.com/yigit/talentbridge/internal/db"
	appMiddleware "github.com/yigit/talentbridge/internal/middleware"
	pkgAuth "github.com/yigit/talentbridge/internal/pkg/auth"
	"github.com/yigit/talentbridge/internal/pkg/events"
	"github.com/yigit/talentbridge/internal/pkg/filestorage"
	"github.com/yigit/talentbridge/internal/pkg/helpers"
	"github.com/yigit/talentbridge/internal/pkg/logger"
	"github.com/yigit/talentbridge/internal/pkg/sessionstore"
	"github.com/yigit/talentbridge/internal/seed"
	"github.com/yigit/talentbridge/internal/web"
)

// DefaultConfigPath is used when no -config flag is given
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos        *appRepos.Repositories
	Storage      filestorage.FileStorage
	Publisher    events.Publisher
	Sessions     appServices.SessionStore
	JWTService   *pkgAuth.JWTService
	AuthzService *appAuth.AuthorizationService

	AuthService        *appServices.AuthService
	DocumentService    appServices.DocumentService
	JobService         appServices.JobService
	ApplicationService appServices.ApplicationService
	CandidateService   appServices.CandidateService
	MessageService     appServices.MessageService

	HomeController      *appControllers.HomeController
	AuthController      *appControllers.AuthController
	DashboardController *appControllers.DashboardController
	JobController       *appControllers.JobController
	CandidateController *appControllers.CandidateController
	DocumentController  *appControllers.DocumentController
	MessageController   *appControllers.MessageController
	AuthMiddleware      *appMiddleware.AuthMiddleware

	Logger zerolog.Logger
}

// Close releases the publisher and the session store
func (d *Dependencies) Close() error {
	var errs error
	if d.Publisher != nil {
		errs = errors.Join(errs, d.Publisher.Close())
	}
	if d.Sessions != nil {
		errs = errors.Join(errs, d.Sessions.Close())
	}
	return errs
}

// LoadConfigAndSetupLogger loads .env and the configuration, then initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn().Err(err).Msg("Failed to load .env file")
	}

	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: cfg.Logging.Format == "text",
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the database, applies migrations and optionally seeds demo data.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.Database, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")
	database, err := db.Open(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database, lgr).Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		_ = database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Seed.DemoData {
		if err := seed.CreateDemoData(ctx, appRepos.NewRepositories(database), cfg.Session.PasswordCost, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	return database, nil
}

func newSessionStore(ctx context.Context, cfg *config.Config, repos *appRepos.Repositories) (appServices.SessionStore, error) {
	if cfg.Session.Store == config.SessionStoreRedis {
		return sessionstore.NewRedisStore(ctx, sessionstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return repos.SessionRepository, nil
}

func newFileStorage(ctx context.Context, cfg *config.Config) (filestorage.FileStorage, error) {
	if cfg.Storage.Driver == config.StorageS3 {
		return filestorage.NewS3Storage(ctx, filestorage.S3Config{
			Bucket:    cfg.Storage.S3Bucket,
			Region:    cfg.Storage.S3Region,
			Endpoint:  cfg.Storage.S3Endpoint,
			AccessKey: cfg.Storage.S3AccessKey,
			SecretKey: cfg.Storage.S3SecretKey,
		})
	}
	return filestorage.NewLocalStorage(cfg.Storage.LocalPath)
}

// newPublisher connects to RabbitMQ when a URL is configured. An unreachable
// broker only disables events.
func newPublisher(cfg *config.Config, lgr zerolog.Logger) events.Publisher {
	if cfg.Events.AMQPURL == "" {
		return events.NoopPublisher{}
	}
	publisher, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
	if err != nil {
		lgr.Error().Err(err).Msg("Event publishing disabled")
		return events.NoopPublisher{}
	}
	return publisher
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, database *db.Database, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(database)

	var err error
	deps.Sessions, err = newSessionStore(ctx, cfg, deps.Repos)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	deps.Storage, err = newFileStorage(ctx, cfg)
	if err != nil {
		_ = deps.Sessions.Close()
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Publisher = newPublisher(cfg, lgr)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.Session.Secret,
		TokenIssuer: cfg.Session.Issuer,
	})
	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.JobRepository)

	// Initialize services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Sessions,
		deps.JWTService,
		appServices.AuthConfig{
			SessionTTL:   helpers.ParseDuration(cfg.Session.Expiration, 24*time.Hour),
			PasswordCost: cfg.Session.PasswordCost,
		},
		logger.WithComponent("auth"),
	)
	deps.DocumentService = appServices.NewDocumentService(
		deps.Repos.DocumentRepository,
		deps.Storage,
		deps.Publisher,
		deps.AuthzService,
		cfg.Storage.MaxUploadSize,
		logger.WithComponent("documents"),
	)
	deps.JobService = appServices.NewJobService(deps.Repos.JobRepository, deps.Publisher, deps.AuthzService, logger.WithComponent("jobs"))
	deps.ApplicationService = appServices.NewApplicationService(
		deps.Repos.ApplicationRepository,
		deps.Repos.JobRepository,
		deps.Repos.DocumentRepository,
		deps.DocumentService,
		deps.Publisher,
		deps.AuthzService,
		logger.WithComponent("applications"),
	)
	deps.CandidateService = appServices.NewCandidateService(deps.Repos.UserRepository, deps.Repos.DocumentRepository)
	deps.MessageService = appServices.NewMessageService(deps.Repos.MessageRepository, deps.Repos.UserRepository, deps.Publisher, logger.WithComponent("messages"))

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.AuthService, appMiddleware.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.Secure,
	})

	controllerLogger := logger.WithComponent("controllers")
	deps.HomeController = appControllers.NewHomeController(deps.JobService, database, controllerLogger)
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.AuthMiddleware, controllerLogger)
	deps.DashboardController = appControllers.NewDashboardController(deps.JobService, deps.ApplicationService, deps.DocumentService, deps.MessageService, controllerLogger)
	deps.JobController = appControllers.NewJobController(deps.JobService, deps.ApplicationService, deps.DocumentService, controllerLogger)
	deps.CandidateController = appControllers.NewCandidateController(deps.CandidateService, controllerLogger)
	deps.DocumentController = appControllers.NewDocumentController(deps.DocumentService, controllerLogger)
	deps.MessageController = appControllers.NewMessageController(deps.MessageService, controllerLogger)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware, templates and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	templates, err := web.Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(templates)
	router.MaxMultipartMemory = 8 << 20
	router.Use(appMiddleware.Recovery(), appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.HomeController,
		deps.AuthController,
		deps.DashboardController,
		deps.JobController,
		deps.CandidateController,
		deps.DocumentController,
		deps.MessageController,
		deps.AuthMiddleware,
		cfg.Storage.MaxUploadSize,
	)

	return router, nil
}
