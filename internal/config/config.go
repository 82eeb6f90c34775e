package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Supported session stores
const (
	SessionStoreDatabase = "database"
	SessionStoreRedis    = "redis"
)

// Supported document storage backends
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port         string `yaml:"port" env:"SERVER_PORT"`
		Mode         string `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout  string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Path            string `yaml:"path" env:"DB_PATH"` // sqlite file
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Session struct {
		Secret          string `yaml:"secret" env:"SESSION_SECRET"`
		Expiration      string `yaml:"expiration" env:"SESSION_EXPIRATION"`
		CookieName      string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
		Secure          bool   `yaml:"secure" env:"SESSION_SECURE"`
		Issuer          string `yaml:"issuer" env:"SESSION_ISSUER"`
		Store           string `yaml:"store" env:"SESSION_STORE"`
		CleanupInterval string `yaml:"cleanup_interval" env:"SESSION_CLEANUP_INTERVAL"`
		PasswordCost    int    `yaml:"password_cost" env:"SESSION_PASSWORD_COST"` // bcrypt cost, 0 uses the default
	} `yaml:"session"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	Storage struct {
		Driver        string `yaml:"driver" env:"STORAGE_DRIVER"`
		LocalPath     string `yaml:"local_path" env:"STORAGE_LOCAL_PATH"`
		MaxUploadSize int64  `yaml:"max_upload_size" env:"STORAGE_MAX_UPLOAD_SIZE"`
		S3Bucket      string `yaml:"s3_bucket" env:"STORAGE_S3_BUCKET"`
		S3Region      string `yaml:"s3_region" env:"STORAGE_S3_REGION"`
		S3Endpoint    string `yaml:"s3_endpoint" env:"STORAGE_S3_ENDPOINT"`
		S3AccessKey   string `yaml:"s3_access_key" env:"STORAGE_S3_ACCESS_KEY"`
		S3SecretKey   string `yaml:"s3_secret_key" env:"STORAGE_S3_SECRET_KEY"`
	} `yaml:"storage"`

	Events struct {
		AMQPURL  string `yaml:"amqp_url" env:"EVENTS_AMQP_URL"`
		Exchange string `yaml:"exchange" env:"EVENTS_EXCHANGE"`
	} `yaml:"events"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Seed struct {
		DemoData bool `yaml:"demo_data" env:"SEED_DEMO_DATA"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults and env values still apply.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "15s"
	config.Server.WriteTimeout = "30s"

	config.Database.Driver = DriverSQLite
	config.Database.Path = "data/talentbridge.db"
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.DBName = "talentbridge"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"

	config.Session.Expiration = "24h"
	config.Session.CookieName = "session_token"
	config.Session.Issuer = "talentbridge"
	config.Session.Store = SessionStoreDatabase
	config.Session.CleanupInterval = "15m"

	config.Redis.Addr = "localhost:6379"

	config.Storage.Driver = StorageLocal
	config.Storage.LocalPath = "uploads"
	config.Storage.MaxUploadSize = 10 << 20
	config.Storage.S3Region = "auto"

	config.Events.Exchange = "talentbridge.events"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case DriverSQLite:
		if config.Database.Path == "" {
			return fmt.Errorf("database path is required for the sqlite driver")
		}
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}
	expiration, err := time.ParseDuration(config.Session.Expiration)
	if err != nil {
		return fmt.Errorf("invalid session expiration format: %w", err)
	}
	if expiration <= 0 {
		return fmt.Errorf("session expiration must be positive")
	}
	cleanupInterval, err := time.ParseDuration(config.Session.CleanupInterval)
	if err != nil {
		return fmt.Errorf("invalid session cleanup interval format: %w", err)
	}
	if cleanupInterval <= 0 {
		return fmt.Errorf("session cleanup interval must be positive")
	}

	if config.Session.PasswordCost != 0 && (config.Session.PasswordCost < 4 || config.Session.PasswordCost > 31) {
		return fmt.Errorf("session password cost must be between 4 and 31")
	}

	switch config.Session.Store {
	case SessionStoreDatabase:
	case SessionStoreRedis:
		if config.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for the redis session store")
		}
	default:
		return fmt.Errorf("unsupported session store %q", config.Session.Store)
	}

	switch config.Storage.Driver {
	case StorageLocal:
		if config.Storage.LocalPath == "" {
			return fmt.Errorf("storage local path is required")
		}
	case StorageS3:
		if config.Storage.S3Bucket == "" {
			return fmt.Errorf("storage s3 bucket is required")
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", config.Storage.Driver)
	}

	if config.Storage.MaxUploadSize <= 0 {
		return fmt.Errorf("storage max upload size must be positive")
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// GetSQLiteDSN returns the sqlite data source name with the pragmas the app relies on
func (c *Config) GetSQLiteDSN() string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", c.Database.Path)
}
