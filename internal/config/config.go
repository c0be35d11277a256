package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	Accounts  AccountsConfig
	RateLimit RateLimitConfig
	Backup    BackupConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	FrontendURL     string        `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	// Upper bound on import request bodies
	MaxImportBytes int64 `env:"SERVER_MAX_IMPORT_BYTES" envDefault:"10485760"`
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string        `env:"DB_DRIVER" envDefault:"sqlite"`
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            int           `env:"DB_PORT" envDefault:"5432"`
	Name            string        `env:"DB_NAME" envDefault:"streamvault"`
	User            string        `env:"DB_USER"`
	Password        string        `env:"DB_PASSWORD"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	// For SQLite
	Path string `env:"DB_PATH" envDefault:"./streamvault.db"`
	// Apply embedded migrations on startup
	AutoMigrate bool `env:"DB_AUTO_MIGRATE" envDefault:"true"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `env:"LOG_LEVEL" envDefault:"info"`
	Format     string `env:"LOG_FORMAT" envDefault:"json"` // json or console
	OutputPath string `env:"LOG_OUTPUT" envDefault:"stdout"`
}

// AccountsConfig contains account rule and scanner configuration
type AccountsConfig struct {
	EnforceDateOrder bool   `env:"ACCOUNTS_ENFORCE_DATE_ORDER" envDefault:"false"`
	ExpiryScanCron   string `env:"ACCOUNTS_EXPIRY_SCAN_CRON" envDefault:"@every 1h"`
}

// RateLimitConfig contains per-client rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RPS     float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
	Burst   int     `env:"RATE_LIMIT_BURST" envDefault:"40"`
}

// BackupConfig contains S3 export snapshot configuration. Backups are off
// unless a bucket is set.
type BackupConfig struct {
	Bucket          string `env:"BACKUP_S3_BUCKET"`
	Prefix          string `env:"BACKUP_S3_PREFIX" envDefault:"backups"`
	Region          string `env:"BACKUP_S3_REGION" envDefault:"us-east-1"`
	Endpoint        string `env:"BACKUP_S3_ENDPOINT"`
	AccessKeyID     string `env:"BACKUP_S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"BACKUP_S3_SECRET_ACCESS_KEY"`
	Schedule        string `env:"BACKUP_CRON" envDefault:"@daily"`
}

// Enabled reports whether backups are configured
func (b BackupConfig) Enabled() bool {
	return b.Bucket != ""
}

// Load reads .env (if present) and parses environment variables into Config
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	return Parse()
}

// Parse parses the current environment into Config without touching .env
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Database.Driver == DriverSQLite && c.Database.Path == "" {
		return fmt.Errorf("DB_PATH is required for the sqlite driver")
	}

	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if _, err := cron.ParseStandard(c.Accounts.ExpiryScanCron); err != nil {
		return fmt.Errorf("invalid ACCOUNTS_EXPIRY_SCAN_CRON %q: %w", c.Accounts.ExpiryScanCron, err)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("rate limit needs a positive rps and burst")
	}

	if c.Backup.Enabled() {
		if _, err := cron.ParseStandard(c.Backup.Schedule); err != nil {
			return fmt.Errorf("invalid BACKUP_CRON %q: %w", c.Backup.Schedule, err)
		}
		if (c.Backup.AccessKeyID == "") != (c.Backup.SecretAccessKey == "") {
			return fmt.Errorf("BACKUP_S3_ACCESS_KEY_ID and BACKUP_S3_SECRET_ACCESS_KEY must be set together")
		}
	}

	return nil
}

// Address returns the host:port the HTTP server listens on
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IsProduction reports whether the server runs in production
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}
