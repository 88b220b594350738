package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL  string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecretKey string `envconfig:"JWT_SECRET_KEY" required:"true"`
	ServerPort   int    `envconfig:"SERVER_PORT" default:"8080"`

	// bcrypt hash; empty disables organizer login.
	OrganizerPasswordHash string `envconfig:"ORGANIZER_PASSWORD_HASH"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	TournamentName   string        `envconfig:"TOURNAMENT_NAME" default:"Swiss Tournament"`
	SnapshotInterval time.Duration `envconfig:"SNAPSHOT_INTERVAL" default:"0"`

	R2AccountID       string `envconfig:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string `envconfig:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey string `envconfig:"R2_SECRET_ACCESS_KEY"`
	R2BucketName      string `envconfig:"R2_BUCKET_NAME"`
	R2PublicBaseURL   string `envconfig:"R2_PUBLIC_BASE_URL"`
	S3Endpoint        string `envconfig:"S3_ENDPOINT"`
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// envconfig treats a set-but-empty variable as present.
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}
	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}
	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}
	if cfg.SnapshotInterval < 0 {
		return nil, fmt.Errorf("SNAPSHOT_INTERVAL must not be negative, got %s", cfg.SnapshotInterval)
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "json", "text":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be json or text, got %q", cfg.LogFormat)
	}

	return &cfg, nil
}

// StorageEnabled reports whether enough object storage settings are present
// to export standings snapshots.
func (c *Config) StorageEnabled() bool {
	if c.R2AccessKeyID == "" || c.R2SecretAccessKey == "" || c.R2BucketName == "" {
		return false
	}
	return c.R2AccountID != "" || c.S3Endpoint != ""
}
