package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHost           = ":8080"
	defaultBackendTimeout = 15 * time.Second
	defaultSessionTTL     = 30 * time.Minute
	defaultRequestTimeout = 30 * time.Second
	defaultMigrationsDir  = "./migrations"
)

type Config struct {
	Host           string
	Env            string
	LogLevel       string
	BackendBaseURL string
	BackendTimeout time.Duration
	JWTSecret      string
	SessionTTL     time.Duration
	RequestTimeout time.Duration
	DatabaseURL    string
	MigrationsDir  string

	GoogleCredentialsJSON string
	GoogleCredentialsFile string
}

// LoadEnvFile reads .env without overwriting variables already set in the
// environment. A missing file is not an error.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	err := godotenv.Load(paths...)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}

	return nil
}

func Load() (Config, error) {
	cfg := Config{
		Host:                  envOr("APP_HOST", defaultHost),
		Env:                   envOr("APP_ENV", "development"),
		LogLevel:              envOr("LOG_LEVEL", "info"),
		BackendBaseURL:        strings.TrimRight(strings.TrimSpace(os.Getenv("BACKEND_BASE_URL")), "/"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		DatabaseURL:           strings.TrimSpace(os.Getenv("DATABASE_URL")),
		MigrationsDir:         envOr("MIGRATIONS_DIR", defaultMigrationsDir),
		GoogleCredentialsJSON: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_JSON"),
		GoogleCredentialsFile: strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_CREDENTIALS_FILE")),
	}

	var problems []error

	var err error
	if cfg.BackendTimeout, err = durationOr("BACKEND_TIMEOUT", defaultBackendTimeout); err != nil {
		problems = append(problems, err)
	}
	if cfg.SessionTTL, err = durationOr("SESSION_TTL", defaultSessionTTL); err != nil {
		problems = append(problems, err)
	}
	if cfg.RequestTimeout, err = durationOr("REQUEST_TIMEOUT", defaultRequestTimeout); err != nil {
		problems = append(problems, err)
	}

	if cfg.BackendBaseURL == "" {
		problems = append(problems, errors.New("BACKEND_BASE_URL is required"))
	}
	if cfg.JWTSecret == "" {
		problems = append(problems, errors.New("JWT_SECRET is required"))
	}

	if len(problems) > 0 {
		return cfg, fmt.Errorf("invalid configuration: %w", errors.Join(problems...))
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func (c Config) AuditEnabled() bool {
	return c.DatabaseURL != ""
}

func (c Config) SheetsEnabled() bool {
	return c.GoogleCredentialsJSON != "" || c.GoogleCredentialsFile != ""
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return value, nil
}
