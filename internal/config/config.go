package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/AbhishekS200607/quickaid/internal/logging"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds process configuration read from the environment
type Config struct {
	ServerPort     string   `env:"SERVER_PORT" envDefault:"3000"`
	StaticDir      string   `env:"STATIC_DIR"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"INFO"`
	MaxBodyBytes   int64    `env:"MAX_BODY_BYTES" envDefault:"102400"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"quickaid.db"`

	JWTSecret         string        `env:"JWT_SECRET"`
	JWTExpiration     time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`

	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
	SubmitRateLimit int           `env:"SUBMIT_RATE_LIMIT" envDefault:"5"`
	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT" envDefault:"5"`
	AdminRateLimit  int           `env:"ADMIN_RATE_LIMIT" envDefault:"10"`
}

// Load reads an optional .env file and then the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logging.Log.Info("no .env file loaded, relying on environment variables")
	}
	return LoadFromEnv()
}

// LoadFromEnv parses the environment without touching .env
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Validate reports every missing or inconsistent setting the server needs
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET not set"))
	}
	if c.AdminPasswordHash == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD_HASH not set"))
	}
	if c.JWTExpiration <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION must be positive"))
	}
	if c.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}
	if c.SubmitRateLimit <= 0 || c.LoginRateLimit <= 0 || c.AdminRateLimit <= 0 {
		errs = append(errs, errors.New("rate limits must be positive"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}
	errs = append(errs, c.ValidateStore())
	return errors.Join(errs...)
}

// ValidateStore checks only the settings needed to reach the store
func (c *Config) ValidateStore() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL not set")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH not set")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}
