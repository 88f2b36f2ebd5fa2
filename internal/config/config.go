// Package config loads application settings from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// --- Server ---
	Port        string        `envconfig:"PORT" default:"3333"`
	AppEnv      string        `envconfig:"APP_ENV" default:"development"`
	LogLevel    string        `envconfig:"APP_LOG_LEVEL" default:"info"`
	ReadTimeout time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"5s"`

	// --- Database ---
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	DBMaxConns  int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns  int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Auth ---
	// HMAC secret for signing access tokens. The old deployment kept this
	// in a module-level global; it now travels on the config struct.
	JWTSecret   string        `envconfig:"JWT_SECRET" required:"true"`
	TokenExpiry time.Duration `envconfig:"TOKEN_EXPIRY" default:"168h"`

	// --- Ops ---
	MetricsUser string `envconfig:"METRICS_USER" default:""`
	MetricsPass string `envconfig:"METRICS_PASS" default:""`
	PprofSecret string `envconfig:"PPROF_SECRET" default:""`

	// --- Rate limiting ---
	RateLimitPerSecond int `envconfig:"RATE_LIMIT_PER_SECOND" default:"5"`
	RateLimitBurst     int `envconfig:"RATE_LIMIT_BURST" default:"30"`
}

func (c *Config) Validate() error {
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("invalid DB_MIN_CONNS/DB_MAX_CONNS combination")
	}
	if c.RateLimitPerSecond <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit settings must be positive")
	}
	return nil
}

// Load reads environment variables into a Config. Callers are expected to
// have loaded any .env file beforehand (main does this via godotenv).
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
