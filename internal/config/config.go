package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"3000"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`

	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"./data/app.db"`

	// RedisAddr switches the verification cache to Redis when set.
	// Empty means the in-process bounded cache.
	RedisAddr       string `env:"REDIS_ADDR"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	CacheMaxEntries int    `env:"CACHE_MAX_ENTRIES" envDefault:"1000"`

	JWT  JWT  `envPrefix:"JWT_"`
	SMTP SMTP `envPrefix:"SMTP_"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// JWT contains signing secrets and expiry duration strings.
// Secrets may be empty; the auth service surfaces the fault at first use.
type JWT struct {
	Secret           string `env:"SECRET"`
	RefreshSecret    string `env:"REFRESH_SECRET"`
	ExpiresIn        string `env:"EXPIRES_IN" envDefault:"7d"`
	RefreshExpiresIn string `env:"REFRESH_EXPIRES_IN" envDefault:"30d"`
}

// SMTP contains outbound mail relay parameters.
type SMTP struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"1025"`
	From     string `env:"FROM" envDefault:"noreply@example.com"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	TLS      bool   `env:"TLS" envDefault:"false"`
}

// Load reads all configuration from environment variables.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
