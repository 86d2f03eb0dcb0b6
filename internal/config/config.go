// Package config holds process-wide configuration. It is parsed from the
// environment exactly once at startup and passed explicitly to every
// component that needs it; nothing in this codebase reads credentials
// from globals after boot.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full configuration of the API process.
type Config struct {
	HTTPAddr string `env:"HARBORVIEW_HTTP_ADDR" envDefault:":8080"`
	GRPCAddr string `env:"HARBORVIEW_GRPC_ADDR" envDefault:":9090"`

	// PostgresDSN may be empty in tests; cmd/api refuses to start without it.
	PostgresDSN string `env:"HARBORVIEW_PG_DSN"`

	TokenSecret string        `env:"HARBORVIEW_TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"HARBORVIEW_TOKEN_TTL" envDefault:"24h"`

	// ResetCodeTTL bounds how long a forgot-password code stays usable.
	ResetCodeTTL time.Duration `env:"HARBORVIEW_RESET_CODE_TTL" envDefault:"1h"`

	GoogleClientID string `env:"HARBORVIEW_GOOGLE_CLIENT_ID"`

	SMTP SMTPConfig

	RateBurst  int `env:"HARBORVIEW_RATE_BURST" envDefault:"20"`
	RatePerSec int `env:"HARBORVIEW_RATE_PER_SEC" envDefault:"10"`
}

// SMTPConfig configures the outbound mailer.
type SMTPConfig struct {
	Host     string `env:"HARBORVIEW_SMTP_HOST"`
	Port     int    `env:"HARBORVIEW_SMTP_PORT" envDefault:"587"`
	Username string `env:"HARBORVIEW_SMTP_USERNAME"`
	Password string `env:"HARBORVIEW_SMTP_PASSWORD"`
	From     string `env:"HARBORVIEW_SMTP_FROM"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the invariants cmd/api relies on.
func (c Config) Validate() error {
	if c.TokenSecret == "" {
		return errors.New("HARBORVIEW_TOKEN_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("HARBORVIEW_TOKEN_TTL must be positive")
	}
	if c.ResetCodeTTL <= 0 {
		return errors.New("HARBORVIEW_RESET_CODE_TTL must be positive")
	}
	return nil
}

// MailEnabled reports whether the SMTP side is configured. Notification
// routes return an explicit error when it is not.
func (c Config) MailEnabled() bool {
	return c.SMTP.Host != "" && c.SMTP.From != ""
}
