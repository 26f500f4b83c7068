package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings read from the process environment.
type Env struct {
	// Environment is matched against environment-scoped gates.
	Environment string `env:"GAQ_ENV" envDefault:"development"`

	// WebPropertyID overrides the default tracker account.
	WebPropertyID string `env:"GAQ_WEB_PROPERTY_ID"`

	// DB is the flash database path.
	DB string `env:"GAQ_DB" envDefault:"gaq.db"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses an Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}
