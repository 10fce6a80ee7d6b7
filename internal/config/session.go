package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/butler/pkg/log"
)

type SessionConfig struct {
	// Unanswered flows older than this are dropped. Zero disables the sweeper.
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	SweepSpec   string        `env:"SESSION_SWEEP_SPEC" envDefault:"@every 1m"`
}

func LoadSessionConfig() (*SessionConfig, error) {
	c := &SessionConfig{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("failed to parse Session config: %w", err)
	}
	return c, nil
}

func NewSessionConfig(ctx context.Context) *SessionConfig {
	c, err := LoadSessionConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to load config")
	}
	return c
}
