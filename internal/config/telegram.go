package config

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/butler/pkg/log"
)

type TelegramConfig struct {
	Token string `env:"TELEGRAM_TOKEN,required,notEmpty"`
	// Empty means everyone may use the bot.
	AllowedUsers []int64       `env:"TELEGRAM_ALLOWED_USERS" envSeparator:","`
	PollTimeout  time.Duration `env:"TELEGRAM_POLL_TIMEOUT" envDefault:"10s"`
}

func LoadTelegramConfig() (*TelegramConfig, error) {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("failed to parse Telegram config: %w", err)
	}
	return c, nil
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c, err := LoadTelegramConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to load config")
	}
	return c
}

func (c TelegramConfig) IsAllowed(userID int64) bool {
	return len(c.AllowedUsers) == 0 || slices.Contains(c.AllowedUsers, userID)
}
