package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/campinnova/pkg/log"
)

type TelegramConfig struct {
	Token string `env:"TELEGRAM_TOKEN,required,notEmpty"`

	// Chats with no turn for SessionIdle are forgotten; the next message opens
	// a fresh session. 0 keeps every chat for the life of the process.
	SessionIdle time.Duration `env:"TELEGRAM_SESSION_IDLE" envDefault:"24h"`
	SweepEvery  time.Duration `env:"TELEGRAM_SESSION_SWEEP" envDefault:"10m"`
}

func LoadTelegramConfig() (*TelegramConfig, error) {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c, err := LoadTelegramConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	return c
}
