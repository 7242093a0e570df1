package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/campinnova/pkg/log"
)

type ServerConfig struct {
	Addr             string        `env:"CAMPINNOVA_ADDR" envDefault:":5174"`
	SystemPromptPath string        `env:"SYSTEM_PROMPT_PATH"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func LoadServerConfig() (*ServerConfig, error) {
	c := &ServerConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func NewServerConfig(ctx context.Context) *ServerConfig {
	c, err := LoadServerConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Server config")
	}
	return c
}

func (c ServerConfig) GetSystemPromptPath() string {
	return c.SystemPromptPath
}
