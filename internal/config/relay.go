package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/campinnova/pkg/log"
)

// RelayConfig describes how a chat session reaches the completion relay.
type RelayConfig struct {
	URL string `env:"RELAY_URL" envDefault:"http://localhost:5174/api/chat"`
	// Zero disables the per-call deadline.
	Timeout time.Duration `env:"RELAY_TIMEOUT" envDefault:"60s"`
}

func LoadRelayConfig() (*RelayConfig, error) {
	c := &RelayConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func NewRelayConfig(ctx context.Context) *RelayConfig {
	c, err := LoadRelayConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Relay config")
	}
	return c
}

func (c RelayConfig) GetRelayURL() string {
	return c.URL
}

func (c RelayConfig) GetRelayTimeout() time.Duration {
	return c.Timeout
}
