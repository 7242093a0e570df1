package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/campinnova/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"CAMPINNOVA_RUNTIME_PATH" envDefault:".campinnova"`

	// Triage
	RulesPath string `env:"TRIAGE_RULES_PATH"`

	// Session
	ContextWindowSize int    `env:"CONTEXT_WINDOW_SIZE" envDefault:"10"`
	HistoryKey        string `env:"CHAT_HISTORY_KEY" envDefault:"campinnova_chat_history"`
	StartedAtKey      string `env:"CHAT_STARTED_AT_KEY" envDefault:"campinnova_chat_started_at"`

	// Storage backend: "sqlite" or "memory"
	Storage string `env:"STORAGE_BACKEND" envDefault:"sqlite"`

	// Relay mode: "http" talks to a relay server, "direct" calls the upstream in-process
	RelayMode string `env:"RELAY_MODE" envDefault:"http"`

	// Transport Flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
	EnableServer   bool `env:"ENABLE_SERVER" envDefault:"true"`
	EnableMQTT     bool `env:"ENABLE_MQTT" envDefault:"false"`
}

func LoadAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)

	switch c.Storage {
	case "sqlite", "memory":
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage)
	}
	switch c.RelayMode {
	case "http", "direct":
	default:
		return nil, fmt.Errorf("unknown RELAY_MODE %q", c.RelayMode)
	}
	if c.ContextWindowSize < 1 {
		return nil, fmt.Errorf("CONTEXT_WINDOW_SIZE must be positive, got %d", c.ContextWindowSize)
	}
	return c, nil
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := LoadAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "campinnova.db")
}

func (c AppConfig) GetContextWindowSize() int {
	return c.ContextWindowSize
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}
