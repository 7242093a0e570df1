package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/campinnova/pkg/log"
)

// UpstreamConfig describes the OpenAI-compatible completion service behind the relay.
type UpstreamConfig struct {
	Provider     string        `env:"LLM_PROVIDER" envDefault:"nvidia"`
	BaseURL      string        `env:"LLM_BASE_URL"`
	APIKey       string        `env:"LLM_API_KEY"`
	NVIDIAAPIKey string        `env:"NVIDIA_API_KEY"`
	Model        string        `env:"LLM_MODEL" envDefault:"qwen/qwen3-next-80b-a3b-instruct"`
	Temperature  float64       `env:"LLM_TEMPERATURE" envDefault:"0.6"`
	TopP         float64       `env:"LLM_TOP_P" envDefault:"0.7"`
	MaxTokens    int           `env:"LLM_MAX_TOKENS" envDefault:"4096"`
	Timeout      time.Duration `env:"LLM_HTTP_TIMEOUT" envDefault:"120s"`
}

func LoadUpstreamConfig() (*UpstreamConfig, error) {
	c := &UpstreamConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func NewUpstreamConfig(ctx context.Context) *UpstreamConfig {
	c, err := LoadUpstreamConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Upstream config")
	}
	return c
}

// GetAPIKey prefers the generic key and falls back to the NVIDIA one.
func (c UpstreamConfig) GetAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return c.NVIDIAAPIKey
}
