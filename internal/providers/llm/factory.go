package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/campinnova/internal/config"
	"github.com/sandevgo/campinnova/internal/core"
	"github.com/sandevgo/campinnova/pkg/log"
)

// Provider is an upstream completion service.
type Provider interface {
	Complete(ctx context.Context, turns []core.Turn) (string, error)
	Model() string
}

// NewProvider creates the upstream provider selected by configuration.
func NewProvider(ctx context.Context, cfg *config.UpstreamConfig) (Provider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Msg("starting llm provider")

	oc := OpenAICompatibleConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.GetAPIKey(),
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
		Sampling: Sampling{
			Temperature: cfg.Temperature,
			TopP:        cfg.TopP,
			MaxTokens:   cfg.MaxTokens,
		},
	}

	switch cfg.Provider {
	case "nvidia":
		return NewNVIDIA(oc), nil
	case "openai":
		if oc.BaseURL == "" {
			oc.BaseURL = "https://api.openai.com"
		}
		return newCustomProvider(oc)
	case "openrouter":
		return NewOpenRouter(oc), nil
	case "ollama":
		return NewOllama(oc), nil
	case "custom":
		return newCustomProvider(oc)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}

func newCustomProvider(oc OpenAICompatibleConfig) (Provider, error) {
	p, err := NewCustom(oc)
	if err != nil {
		return nil, err
	}
	return p, nil
}
