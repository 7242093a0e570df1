package llm

import "github.com/sandevgo/campinnova/internal/core"

type OpenRouter struct {
	*OpenAICompatible
}

func NewOpenRouter(cfg OpenAICompatibleConfig) *OpenRouter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openrouter.ai/api"
	}
	cfg.AuthHeader = "Authorization"
	cfg.AuthPrefix = "Bearer "
	cfg.ExtraHeaders = map[string]string{
		"HTTP-Referer": core.AppRepositoryURL,
		"X-Title":      core.AppName,
	}
	return &OpenRouter{
		OpenAICompatible: NewOpenAICompatible(cfg),
	}
}
