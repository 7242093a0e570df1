package llm

import "fmt"

// NewCustom targets any self-hosted OpenAI-compatible endpoint.
func NewCustom(cfg OpenAICompatibleConfig) (*OpenAICompatible, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("custom provider requires LLM_BASE_URL")
	}
	cfg.AuthHeader = "Authorization"
	cfg.AuthPrefix = "Bearer "
	return NewOpenAICompatible(cfg), nil
}
