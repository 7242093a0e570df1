package llm

type Ollama struct {
	*OpenAICompatible
}

func NewOllama(cfg OpenAICompatibleConfig) *Ollama {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	cfg.AuthHeader = "Authorization"
	cfg.AuthPrefix = "Bearer "
	return &Ollama{
		OpenAICompatible: NewOpenAICompatible(cfg),
	}
}
