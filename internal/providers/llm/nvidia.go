package llm

// NVIDIA serves the hosted NIM catalogue through an OpenAI-compatible API.
type NVIDIA struct {
	*OpenAICompatible
}

const nvidiaBaseURL = "https://integrate.api.nvidia.com"

func NewNVIDIA(cfg OpenAICompatibleConfig) *NVIDIA {
	if cfg.BaseURL == "" {
		cfg.BaseURL = nvidiaBaseURL
	}
	cfg.AuthHeader = "Authorization"
	cfg.AuthPrefix = "Bearer "
	return &NVIDIA{
		OpenAICompatible: NewOpenAICompatible(cfg),
	}
}
