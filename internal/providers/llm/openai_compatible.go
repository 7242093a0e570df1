package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandevgo/campinnova/internal/core"
)

// ErrEmptyChoices is returned when the upstream answers 200 without any choice.
var ErrEmptyChoices = errors.New("empty choices")

// Sampling holds the fixed generation parameters sent with every request.
type Sampling struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}

type OpenAICompatible struct {
	baseProvider
	sampling     Sampling
	authHeader   string
	authPrefix   string
	extraHeaders map[string]string
}

type OpenAICompatibleConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	Sampling     Sampling
	Timeout      time.Duration
	AuthHeader   string // e.g., "Authorization"
	AuthPrefix   string // e.g., "Bearer "
	ExtraHeaders map[string]string
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	return &OpenAICompatible{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout),
		sampling:     cfg.Sampling,
		authHeader:   cfg.AuthHeader,
		authPrefix:   cfg.AuthPrefix,
		extraHeaders: cfg.ExtraHeaders,
	}
}

type chatRequest struct {
	Model       string      `json:"model"`
	Messages    []core.Turn `json:"messages"`
	Temperature float64     `json:"temperature"`
	TopP        float64     `json:"top_p"`
	MaxTokens   int         `json:"max_tokens,omitempty"`
	Stream      bool        `json:"stream"`
}

// Complete performs one non-streaming chat completion. It never retries.
func (o *OpenAICompatible) Complete(ctx context.Context, turns []core.Turn) (string, error) {
	payload := chatRequest{
		Model:       o.model,
		Messages:    turns,
		Temperature: o.sampling.Temperature,
		TopP:        o.sampling.TopP,
		MaxTokens:   o.sampling.MaxTokens,
		Stream:      false,
	}

	headers := make(map[string]string)
	if o.authHeader != "" && o.apiKey != "" {
		headers[o.authHeader] = o.authPrefix + o.apiKey
	}
	for k, v := range o.extraHeaders {
		headers[k] = v
	}

	resp, err := o.doRequest(ctx, http.MethodPost, "/v1/chat/completions", payload, headers)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	return parseOpenAIResponse(resp)
}

func parseOpenAIResponse(resp *http.Response) (string, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var result struct {
		Choices []struct {
			Message core.Turn `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyChoices, string(data))
	}
	return result.Choices[0].Message.Content, nil
}
