package relay

import (
	"context"

	"github.com/sandevgo/campinnova/internal/core"
	"github.com/sandevgo/campinnova/internal/providers/llm"
	"github.com/sandevgo/campinnova/pkg/log"
)

// DefaultReply is used when the upstream returns a choice without content.
const DefaultReply = "I'm here to help."

type promptBuilder interface {
	Build() []core.Turn
}

// Upstream is a Completer that talks to the model provider directly,
// prepending the system prompt. The relay server and direct mode share it.
type Upstream struct {
	provider llm.Provider
	prompt   promptBuilder
}

func NewUpstream(provider llm.Provider, prompt promptBuilder) *Upstream {
	return &Upstream{
		provider: provider,
		prompt:   prompt,
	}
}

func (u *Upstream) Complete(ctx context.Context, turns []core.Turn) (string, error) {
	var messages []core.Turn
	if u.prompt != nil {
		messages = append(messages, u.prompt.Build()...)
	}
	messages = append(messages, turns...)

	// Token accounting loads the BPE tables on first use, so only pay for it when debugging.
	if ev := log.FromCtx(ctx).Debug(); ev.Enabled() {
		tokens, exact := llm.CountTokens(messages)
		ev.Str("model", u.provider.Model()).
			Int("turns", len(messages)).
			Int("prompt_tokens", tokens).
			Bool("exact", exact).
			Msg("sending completion request")
	}

	reply, err := u.provider.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	if reply == "" {
		return DefaultReply, nil
	}
	return reply, nil
}
