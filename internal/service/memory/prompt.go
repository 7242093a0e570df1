package memory

import (
	_ "embed"
	"os"
	"strings"

	"github.com/sandevgo/campinnova/internal/core"
)

//go:embed system_prompt.md
var defaultSystemPrompt string

// SysPrompt builds the system turn prepended to every upstream completion.
type SysPrompt struct {
	cfg core.PromptConfig
}

func NewSysPrompt(cfg core.PromptConfig) *SysPrompt {
	return &SysPrompt{
		cfg: cfg,
	}
}

// Build returns the operator-supplied prompt file when readable, the built-in prompt otherwise.
func (p *SysPrompt) Build() []core.Turn {
	content := defaultSystemPrompt
	if p.cfg != nil && p.cfg.GetSystemPromptPath() != "" {
		if data, err := os.ReadFile(p.cfg.GetSystemPromptPath()); err == nil && strings.TrimSpace(string(data)) != "" {
			content = string(data)
		}
	}
	return []core.Turn{{Role: core.RoleSystem, Content: strings.TrimSpace(content)}}
}
