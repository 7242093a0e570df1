package memory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sandevgo/campinnova/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type promptPath string

func (p promptPath) GetSystemPromptPath() string { return string(p) }

func TestSysPrompt_Build(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		turns := NewSysPrompt(promptPath("")).Build()
		require.Len(t, turns, 1)
		assert.Equal(t, core.RoleSystem, turns[0].Role)
		assert.Contains(t, turns[0].Content, "Campinnova")
	})

	t.Run("file override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "SYSTEM.md")
		require.NoError(t, os.WriteFile(path, []byte("  be kind  \n"), 0644))

		turns := NewSysPrompt(promptPath(path)).Build()
		require.Len(t, turns, 1)
		assert.Equal(t, "be kind", turns[0].Content)
	})

	t.Run("missing file falls back", func(t *testing.T) {
		turns := NewSysPrompt(promptPath("/nonexistent/SYSTEM.md")).Build()
		assert.Contains(t, turns[0].Content, "Campinnova")
	})
}
