package triage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sandevgo/campinnova/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSet_Classify(t *testing.T) {
	rs := Default()

	tests := []struct {
		name string
		text string
		want core.RiskLevel
	}{
		{name: "high phrase", text: "I want to die", want: core.RiskHigh},
		{name: "upper case", text: "I WANT TO DIE", want: core.RiskHigh},
		{name: "punctuation around phrase", text: "...honestly, i want to die!!!", want: core.RiskHigh},
		{name: "substring inside word", text: "thinking about suicidal stuff and suicide", want: core.RiskHigh},
		{name: "typographic apostrophe", text: "I’m thinking of suicide", want: core.RiskHigh},
		{name: "kill myself", text: "sometimes I could kill myself over grades", want: core.RiskHigh},
		{name: "moderate phrase", text: "I feel hopeless", want: core.RiskModerate},
		{name: "moderate mixed case", text: "So much AnXiEtY lately", want: core.RiskModerate},
		{name: "moderate typographic apostrophe", text: "I can’t go on like this", want: core.RiskModerate},
		{name: "high wins over moderate", text: "I feel hopeless and I want to end my life", want: core.RiskHigh},
		{name: "benign", text: "How do I manage exam stress?", want: core.RiskNone},
		{name: "empty", text: "", want: core.RiskNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rs.Classify(tt.text))
		})
	}
}

func TestRuleSet_DetectConsent(t *testing.T) {
	rs := Default()

	tests := []struct {
		text string
		want bool
	}{
		{"yes, please connect me", true},
		{"YES", true},
		{"ok", true},
		{"I allow it", true},
		{"I consent", true},
		{"I want to die", false},
		{"no", false},
		{"", false},
		// Substring matching is intentional: "token" contains "ok".
		{"just a token reply", true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, rs.DetectConsent(tt.text))
		})
	}
}

func TestCompile_OrdersBySeverity(t *testing.T) {
	// Moderate listed first must still lose to high.
	rs, err := Compile(Document{
		Rules: []Rule{
			{Pattern: "tired", Severity: "moderate"},
			{Pattern: "tired of living", Severity: "high"},
			{Pattern: "meh", Severity: "low"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, core.RiskHigh, rs.Classify("I am tired of living"))
	assert.Equal(t, core.RiskModerate, rs.Classify("so tired"))
	assert.Equal(t, core.RiskLow, rs.Classify("meh"))
	assert.False(t, rs.DetectConsent("yes"), "no consent words configured")
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{name: "unknown severity", doc: Document{Rules: []Rule{{Pattern: "x", Severity: "extreme"}}}},
		{name: "none severity", doc: Document{Rules: []Rule{{Pattern: "x", Severity: "none"}}}},
		{name: "empty pattern", doc: Document{Rules: []Rule{{Pattern: "  ", Severity: "high"}}}},
		{name: "bad regexp", doc: Document{Rules: []Rule{{Pattern: "(unclosed", Severity: "high"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.doc)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses defaults", func(t *testing.T) {
		rs, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, core.RiskHigh, rs.Classify("end my life"))
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		content := "rules:\n  - {severity: high, pattern: \"mujhe marna hai\"}\nconsent: [\"haan\"]\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		rs, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, core.RiskHigh, rs.Classify("Mujhe marna hai"))
		assert.Equal(t, core.RiskNone, rs.Classify("I want to die"))
		assert.True(t, rs.DetectConsent("haan"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
