package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty reply",
			input:    "",
			expected: "",
		},
		{
			name:     "plain reply",
			input:    "Try short study sprints.",
			expected: "Try short study sprints.\n",
		},
		{
			name:     "bold title",
			input:    "**Commands**",
			expected: "<strong>Commands</strong>\n",
		},
		{
			name:     "emphasis",
			input:    "*one step at a time*",
			expected: "<em>one step at a time</em>\n",
		},
		{
			name:     "inline code",
			input:    "`/helpline`",
			expected: "<code>/helpline</code>\n",
		},
		{
			name:     "helpline link",
			input:    "[helplines](https://www.mohfw.gov.in/pdf/helpline.pdf)",
			expected: "<a href=\"https://www.mohfw.gov.in/pdf/helpline.pdf\">helplines</a>\n",
		},
		{
			name:     "header tags stripped",
			input:    "# Breathing exercise",
			expected: "Breathing exercise\n",
		},
		{
			name:     "script tags sanitized",
			input:    "<script>alert('xss')</script>",
			expected: "\n",
		},
		{
			name:     "blockquote",
			input:    "> you are not alone",
			expected: "<blockquote>\nyou are not alone\n</blockquote>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MarkdownToTelegramHTML([]byte(tt.input)))
		})
	}
}

func TestMarkdownToPlain(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		contains    []string
		notContains []string
	}{
		{
			name:  "empty",
			input: "   ",
		},
		{
			name:        "plain reply",
			input:       "Try short study sprints.",
			contains:    []string{"Try short study sprints."},
			notContains: []string{"<p>"},
		},
		{
			name:        "formatting removed",
			input:       "**Session**  ›  `abc`",
			contains:    []string{"Session", "abc"},
			notContains: []string{"<strong>", "`"},
		},
		{
			name:        "link keeps target",
			input:       "[helplines](https://www.mohfw.gov.in/pdf/helpline.pdf)",
			contains:    []string{"helplines", "https://www.mohfw.gov.in/pdf/helpline.pdf"},
			notContains: []string{"<a"},
		},
		{
			name:     "list items",
			input:    "› first\n› second",
			contains: []string{"first", "second"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToPlain(tt.input)
			if len(tt.contains) == 0 {
				assert.Empty(t, got)
			}
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}
