package triage

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/sandevgo/campinnova/internal/core"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// Rule binds one pattern to the severity it signals.
type Rule struct {
	Pattern  string `yaml:"pattern"`
	Severity string `yaml:"severity"`
}

// Document is the on-disk shape of a rule table.
type Document struct {
	Rules   []Rule   `yaml:"rules"`
	Consent []string `yaml:"consent"`
}

type tier struct {
	level core.RiskLevel
	re    *regexp.Regexp
}

// RuleSet is a compiled, immutable rule table. It is safe for concurrent use.
type RuleSet struct {
	tiers   []tier
	consent *regexp.Regexp
}

// Default returns the built-in rule table.
func Default() *RuleSet {
	rs, err := Parse(defaultRules)
	if err != nil {
		panic("triage: invalid embedded rules: " + err.Error())
	}
	return rs
}

// Load reads a rule table from path. An empty path yields the built-in table.
func Load(path string) (*RuleSet, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*RuleSet, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	return Compile(doc)
}

// Compile groups patterns by severity, most severe first.
func Compile(doc Document) (*RuleSet, error) {
	grouped := make(map[core.RiskLevel][]string)
	for i, r := range doc.Rules {
		lvl, err := core.ParseRiskLevel(r.Severity)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		if lvl == core.RiskNone {
			return nil, fmt.Errorf("rule %d: severity none cannot be matched", i)
		}
		if strings.TrimSpace(r.Pattern) == "" {
			return nil, fmt.Errorf("rule %d: empty pattern", i)
		}
		grouped[lvl] = append(grouped[lvl], quoteReplacer.Replace(r.Pattern))
	}

	rs := &RuleSet{}
	for lvl, patterns := range grouped {
		re, err := alternation(patterns)
		if err != nil {
			return nil, fmt.Errorf("%s rules: %w", lvl, err)
		}
		rs.tiers = append(rs.tiers, tier{level: lvl, re: re})
	}
	sort.Slice(rs.tiers, func(i, j int) bool { return rs.tiers[i].level > rs.tiers[j].level })

	if len(doc.Consent) > 0 {
		words := make([]string, 0, len(doc.Consent))
		for _, w := range doc.Consent {
			if w = strings.TrimSpace(w); w != "" {
				words = append(words, quoteReplacer.Replace(w))
			}
		}
		re, err := alternation(words)
		if err != nil {
			return nil, fmt.Errorf("consent words: %w", err)
		}
		rs.consent = re
	}
	return rs, nil
}

func alternation(patterns []string) (*regexp.Regexp, error) {
	parts := make([]string, len(patterns))
	for i, p := range patterns {
		if _, err := regexp.Compile(p); err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		parts[i] = "(?:" + p + ")"
	}
	return regexp.Compile("(?i)" + strings.Join(parts, "|"))
}

var quoteReplacer = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

func normalize(s string) string {
	return quoteReplacer.Replace(strings.ToLower(s))
}
