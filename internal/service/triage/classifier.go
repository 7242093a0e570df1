package triage

import "github.com/sandevgo/campinnova/internal/core"

// Classify returns the most severe level whose patterns match text.
// Matching is substring-level over the lower-cased input; the first tier wins.
func (rs *RuleSet) Classify(text string) core.RiskLevel {
	if text == "" {
		return core.RiskNone
	}
	norm := normalize(text)
	for _, t := range rs.tiers {
		if t.re.MatchString(norm) {
			return t.level
		}
	}
	return core.RiskNone
}

// DetectConsent reports whether text contains an affirmative word.
// It runs on the same message that was classified, not on a follow-up answer.
func (rs *RuleSet) DetectConsent(text string) bool {
	if rs.consent == nil || text == "" {
		return false
	}
	return rs.consent.MatchString(normalize(text))
}
