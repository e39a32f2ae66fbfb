package risk

import (
	"fmt"
	"strings"
)

// Severity of a finding.
type Severity string

const (
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Finding is one detected risk signal in a clause body.
type Finding struct {
	Category Category `json:"category"`
	Name     string   `json:"name"`
	Severity Severity `json:"severity"`
	Evidence string   `json:"evidence"`
	Locator  string   `json:"locator"`
}

// Detect scans text against every rule. Each keyword hit yields an
// independent medium finding and each pattern match a high finding; hits are
// deliberately not deduplicated, so overlapping keywords and patterns within
// a category all contribute to scoring.
func (rs RuleSet) Detect(text string) []Finding {
	var out []Finding
	for _, rule := range rs.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				out = append(out, Finding{
					Category: rule.Category,
					Name:     rule.Name,
					Severity: SeverityMedium,
					Evidence: "keyword: " + kw,
					Locator:  keywordLocator(text, kw),
				})
			}
		}
		for _, p := range rule.Patterns {
			if p.Expr.MatchString(text) {
				out = append(out, Finding{
					Category: rule.Category,
					Name:     rule.Name,
					Severity: SeverityHigh,
					Evidence: p.Label,
					Locator:  "clause body",
				})
			}
		}
	}
	return out
}

// keywordLocator returns the 1-based line of the first occurrence.
func keywordLocator(text, kw string) string {
	for i, line := range strings.Split(text, "\n") {
		if strings.Contains(line, kw) {
			return fmt.Sprintf("line %d", i+1)
		}
	}
	return "clause body"
}
