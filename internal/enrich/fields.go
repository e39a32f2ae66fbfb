// Package enrich calls an LLM for advisory clause annotations. Its output
// never overrides the deterministic risk score.
package enrich

// Fields are the advisory annotations for one clause, produced by the LLM or
// by the deterministic fallback when the model's answer cannot be parsed.
type Fields struct {
	Narrative       string   `json:"risk_analysis"`
	SpecificRisks   []string `json:"specific_risks"`
	Suggestions     []string `json:"modification_suggestions"`
	LegalBasis      string   `json:"legal_basis"`
	NegotiationTips string   `json:"negotiation_tips"`
	TierHint        string   `json:"risk_level"` // low/medium/high, informational only
}
