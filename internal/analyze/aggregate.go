package analyze

import (
	"errors"
	"time"

	"github.com/codewithwu/ContractAI/internal/risk"
)

// ErrEmptyDocument is returned when segmentation produced no clauses to
// aggregate. A report is never partially emitted.
var ErrEmptyDocument = errors.New("document produced no clauses")

// Report is the document-level summary over all clause analyses.
type Report struct {
	OverallScore          int              `json:"overall_risk_score"`
	Tier                  risk.Tier        `json:"risk_level"`
	ClauseCount           int              `json:"total_clauses"`
	TotalFindings         int              `json:"total_risks_found"`
	HighRiskClauseCount   int              `json:"high_risk_clauses"`
	MediumRiskClauseCount int              `json:"medium_risk_clauses"`
	Analyses              []ClauseAnalysis `json:"clauses"`
	Summary               string           `json:"summary"`

	// Set by the caller, not by aggregation.
	FileName  string    `json:"file_name,omitempty"`
	CreatedAt time.Time `json:"analyzed_at"`
}

// Aggregate folds clause analyses into a document report. The 60/80 clause
// thresholds match the scorer's tier mapping.
func Aggregate(analyses []ClauseAnalysis) (*Report, error) {
	if len(analyses) == 0 {
		return nil, ErrEmptyDocument
	}

	var totalFindings, high, medium, scoreSum int
	for _, a := range analyses {
		totalFindings += len(a.Findings)
		scoreSum += a.RiskScore
		switch {
		case a.RiskScore < 60:
			high++
		case a.RiskScore < 80:
			medium++
		}
	}

	overall := scoreSum / len(analyses)
	return &Report{
		OverallScore:          overall,
		Tier:                  risk.TierFor(overall),
		ClauseCount:           len(analyses),
		TotalFindings:         totalFindings,
		HighRiskClauseCount:   high,
		MediumRiskClauseCount: medium,
		Analyses:              analyses,
		Summary:               summaryFor(high),
		CreatedAt:             time.Now(),
	}, nil
}

// summaryFor picks the narrative by high-risk clause count: none, a few
// (1-2), or enough to escalate (3+).
func summaryFor(highRiskClauses int) string {
	switch {
	case highRiskClauses == 0:
		return "合同整体风险可控，建议关注个别中风险条款。"
	case highRiskClauses <= 2:
		return "合同存在少量高风险条款，建议重点审查付款条件、违约责任等条款。"
	default:
		return "合同存在多处高风险条款，建议法务部门重点审查。"
	}
}
