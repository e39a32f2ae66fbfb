// Package analyze composes the detector, scorer and optional enrichment into
// per-clause analyses and document-level reports.
package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/codewithwu/ContractAI/internal/clause"
	"github.com/codewithwu/ContractAI/internal/contract"
	"github.com/codewithwu/ContractAI/internal/enrich"
	"github.com/codewithwu/ContractAI/internal/risk"
)

// Policy controls when the enrichment capability is invoked.
type Policy string

const (
	PolicyAlways       Policy = "always"
	PolicyHighRiskOnly Policy = "high_risk_only"
	PolicyNever        Policy = "never"
)

// Under PolicyHighRiskOnly only clauses scoring below this get enriched.
const enrichScoreThreshold = 70

// ParsePolicy validates a policy string.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyAlways, PolicyHighRiskOnly, PolicyNever:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown enrichment policy %q", s)
}

// Enricher is the external LLM capability.
type Enricher interface {
	Enrich(ctx context.Context, body, title string, findings []risk.Finding) (*enrich.Fields, error)
}

// ClauseAnalysis is the per-clause result. Enrichment is nil when it was not
// attempted or not available; score and tier always come from the
// deterministic scorer.
type ClauseAnalysis struct {
	Clause     contract.Clause `json:"clause"`
	Findings   []risk.Finding  `json:"findings"`
	RiskScore  int             `json:"risk_score"`
	Tier       risk.Tier       `json:"tier"`
	Enrichment *enrich.Fields  `json:"enrichment,omitempty"`
}

// Analyzer runs detection, scoring and policy-gated enrichment per clause.
type Analyzer struct {
	rules    risk.RuleSet
	enricher Enricher
	policy   Policy
	timeout  time.Duration
	log      *slog.Logger
}

func New(rules risk.RuleSet, enricher Enricher, policy Policy, timeout time.Duration, log *slog.Logger) *Analyzer {
	if log == nil {
		log = slog.Default()
	}
	return &Analyzer{
		rules:    rules,
		enricher: enricher,
		policy:   policy,
		timeout:  timeout,
		log:      log,
	}
}

// Analyze evaluates one clause. Enrichment failures never propagate; the
// clause degrades to the bare detector/scorer result.
func (a *Analyzer) Analyze(ctx context.Context, cl contract.Clause) ClauseAnalysis {
	findings := a.rules.Detect(cl.Body)
	score := risk.Score(findings)
	result := ClauseAnalysis{
		Clause:    cl,
		Findings:  findings,
		RiskScore: score,
		Tier:      risk.TierFor(score),
	}

	if a.enricher == nil || !a.shouldEnrich(score) {
		return result
	}

	ectx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ectx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	fields, err := a.enricher.Enrich(ectx, cl.Body, cl.Title, findings)
	if err != nil {
		a.log.Warn("enrichment failed, using detector result",
			"clause", cl.Title,
			"score", score,
			"error", err,
		)
		return result
	}

	// Advisory only: the tier hint inside the fields never overrides the
	// computed score or tier.
	result.Enrichment = fields
	return result
}

// WithPolicy returns a copy of the analyzer using a different enrichment
// policy, for per-request overrides.
func (a *Analyzer) WithPolicy(p Policy) *Analyzer {
	b := *a
	b.policy = p
	return &b
}

func (a *Analyzer) shouldEnrich(score int) bool {
	switch a.policy {
	case PolicyAlways:
		return true
	case PolicyHighRiskOnly:
		return score < enrichScoreThreshold
	default:
		return false
	}
}

// AnalyzeAll analyzes clauses sequentially in document order. The
// enrichment call is I/O-bound and rate-sensitive, so there is no fan-out.
func (a *Analyzer) AnalyzeAll(ctx context.Context, clauses []contract.Clause) []ClauseAnalysis {
	out := make([]ClauseAnalysis, 0, len(clauses))
	for i, cl := range clauses {
		a.log.Debug("analyzing clause", "index", i, "title", cl.Title)
		out = append(out, a.Analyze(ctx, cl))
	}
	return out
}

// Document segments paragraphs into clauses and produces the full report.
func (a *Analyzer) Document(ctx context.Context, paragraphs []contract.Paragraph) (*Report, error) {
	clauses := clause.Segment(paragraphs)
	return Aggregate(a.AnalyzeAll(ctx, clauses))
}
