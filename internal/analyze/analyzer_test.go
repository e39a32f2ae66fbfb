package analyze

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codewithwu/ContractAI/internal/contract"
	"github.com/codewithwu/ContractAI/internal/enrich"
	"github.com/codewithwu/ContractAI/internal/risk"
)

// fakeEnricher records calls and returns a canned result or error.
type fakeEnricher struct {
	calls  int
	fields *enrich.Fields
	err    error
}

func (f *fakeEnricher) Enrich(ctx context.Context, body, title string, findings []risk.Finding) (*enrich.Fields, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.fields, nil
}

var (
	riskyClause = contract.Clause{
		Title: "第一条 付款",
		Body:  "第一条 付款\n甲方应支付违约金10%",
	}
	cleanClause = contract.Clause{
		Title: "第三条 其他",
		Body:  "第三条 其他\n本合同一式两份。",
	}
)

func TestAnalyze_ScoreAndTier(t *testing.T) {
	a := New(risk.DefaultRules(), nil, PolicyNever, 0, nil)

	got := a.Analyze(context.Background(), riskyClause)
	if got.RiskScore != 55 {
		t.Errorf("expected score 55, got %d", got.RiskScore)
	}
	if got.Tier != risk.TierHigh {
		t.Errorf("expected tier high, got %q", got.Tier)
	}
	if len(got.Findings) != 2 {
		t.Errorf("expected 2 findings, got %d", len(got.Findings))
	}
	if got.Enrichment != nil {
		t.Error("enrichment must be nil under the never policy")
	}
}

func TestAnalyze_PolicyAlways(t *testing.T) {
	fe := &fakeEnricher{fields: &enrich.Fields{Narrative: "测试", TierHint: "low"}}
	a := New(risk.DefaultRules(), fe, PolicyAlways, time.Second, nil)

	got := a.AnalyzeAll(context.Background(), []contract.Clause{riskyClause, cleanClause})
	if fe.calls != 2 {
		t.Errorf("expected 2 enrichment calls, got %d", fe.calls)
	}
	for i, ca := range got {
		if ca.Enrichment == nil {
			t.Errorf("clause %d: expected enrichment", i)
		}
	}
}

func TestAnalyze_PolicyHighRiskOnly(t *testing.T) {
	fe := &fakeEnricher{fields: &enrich.Fields{Narrative: "测试"}}
	a := New(risk.DefaultRules(), fe, PolicyHighRiskOnly, time.Second, nil)

	got := a.AnalyzeAll(context.Background(), []contract.Clause{riskyClause, cleanClause})
	if fe.calls != 1 {
		t.Errorf("expected 1 enrichment call for the sub-70 clause, got %d", fe.calls)
	}
	if got[0].Enrichment == nil {
		t.Error("risky clause (score 55) should be enriched")
	}
	if got[1].Enrichment != nil {
		t.Errorf("clean clause (score %d) should not be enriched", got[1].RiskScore)
	}
}

func TestAnalyze_PolicyNeverSkipsEnricher(t *testing.T) {
	fe := &fakeEnricher{fields: &enrich.Fields{Narrative: "测试"}}
	a := New(risk.DefaultRules(), fe, PolicyNever, time.Second, nil)

	a.Analyze(context.Background(), riskyClause)
	if fe.calls != 0 {
		t.Errorf("expected no enrichment calls, got %d", fe.calls)
	}
}

func TestAnalyze_EnrichmentFailureDegrades(t *testing.T) {
	fe := &fakeEnricher{err: errors.New("api down")}
	a := New(risk.DefaultRules(), fe, PolicyAlways, time.Second, nil)

	got := a.Analyze(context.Background(), riskyClause)
	if got.Enrichment != nil {
		t.Error("enrichment must be nil after a failed call")
	}

	// The degraded result is identical to one computed with enrichment off.
	plain := New(risk.DefaultRules(), nil, PolicyNever, 0, nil).Analyze(context.Background(), riskyClause)
	if got.RiskScore != plain.RiskScore || got.Tier != plain.Tier {
		t.Errorf("degraded result differs: got %d/%q, want %d/%q",
			got.RiskScore, got.Tier, plain.RiskScore, plain.Tier)
	}
}

func TestAnalyze_TierHintDoesNotOverride(t *testing.T) {
	fe := &fakeEnricher{fields: &enrich.Fields{Narrative: "测试", TierHint: "low"}}
	a := New(risk.DefaultRules(), fe, PolicyAlways, time.Second, nil)

	got := a.Analyze(context.Background(), riskyClause)
	if got.Tier != risk.TierHigh {
		t.Errorf("tier hint must not override the computed tier, got %q", got.Tier)
	}
	if got.Enrichment == nil || got.Enrichment.TierHint != "low" {
		t.Error("the advisory hint itself should be preserved")
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := New(risk.DefaultRules(), nil, PolicyNever, 0, nil)
	first := a.Analyze(context.Background(), riskyClause)
	second := a.Analyze(context.Background(), riskyClause)
	if first.RiskScore != second.RiskScore || len(first.Findings) != len(second.Findings) {
		t.Errorf("repeated analysis diverged: %+v vs %+v", first, second)
	}
}

func TestWithPolicy(t *testing.T) {
	fe := &fakeEnricher{fields: &enrich.Fields{Narrative: "测试"}}
	base := New(risk.DefaultRules(), fe, PolicyNever, time.Second, nil)

	always := base.WithPolicy(PolicyAlways)
	always.Analyze(context.Background(), cleanClause)
	if fe.calls != 1 {
		t.Errorf("expected the derived analyzer to enrich, got %d calls", fe.calls)
	}

	// The original is untouched.
	base.Analyze(context.Background(), cleanClause)
	if fe.calls != 1 {
		t.Errorf("expected the base analyzer to stay on never, got %d calls", fe.calls)
	}
}

func TestParsePolicy(t *testing.T) {
	for _, s := range []string{"always", "high_risk_only", "never"} {
		if _, err := ParsePolicy(s); err != nil {
			t.Errorf("ParsePolicy(%q): unexpected error %v", s, err)
		}
	}
	if _, err := ParsePolicy("sometimes"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestDocument_SegmentsAndAggregates(t *testing.T) {
	a := New(risk.DefaultRules(), nil, PolicyNever, 0, nil)
	paragraphs := []contract.Paragraph{
		{Text: "第一条 付款", Position: 0},
		{Text: "甲方应支付违约金10%", Position: 1},
		{Text: "第二条 验收", Position: 2},
		{Text: "按照行业通用标准验收", Position: 3},
	}

	report, err := a.Document(context.Background(), paragraphs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.ClauseCount != 2 {
		t.Errorf("expected 2 clauses, got %d", report.ClauseCount)
	}
	if report.OverallScore != 50 {
		t.Errorf("expected overall score 50, got %d", report.OverallScore)
	}
	if report.Tier != risk.TierHigh {
		t.Errorf("expected tier high, got %q", report.Tier)
	}
	if report.HighRiskClauseCount != 2 {
		t.Errorf("expected 2 high-risk clauses, got %d", report.HighRiskClauseCount)
	}
	if report.TotalFindings != 5 {
		t.Errorf("expected 5 findings, got %d", report.TotalFindings)
	}
}

func TestDocument_Empty(t *testing.T) {
	a := New(risk.DefaultRules(), nil, PolicyNever, 0, nil)
	if _, err := a.Document(context.Background(), nil); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
}
