package enrich

import (
	"strings"
	"testing"

	"github.com/codewithwu/ContractAI/internal/risk"
)

func TestParseResponse_PlainJSON(t *testing.T) {
	raw := `{"risk_analysis": "该条款的违约金比例约定模糊", "specific_risks": ["比例未封顶"], "modification_suggestions": ["约定违约金上限"], "risk_level": "高风险"}`

	f := ParseResponse(raw, nil)
	if f.Narrative != "该条款的违约金比例约定模糊" {
		t.Errorf("narrative: got %q", f.Narrative)
	}
	if len(f.SpecificRisks) != 1 || f.SpecificRisks[0] != "比例未封顶" {
		t.Errorf("specific risks: got %+v", f.SpecificRisks)
	}
	if f.TierHint != "high" {
		t.Errorf("expected normalized tier %q, got %q", "high", f.TierHint)
	}
}

func TestParseResponse_CodeFencedJSON(t *testing.T) {
	raw := "```json\n{\"risk_analysis\": \"存在管辖风险\", \"risk_level\": \"medium\"}\n```"

	f := ParseResponse(raw, nil)
	if f.Narrative != "存在管辖风险" {
		t.Errorf("narrative: got %q", f.Narrative)
	}
	if f.TierHint != "medium" {
		t.Errorf("tier hint: got %q", f.TierHint)
	}
}

func TestParseResponse_JSONWithSurroundingText(t *testing.T) {
	raw := "以下是分析结果：\n{\"risk_analysis\": \"付款条件需细化\", \"risk_level\": \"低风险\",}\n请参考。"

	// The trailing comma is repaired and the embedded object extracted.
	f := ParseResponse(raw, nil)
	if f.Narrative != "付款条件需细化" {
		t.Errorf("narrative: got %q", f.Narrative)
	}
	if f.TierHint != "low" {
		t.Errorf("tier hint: got %q", f.TierHint)
	}
}

func TestParseResponse_TextFallback(t *testing.T) {
	raw := "这一条属于高风险条款，违约金比例没有上限约定。\n建议增加违约金上限条款。"

	f := ParseResponse(raw, nil)
	if f.TierHint != "high" {
		t.Errorf("tier hint: got %q", f.TierHint)
	}
	if f.Narrative == "" {
		t.Error("expected a narrative extracted from text")
	}
	if len(f.Suggestions) == 0 || !strings.Contains(f.Suggestions[0], "建议") {
		t.Errorf("suggestions: got %+v", f.Suggestions)
	}
}

func TestParseResponse_EmptyUsesFallback(t *testing.T) {
	findings := []risk.Finding{
		{Name: "财务风险", Severity: risk.SeverityHigh, Evidence: "违约金比例需确认"},
		{Name: "财务风险", Severity: risk.SeverityMedium, Evidence: "keyword: 违约金"},
	}

	f := ParseResponse("", findings)
	if !strings.Contains(f.Narrative, "识别到2个风险点") {
		t.Errorf("narrative: got %q", f.Narrative)
	}
	if !strings.Contains(f.Narrative, "财务风险") {
		t.Errorf("narrative should name the category, got %q", f.Narrative)
	}
	if f.TierHint != "medium" {
		t.Errorf("tier hint: got %q", f.TierHint)
	}
}

func TestFallbackFields_NoFindings(t *testing.T) {
	f := FallbackFields(nil)
	if f.TierHint != "low" {
		t.Errorf("tier hint: got %q", f.TierHint)
	}
	if f.Narrative != "未发现明显风险" {
		t.Errorf("narrative: got %q", f.Narrative)
	}
}

func TestFallbackFields_ManyFindings(t *testing.T) {
	findings := make([]risk.Finding, 5)
	for i := range findings {
		findings[i] = risk.Finding{Name: "法律风险", Evidence: "管辖地单方有利"}
	}
	f := FallbackFields(findings)
	if f.TierHint != "high" {
		t.Errorf("tier hint: got %q", f.TierHint)
	}
	if len(f.SpecificRisks) != 3 {
		t.Errorf("specific risks capped at 3, got %d", len(f.SpecificRisks))
	}
	if !strings.Contains(f.Suggestions[0], "管辖") {
		t.Errorf("suggestions should match the evidence, got %+v", f.Suggestions)
	}
}

func TestFallbackFields_Deterministic(t *testing.T) {
	findings := []risk.Finding{{Name: "交付风险", Evidence: "keyword: 验收"}}
	a := FallbackFields(findings)
	b := FallbackFields(findings)
	if a.Narrative != b.Narrative || a.TierHint != b.TierHint {
		t.Errorf("fallback diverged: %+v vs %+v", a, b)
	}
}

func TestStripCodeBlock(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\nplain\n```", "plain"},
		{`{"a":1}`, `{"a":1}`},
		{"no fences here", "no fences here"},
	}
	for _, c := range cases {
		if got := stripCodeBlock(c.in); got != c.want {
			t.Errorf("stripCodeBlock(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeTier(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"high", "high"},
		{"高风险", "high"},
		{"中风险", "medium"},
		{"低风险", "low"},
		{" low ", "low"},
		{"极高", ""},
	}
	for _, c := range cases {
		if got := normalizeTier(c.in); got != c.want {
			t.Errorf("normalizeTier(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
