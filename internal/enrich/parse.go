package enrich

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/codewithwu/ContractAI/internal/risk"
)

var (
	codeBlockRe     = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")
	jsonObjectRe    = regexp.MustCompile(`(?s)\{.*\}`)
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
)

// ParseResponse turns raw model output into Fields. It tries strict JSON
// first, then line-oriented text extraction, then the deterministic fallback
// built from the findings. It never fails.
func ParseResponse(text string, findings []risk.Finding) *Fields {
	cleaned := stripCodeBlock(strings.TrimSpace(text))

	if m := jsonObjectRe.FindString(cleaned); m != "" {
		raw := trailingCommaRe.ReplaceAllString(m, "$1")
		var f Fields
		if err := json.Unmarshal([]byte(raw), &f); err == nil && strings.TrimSpace(f.Narrative) != "" {
			f.TierHint = normalizeTier(f.TierHint)
			return &f
		}
	}

	if f := extractFromText(cleaned); f != nil {
		return f
	}
	return FallbackFields(findings)
}

func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

// extractFromText salvages fields from a non-JSON answer by scanning lines
// for the markers the model tends to use. Returns nil when the text carries
// nothing usable.
func extractFromText(text string) *Fields {
	if text == "" {
		return nil
	}

	f := &Fields{
		LegalBasis:      "基于标准合同审查规范",
		NegotiationTips: "建议明确关键商业条款",
		TierHint:        "medium",
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "{") || strings.HasPrefix(line, "}") {
			continue
		}
		switch {
		case strings.Contains(line, "高风险"):
			f.TierHint = "high"
		case strings.Contains(line, "低风险"):
			f.TierHint = "low"
		case strings.Contains(line, "风险") && len([]rune(line)) > 10 && f.Narrative == "":
			f.Narrative = line
		case strings.Contains(line, "建议") || strings.Contains(line, "修改"):
			f.Suggestions = append(f.Suggestions, line)
		case strings.Contains(line, "法律") || strings.Contains(line, "依据"):
			f.LegalBasis = line
		case strings.Contains(line, "谈判") || strings.Contains(line, "协商"):
			f.NegotiationTips = line
		}
	}

	if f.Narrative == "" {
		f.Narrative = truncateRunes(text, 300)
	}
	if len(f.Suggestions) > 3 {
		f.Suggestions = f.Suggestions[:3]
	} else if len(f.Suggestions) == 0 {
		f.Suggestions = []string{"建议由专业法务人员详细审查"}
	}
	return f
}

// FallbackFields builds purely deterministic advisory fields from the
// detector findings, used when the model gave nothing usable at all.
func FallbackFields(findings []risk.Finding) *Fields {
	var names []string
	seen := map[string]bool{}
	for _, fd := range findings {
		if !seen[fd.Name] {
			seen[fd.Name] = true
			names = append(names, fd.Name)
		}
	}

	f := &Fields{
		Narrative:       fmt.Sprintf("识别到%d个风险点，涉及：%s", len(findings), strings.Join(names, "、")),
		LegalBasis:      "基于标准合同审查规范",
		NegotiationTips: "建议明确关键商业条款",
	}
	for i, fd := range findings {
		if i == 3 {
			break
		}
		f.SpecificRisks = append(f.SpecificRisks, fd.Evidence)
	}
	f.Suggestions = fallbackSuggestions(findings)

	switch {
	case len(findings) > 3:
		f.TierHint = "high"
	case len(findings) > 0:
		f.TierHint = "medium"
	default:
		f.TierHint = "low"
		f.Narrative = "未发现明显风险"
	}
	return f
}

func fallbackSuggestions(findings []risk.Finding) []string {
	for _, fd := range findings {
		switch {
		case containsAny(fd.Evidence, "付款", "支付", "金额", "违约金"):
			return []string{"建议明确付款时间和条件，例如：验收合格后15个工作日内支付剩余款项"}
		case containsAny(fd.Evidence, "验收", "标准", "交付"):
			return []string{"建议具体化验收标准，参照明确的技术规格和验收清单"}
		case strings.Contains(fd.Evidence, "管辖"):
			return []string{"建议选择中立的管辖法院"}
		}
	}
	return []string{"建议由专业法务人员审查此条款"}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func normalizeTier(s string) string {
	switch strings.TrimSpace(s) {
	case "高风险", "high":
		return "high"
	case "中风险", "medium":
		return "medium"
	case "低风险", "low":
		return "low"
	}
	return ""
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
