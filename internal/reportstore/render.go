package reportstore

import (
	"fmt"
	"strings"
	"time"

	"github.com/codewithwu/ContractAI/internal/analyze"
	"github.com/codewithwu/ContractAI/internal/risk"
)

// RenderText produces the human-readable companion to the JSON report.
func RenderText(report *analyze.Report) string {
	var sb strings.Builder
	rule := strings.Repeat("=", 80)
	thin := strings.Repeat("-", 40)

	sb.WriteString(rule + "\n")
	sb.WriteString("                ContractAI 智能合同审查报告\n")
	sb.WriteString(rule + "\n\n")

	sb.WriteString("报告摘要\n")
	sb.WriteString(thin + "\n")
	fileName := report.FileName
	if fileName == "" {
		fileName = "未知"
	}
	fmt.Fprintf(&sb, "合同文件: %s\n", fileName)
	fmt.Fprintf(&sb, "分析时间: %s\n", report.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "整体风险: %d/100 - %s\n", report.OverallScore, tierLabel(report.Tier))
	fmt.Fprintf(&sb, "审查条款: %d 个\n", report.ClauseCount)
	fmt.Fprintf(&sb, "发现风险: %d 处\n", report.TotalFindings)
	fmt.Fprintf(&sb, "高风险条款: %d 个\n", report.HighRiskClauseCount)
	fmt.Fprintf(&sb, "中风险条款: %d 个\n", report.MediumRiskClauseCount)
	fmt.Fprintf(&sb, "审查摘要: %s\n\n", report.Summary)

	sb.WriteString("高风险条款详情\n")
	sb.WriteString(thin + "\n")
	for _, a := range report.Analyses {
		if a.RiskScore >= 60 {
			continue
		}
		fmt.Fprintf(&sb, "\n%s\n", a.Clause.Title)
		fmt.Fprintf(&sb, "风险分数: %d/100\n", a.RiskScore)
		for _, f := range a.Findings {
			fmt.Fprintf(&sb, "  • [%s] %s (%s)\n", f.Name, f.Evidence, f.Locator)
		}
		if e := a.Enrichment; e != nil {
			fmt.Fprintf(&sb, "风险分析: %s\n", e.Narrative)
			for _, r := range e.SpecificRisks {
				fmt.Fprintf(&sb, "  具体风险: %s\n", r)
			}
			for _, s := range e.Suggestions {
				fmt.Fprintf(&sb, "  修改建议: %s\n", s)
			}
			if e.NegotiationTips != "" {
				fmt.Fprintf(&sb, "谈判建议: %s\n", e.NegotiationTips)
			}
		}
		sb.WriteString(thin + "\n")
	}

	var enriched int
	for _, a := range report.Analyses {
		if a.Enrichment != nil {
			enriched++
		}
	}
	fmt.Fprintf(&sb, "\nLLM深度分析 (%d个条款)\n", enriched)
	sb.WriteString(thin + "\n")
	for _, a := range report.Analyses {
		if a.Enrichment == nil {
			continue
		}
		fmt.Fprintf(&sb, "\n%s\n", a.Clause.Title)
		fmt.Fprintf(&sb, "%s\n", a.Enrichment.Narrative)
		if a.Enrichment.LegalBasis != "" {
			fmt.Fprintf(&sb, "法律依据: %s\n", a.Enrichment.LegalBasis)
		}
	}

	return sb.String()
}

func tierLabel(t risk.Tier) string {
	switch t {
	case risk.TierLow:
		return "低风险"
	case risk.TierMedium:
		return "中风险"
	default:
		return "高风险"
	}
}
