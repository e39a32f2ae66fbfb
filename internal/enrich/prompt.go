package enrich

import (
	"fmt"
	"strings"

	"github.com/codewithwu/ContractAI/internal/risk"
)

const reviewPrompt = `你是一个专业的合同审查专家，擅长识别合同风险并提供具体的修改建议。

请严格按照以下JSON格式输出分析结果：
{
    "risk_analysis": "对条款风险的详细分析",
    "specific_risks": ["具体的风险点1", "风险点2"],
    "modification_suggestions": ["具体的修改建议1", "建议2"],
    "legal_basis": "相关法律依据或商业考量",
    "negotiation_tips": "谈判建议",
    "risk_level": "低风险|中风险|高风险"
}

要求：
1. 分析要具体，指出具体哪些词语或句子有问题
2. 修改建议要给出完整的修改后文本
3. 法律依据要引用具体的法律条文或商业实践
4. 用中文回复，保持专业但易懂
5. 风险等级评估要基于风险严重程度

只输出JSON对象，不要输出其它文字。`

// BuildClausePrompt creates the full review prompt for one clause, including
// the clause title and the deterministic findings already detected.
func BuildClausePrompt(body, title string, findings []risk.Finding) string {
	var sb strings.Builder
	sb.WriteString(reviewPrompt)
	sb.WriteString("\n\n---\n")
	sb.WriteString(fmt.Sprintf("【条款标题】%s\n", title))
	sb.WriteString("\n【条款内容】\n")
	sb.WriteString(body)
	sb.WriteString("\n\n【已识别风险】\n")
	if len(findings) == 0 {
		sb.WriteString("未发现明显风险\n")
	} else {
		for _, f := range findings {
			sb.WriteString(fmt.Sprintf("- %s (%s)\n", f.Evidence, f.Name))
		}
	}
	return sb.String()
}
