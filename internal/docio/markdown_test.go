package docio

import (
	"strings"
	"testing"
)

func TestMarkdownReader_HeadingsAndParagraphs(t *testing.T) {
	input := `# 技术服务合同

第一条 付款

甲方应按期支付。

第二条 验收
`
	p := &MarkdownReader{}
	paras, err := p.Read(strings.NewReader(input), "contract.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(paras) != 4 {
		t.Fatalf("expected 4 paragraphs, got %d: %+v", len(paras), paras)
	}
	if paras[0].Text != "技术服务合同" {
		t.Errorf("paragraph[0]: got %q", paras[0].Text)
	}
	if !strings.Contains(paras[1].Text, "第一条 付款") {
		t.Errorf("paragraph[1]: got %q", paras[1].Text)
	}
	if !strings.Contains(paras[3].Text, "第二条 验收") {
		t.Errorf("paragraph[3]: got %q", paras[3].Text)
	}
}

func TestMarkdownReader_ListItems(t *testing.T) {
	input := `## 条款

- 1.1 预付款为总价的30%
- 1.2 尾款在验收后支付
`
	p := &MarkdownReader{}
	paras, err := p.Read(strings.NewReader(input), "contract.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paras) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d: %+v", len(paras), paras)
	}
	if !strings.Contains(paras[1].Text, "1.1 预付款为总价的30%") {
		t.Errorf("paragraph[1]: got %q", paras[1].Text)
	}
	if !strings.Contains(paras[2].Text, "1.2 尾款在验收后支付") {
		t.Errorf("paragraph[2]: got %q", paras[2].Text)
	}
}

func TestMarkdownReader_EmptyInput(t *testing.T) {
	p := &MarkdownReader{}
	paras, err := p.Read(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paras) != 0 {
		t.Errorf("expected 0 paragraphs for empty input, got %d", len(paras))
	}
}
