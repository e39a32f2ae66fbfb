package clause

import (
	"strings"
	"testing"

	"github.com/codewithwu/ContractAI/internal/contract"
)

func paras(texts ...string) []contract.Paragraph {
	out := make([]contract.Paragraph, len(texts))
	for i, t := range texts {
		out[i] = contract.Paragraph{Text: t, SourceID: i, Position: i}
	}
	return out
}

func TestSegment_MainClauseHeadings(t *testing.T) {
	clauses := Segment(paras(
		"第一条 付款",
		"甲方应支付违约金10%",
		"第二条 验收",
		"按照行业通用标准验收",
	))

	if len(clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(clauses))
	}
	if clauses[0].Title != "第一条 付款" {
		t.Errorf("clause[0] title: expected %q, got %q", "第一条 付款", clauses[0].Title)
	}
	if clauses[0].Body != "第一条 付款\n甲方应支付违约金10%" {
		t.Errorf("clause[0] body: got %q", clauses[0].Body)
	}
	if clauses[0].Preamble {
		t.Error("clause[0] should not be a preamble")
	}
	if clauses[1].Body != "第二条 验收\n按照行业通用标准验收" {
		t.Errorf("clause[1] body: got %q", clauses[1].Body)
	}
}

func TestSegment_PreambleBeforeFirstHeading(t *testing.T) {
	clauses := Segment(paras(
		"合同编号：HT-2024-001",
		"甲方：某某科技有限公司",
		"第一条 总则",
		"本合同依法订立。",
	))

	if len(clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(clauses))
	}
	if clauses[0].Title != PreambleTitle {
		t.Errorf("expected preamble title %q, got %q", PreambleTitle, clauses[0].Title)
	}
	if !clauses[0].Preamble {
		t.Error("first clause should be marked preamble")
	}
	if clauses[0].Body != "合同编号：HT-2024-001\n甲方：某某科技有限公司" {
		t.Errorf("preamble body: got %q", clauses[0].Body)
	}
	if clauses[1].Preamble {
		t.Error("second clause should not be marked preamble")
	}
}

func TestSegment_SubClauseAttachment(t *testing.T) {
	clauses := Segment(paras(
		"第一条 交付",
		"1.1 乙方应于签约后交付。",
		"交付地点为甲方指定仓库。",
		"1.2 验收期为七日。",
	))

	if len(clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(clauses))
	}
	cl := clauses[0]
	if cl.SubClauseCount != 2 {
		t.Errorf("expected 2 sub-clauses, got %d", cl.SubClauseCount)
	}
	// Prose after a sub-clause belongs to that sub-clause, not the heading.
	want := "第一条 交付\n1.1 乙方应于签约后交付。\n交付地点为甲方指定仓库。\n1.2 验收期为七日。"
	if cl.Body != want {
		t.Errorf("body:\nexpected %q\ngot      %q", want, cl.Body)
	}
}

func TestSegment_SubClauseMarkerVariants(t *testing.T) {
	clauses := Segment(paras(
		"第一条 杂项",
		"一、保密义务",
		"2、通知方式",
		"3.1 书面通知",
	))

	if len(clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(clauses))
	}
	if clauses[0].SubClauseCount != 3 {
		t.Errorf("expected 3 sub-clauses, got %d", clauses[0].SubClauseCount)
	}
}

func TestSegment_ConsecutiveHeadings(t *testing.T) {
	clauses := Segment(paras(
		"第一条 定义",
		"第二条 期限",
		"期限为一年。",
	))

	if len(clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(clauses))
	}
	// A heading with no prose still yields a clause whose body is the heading.
	if clauses[0].Body != "第一条 定义" {
		t.Errorf("clause[0] body: got %q", clauses[0].Body)
	}
	if clauses[1].Body != "第二条 期限\n期限为一年。" {
		t.Errorf("clause[1] body: got %q", clauses[1].Body)
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	if got := Segment(nil); len(got) != 0 {
		t.Errorf("expected no clauses for nil input, got %d", len(got))
	}
	if got := Segment(paras("", "   ", "\t")); len(got) != 0 {
		t.Errorf("expected no clauses for blank input, got %d", len(got))
	}
}

func TestSegment_BlankParagraphsSkipped(t *testing.T) {
	clauses := Segment(paras(
		"第一条 付款",
		"",
		"按期支付。",
	))
	if len(clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(clauses))
	}
	if clauses[0].Body != "第一条 付款\n按期支付。" {
		t.Errorf("body: got %q", clauses[0].Body)
	}
}

func TestSegment_EnglishHeadings(t *testing.T) {
	clauses := Segment(paras(
		"ARTICLE 1 Payment",
		"Party A shall pay within 30 days.",
		"SECTION 2 Delivery",
		"Goods are delivered FOB.",
	))
	if len(clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(clauses))
	}
	if clauses[0].Title != "ARTICLE 1 Payment" {
		t.Errorf("clause[0] title: got %q", clauses[0].Title)
	}
	if clauses[1].Title != "SECTION 2 Delivery" {
		t.Errorf("clause[1] title: got %q", clauses[1].Title)
	}
}

func TestSegment_NoContentLost(t *testing.T) {
	input := []string{
		"合同编号：HT-2024-001",
		"第一条 付款",
		"1.1 预付款为总价的30%。",
		"尾款在验收后支付。",
		"第2条 违约责任",
		"任何一方违约应赔偿损失。",
	}
	clauses := Segment(paras(input...))

	var bodies []string
	for _, cl := range clauses {
		bodies = append(bodies, cl.Body)
	}
	all := strings.Join(bodies, "\n")
	for _, line := range input {
		if !strings.Contains(all, line) {
			t.Errorf("line %q missing from segmented output", line)
		}
	}
}

func TestIsMainClause(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"第一条 付款", true},
		{"第十条 附则", true},
		{"第3条 交付", true},
		{"ARTICLE 5", true},
		{"SECTION 2 Delivery", true},
		{"  第二条 验收", true},
		{"1.1 子条款", false},
		{"一、事项", false},
		{"普通正文第一条提及", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsMainClause(c.text); got != c.want {
			t.Errorf("IsMainClause(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestIsSubClause(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"1.1 预付款", true},
		{"3.14 补充", true},
		{"一、保密", true},
		{"2、通知", true},
		{"第一条 付款", false},
		{"正文提到 1.1 的内容", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsSubClause(c.text); got != c.want {
			t.Errorf("IsSubClause(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}
