package docio

import (
	"strings"
	"testing"
)

func TestTextReader_LinePerParagraph(t *testing.T) {
	input := "合同编号：HT-2024-001\n第一条 付款\n甲方应按期支付。"
	p := &TextReader{}
	paras, err := p.Read(strings.NewReader(input), "contract.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"合同编号：HT-2024-001", "第一条 付款", "甲方应按期支付。"}
	if len(paras) != len(want) {
		t.Fatalf("expected %d paragraphs, got %d", len(want), len(paras))
	}
	for i, w := range want {
		if paras[i].Text != w {
			t.Errorf("paragraph[%d]: expected %q, got %q", i, w, paras[i].Text)
		}
		if paras[i].Position != i {
			t.Errorf("paragraph[%d]: expected position %d, got %d", i, i, paras[i].Position)
		}
	}
}

func TestTextReader_SkipsBlankLines(t *testing.T) {
	input := "第一条\n\n   \n第二条"
	p := &TextReader{}
	paras, err := p.Read(strings.NewReader(input), "contract.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paras) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(paras))
	}
	// Positions stay contiguous while source IDs keep the original line index.
	if paras[1].Position != 1 {
		t.Errorf("expected position 1, got %d", paras[1].Position)
	}
}

func TestTextReader_EmptyInput(t *testing.T) {
	p := &TextReader{}
	paras, err := p.Read(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paras) != 0 {
		t.Errorf("expected 0 paragraphs for empty input, got %d", len(paras))
	}
}

func TestTextReader_TrimsWhitespace(t *testing.T) {
	p := &TextReader{}
	paras, err := p.Read(strings.NewReader("  第一条 总则  \r"), "contract.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paras) != 1 || paras[0].Text != "第一条 总则" {
		t.Errorf("expected trimmed paragraph, got %+v", paras)
	}
}
