// Package clause turns a flat paragraph sequence into main clauses with
// their sub-clauses folded in.
package clause

import (
	"regexp"
	"strings"

	"github.com/codewithwu/ContractAI/internal/contract"
)

// PreambleTitle is assigned to content that precedes the first main-clause
// heading.
const PreambleTitle = "合同前言"

// Main-clause headings open a new clause; sub-clause markers nest under the
// current one. The two families are disjoint and checked in this order.
var mainClausePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^第[一二三四五六七八九十零]+条`),
	regexp.MustCompile(`^第\d+条`),
	regexp.MustCompile(`^ARTICLE`),
	regexp.MustCompile(`^SECTION`),
}

var subClausePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+\.\d+`),
	regexp.MustCompile(`^[一二三四五六七八九十]、`),
	regexp.MustCompile(`^\d+、`),
}

// IsMainClause reports whether text is a top-level clause heading.
func IsMainClause(text string) bool {
	text = strings.TrimSpace(text)
	for _, re := range mainClausePatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// IsSubClause reports whether text starts a numbered sub-clause.
func IsSubClause(text string) bool {
	text = strings.TrimSpace(text)
	for _, re := range subClausePatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// segmenter accumulates one clause at a time. Plain prose attaches to the
// last open sub-clause when one exists, otherwise to the main-clause lines.
type segmenter struct {
	title     string
	preamble  bool
	mainLines []string
	subs      []string
	out       []contract.Clause
}

// flush emits the accumulated clause, if any content has been collected.
// Consecutive headings with no intervening prose still emit a heading-only
// clause, because the heading itself is the first main-clause line.
func (s *segmenter) flush() {
	if len(s.mainLines) == 0 && len(s.subs) == 0 {
		return
	}
	parts := make([]string, 0, len(s.mainLines)+len(s.subs))
	parts = append(parts, s.mainLines...)
	parts = append(parts, s.subs...)
	s.out = append(s.out, contract.Clause{
		Title:          s.title,
		Body:           strings.Join(parts, "\n"),
		SubClauseCount: len(s.subs),
		Preamble:       s.preamble,
	})
}

func (s *segmenter) reset(heading string) {
	s.title = heading
	s.preamble = false
	s.mainLines = []string{heading}
	s.subs = nil
}

// Segment groups paragraphs into clauses. Content before the first heading
// becomes a preamble clause; everything after the last heading is flushed at
// the end of input.
func Segment(paragraphs []contract.Paragraph) []contract.Clause {
	s := &segmenter{title: PreambleTitle, preamble: true}

	for _, p := range paragraphs {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		switch {
		case IsMainClause(text):
			s.flush()
			s.reset(text)
		case IsSubClause(text):
			s.subs = append(s.subs, text)
		default:
			if n := len(s.subs); n > 0 {
				s.subs[n-1] += "\n" + text
			} else {
				s.mainLines = append(s.mainLines, text)
			}
		}
	}
	s.flush()
	return s.out
}
