package contract

// Paragraph is one non-empty paragraph of text extracted from a source
// document, in document order.
type Paragraph struct {
	Text     string
	SourceID int // index of the item in the source document body
	Position int // sequential position among extracted paragraphs
}

// Clause is a main contract clause with any directly attached prose and all
// of its sub-clauses folded into Body.
type Clause struct {
	Title          string `json:"title"`
	Body           string `json:"body"` // heading line, attached prose, then sub-clause lines, newline-joined
	SubClauseCount int    `json:"sub_clause_count"`
	Preamble       bool   `json:"preamble"` // content seen before the first main-clause heading
}
