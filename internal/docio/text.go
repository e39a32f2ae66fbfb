package docio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/codewithwu/ContractAI/internal/contract"
)

// TextReader handles plain text files. Each non-empty line is a paragraph,
// matching how word-processing exports lay out contract text.
type TextReader struct{}

func (p *TextReader) Read(r io.Reader, filename string) ([]contract.Paragraph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read text: %s", ErrUnreadable, err)
	}

	return paragraphsFromLines(lines, nil), nil
}
