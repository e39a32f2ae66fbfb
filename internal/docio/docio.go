package docio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/codewithwu/ContractAI/internal/contract"
)

// ErrUnreadable marks a document that could not be opened or parsed.
// It is fatal for the whole analysis run.
var ErrUnreadable = errors.New("unreadable document")

// Reader converts raw document bytes into an ordered paragraph sequence.
type Reader interface {
	Read(r io.Reader, filename string) ([]contract.Paragraph, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate reader for a filename.
func ForFile(filename string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextReader{}, nil
	case ".md", ".markdown":
		return &MarkdownReader{}, nil
	case ".html", ".htm":
		return &HTMLReader{}, nil
	case ".pdf":
		return &PDFReader{}, nil
	case ".docx":
		return &DOCXReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// ReadFile opens path and extracts its paragraphs with the reader matching
// its extension.
func ReadFile(path string) ([]contract.Paragraph, error) {
	rd, err := ForFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnreadable, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %s", ErrUnreadable, path, err)
	}
	defer f.Close()
	return rd.Read(f, filepath.Base(path))
}

// paragraphsFromLines turns a flat list of text blocks into Paragraph records,
// skipping empty blocks. sourceIDs, when non-nil, carries the original item
// index per block; otherwise the block index is used.
func paragraphsFromLines(blocks []string, sourceIDs []int) []contract.Paragraph {
	var out []contract.Paragraph
	for i, b := range blocks {
		text := strings.TrimSpace(b)
		if text == "" {
			continue
		}
		sid := i
		if sourceIDs != nil {
			sid = sourceIDs[i]
		}
		out = append(out, contract.Paragraph{
			Text:     text,
			SourceID: sid,
			Position: len(out),
		})
	}
	return out
}
