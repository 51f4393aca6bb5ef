// Package extract resolves document files into plain text.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	pdf "rsc.io/pdf"
)

// ErrUnsupported is returned for containers this extractor cannot read.
var ErrUnsupported = errors.New("unsupported document format")

// DefaultMaxPages bounds how much of a PDF is read.
const DefaultMaxPages = 40

// FileExtractor reads .txt and .pdf files.
type FileExtractor struct {
	maxPages int
}

// NewFileExtractor returns an extractor reading at most maxPages PDF pages.
func NewFileExtractor(maxPages int) *FileExtractor {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &FileExtractor{maxPages: maxPages}
}

// Extract returns the text of path. An unreadable file is an error; a readable
// file without text returns "" and a nil error.
func (e *FileExtractor) Extract(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return extractText(path)
	case ".pdf":
		return e.extractPDF(path)
	default:
		return "", fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupported)
	}
}

func extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return strings.ToValidUTF8(string(data), ""), nil
	}
	return string(data), nil
}

func (e *FileExtractor) extractPDF(path string) (text string, err error) {
	// rsc.io/pdf panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("read pdf %s: %v", filepath.Base(path), r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("read pdf %s: %w", filepath.Base(path), err)
	}
	var b strings.Builder
	total := r.NumPage()
	if total > e.maxPages {
		total = e.maxPages
	}
	for pageIndex := 1; pageIndex <= total; pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}
		// Some PDFs have no text layer; such pages contribute nothing
		for _, t := range p.Content().Text {
			b.WriteString(t.S)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}
