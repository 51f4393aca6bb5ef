// Package loader turns documents and knowledge-base tables into indexable records.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gobi/internal/domain"
	"gobi/internal/textnorm"
)

// DefaultExtensions are the document types discovered in a docs directory.
var DefaultExtensions = []string{".pdf", ".docx", ".doc", ".txt"}

// Chunker splits text into windows.
type Chunker interface {
	Chunk(text string) []string
}

// DocumentLoader extracts, chunks and normalizes documents.
type DocumentLoader struct {
	extractor domain.Extractor
	chunker   Chunker
	logger    *slog.Logger
}

// NewDocumentLoader wires the extraction collaborator and chunker.
func NewDocumentLoader(extractor domain.Extractor, chunker Chunker, logger *slog.Logger) *DocumentLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentLoader{extractor: extractor, chunker: chunker, logger: logger}
}

// Load returns one record per chunk, in path order then chunk order. Documents
// that fail extraction or contain no text are skipped.
func (l *DocumentLoader) Load(paths []string) []domain.Record {
	var records []domain.Record
	for _, p := range paths {
		text, err := l.extractor.Extract(p)
		if err != nil {
			l.logger.Warn("could not read document", "path", p, "err", err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			l.logger.Info("document has no usable text", "path", p)
			continue
		}
		name := filepath.Base(p)
		for i, chunk := range l.chunker.Chunk(text) {
			records = append(records, domain.Record{
				Text:     textnorm.Normalize(chunk),
				SourceID: name,
				Location: p,
				Ordinal:  i,
				Origin:   domain.OriginDocument,
			})
		}
	}
	return records
}

// Discover lists files in dir with one of the given extensions, sorted.
// A missing directory yields no paths.
func Discover(dir string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, want := range extensions {
			if ext == strings.ToLower(want) {
				out = append(out, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// columnAliases maps accepted headers to the canonical KB column.
var columnAliases = map[string]string{
	"question":  "question",
	"pregunta":  "question",
	"answer":    "answer",
	"respuesta": "answer",
	"link":      "link",
	"url":       "link",
	"enlace":    "link",
}

// ReadKnowledgeBase parses a CSV table with a header row. Missing columns are
// treated as empty.
func ReadKnowledgeBase(r io.Reader) ([]domain.KBRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read kb header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		key := textnorm.Normalize(strings.TrimPrefix(h, "\ufeff"))
		if canon, ok := columnAliases[key]; ok {
			if _, dup := cols[canon]; !dup {
				cols[canon] = i
			}
		}
	}
	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}
	var rows []domain.KBRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read kb row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, domain.KBRow{
			Question: field(rec, "question"),
			Answer:   field(rec, "answer"),
			Link:     field(rec, "link"),
		})
	}
	return rows, nil
}

// LoadKnowledgeBase reads the CSV at path. A missing or empty path yields no rows.
func LoadKnowledgeBase(path string) ([]domain.KBRow, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return ReadKnowledgeBase(f)
}

// KnowledgeRecords builds one record per row, keyed by row ordinal. The text
// joins question and answer so either phrasing can match.
func KnowledgeRecords(rows []domain.KBRow) []domain.Record {
	records := make([]domain.Record, len(rows))
	for i, row := range rows {
		records[i] = domain.Record{
			Text:     textnorm.Normalize(row.Question + " || " + row.Answer),
			SourceID: fmt.Sprintf("kb:%d", i),
			Location: row.Link,
			Ordinal:  i,
			Origin:   domain.OriginKnowledgeBase,
		}
	}
	return records
}
