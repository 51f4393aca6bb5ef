package loader

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobi/internal/chunker"
	"gobi/internal/domain"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeExtractor map[string]struct {
	text string
	err  error
}

func (f fakeExtractor) Extract(path string) (string, error) {
	r, ok := f[path]
	if !ok {
		return "", errors.New("not found")
	}
	return r.text, r.err
}

func TestDocumentLoader_SkipsFailuresAndEmpty(t *testing.T) {
	ex := fakeExtractor{
		"/docs/a.txt":   {text: "Derivar un Trámite requiere firma."},
		"/docs/bad.pdf": {err: errors.New("corrupt")},
		"/docs/empty":   {text: "   \n"},
		"/docs/b.txt":   {text: "abcdefghijklmnopqrstuvwxy"},
	}
	l := NewDocumentLoader(ex, chunker.NewWindowChunker(10, 3), quiet)

	records := l.Load([]string{"/docs/a.txt", "/docs/bad.pdf", "/docs/empty", "/docs/b.txt", "/docs/missing"})

	var fromA, fromB []domain.Record
	for _, r := range records {
		assert.Equal(t, domain.OriginDocument, r.Origin)
		switch r.SourceID {
		case "a.txt":
			fromA = append(fromA, r)
		case "b.txt":
			fromB = append(fromB, r)
		default:
			t.Fatalf("unexpected source %q", r.SourceID)
		}
	}
	require.NotEmpty(t, fromA)
	require.Len(t, fromB, 4)
	assert.Equal(t, "/docs/b.txt", fromB[0].Location)
	for i, r := range fromB {
		assert.Equal(t, i, r.Ordinal)
	}
	assert.Equal(t, "derivar un", fromA[0].Text, "chunks are normalized")
}

func TestDocumentLoader_Deterministic(t *testing.T) {
	ex := fakeExtractor{"/d/x.txt": {text: strings.Repeat("texto de prueba ", 20)}}
	l := NewDocumentLoader(ex, chunker.NewWindowChunker(50, 10), quiet)
	assert.Equal(t, l.Load([]string{"/d/x.txt"}), l.Load([]string{"/d/x.txt"}))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.PDF", "a.txt", "notes.md", "c.docx"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))

	paths, err := Discover(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.PDF"),
		filepath.Join(dir, "c.docx"),
	}, paths)

	paths, err = Discover(dir, []string{".txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.txt")}, paths)

	paths, err = Discover(filepath.Join(dir, "nope"), nil)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestReadKnowledgeBase(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want []domain.KBRow
	}{
		{
			name: "english headers",
			csv:  "question,answer,link\n¿Qué es SGD?,Sistema de gestión,https://x/sgd\n",
			want: []domain.KBRow{{Question: "¿Qué es SGD?", Answer: "Sistema de gestión", Link: "https://x/sgd"}},
		},
		{
			name: "spanish headers with bom",
			csv:  "\ufeffpregunta,respuesta\nhola,adios\n",
			want: []domain.KBRow{{Question: "hola", Answer: "adios"}},
		},
		{
			name: "missing columns",
			csv:  "link\nhttp://a\n",
			want: []domain.KBRow{{Link: "http://a"}},
		},
		{
			name: "short rows",
			csv:  "question,answer,link\nsolo pregunta\n",
			want: []domain.KBRow{{Question: "solo pregunta"}},
		},
		{name: "empty input", csv: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ReadKnowledgeBase(strings.NewReader(tt.csv))
			require.NoError(t, err)
			assert.Equal(t, tt.want, rows)
		})
	}
}

func TestLoadKnowledgeBase_MissingFile(t *testing.T) {
	rows, err := LoadKnowledgeBase(filepath.Join(t.TempDir(), "kb.csv"))
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = LoadKnowledgeBase("")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestKnowledgeRecords(t *testing.T) {
	rows := []domain.KBRow{
		{Question: "¿Cómo Firmo?", Answer: "Use la  firma digital.", Link: "http://kb/1"},
		{},
	}
	records := KnowledgeRecords(rows)
	require.Len(t, records, 2)
	assert.Equal(t, "¿como firmo? || use la firma digital.", records[0].Text)
	assert.Equal(t, 0, records[0].Ordinal)
	assert.Equal(t, domain.OriginKnowledgeBase, records[0].Origin)
	assert.Equal(t, "||", records[1].Text)
	assert.Equal(t, 1, records[1].Ordinal)
}
