package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_Text(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guia.TXT")
	require.NoError(t, os.WriteFile(path, []byte("Paso 1. Ingrese al SGD."), 0o644))

	text, err := NewFileExtractor(0).Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Paso 1. Ingrese al SGD.", text)
}

func TestExtract_EmptyTextIsNotAFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vacio.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	text, err := NewFileExtractor(0).Extract(path)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtract_InvalidUTF8IsCleaned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.txt")
	require.NoError(t, os.WriteFile(path, []byte{'a', 0xff, 'b'}, 0o644))

	text, err := NewFileExtractor(0).Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "ab", text)
}

func TestExtract_Failures(t *testing.T) {
	dir := t.TempDir()
	e := NewFileExtractor(5)

	_, err := e.Extract(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	docx := filepath.Join(dir, "manual.docx")
	require.NoError(t, os.WriteFile(docx, []byte("PK"), 0o644))
	_, err = e.Extract(docx)
	assert.ErrorIs(t, err, ErrUnsupported)

	broken := filepath.Join(dir, "roto.pdf")
	require.NoError(t, os.WriteFile(broken, []byte("not a pdf"), 0o644))
	_, err = e.Extract(broken)
	assert.Error(t, err)
}
