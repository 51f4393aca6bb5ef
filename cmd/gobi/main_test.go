package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobi/internal/config"
)

func writeWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	docs := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(docs, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "procedimiento.txt"),
		[]byte("Para derivar un documento seleccione la opción Derivar en el menú principal."), 0o644))
	kb := filepath.Join(dir, "kb.csv")
	require.NoError(t, os.WriteFile(kb,
		[]byte("pregunta,respuesta,link\n¿Qué horario tiene la mesa de partes?,De 8 a 17 horas.,https://kb.example/horario\n"), 0o644))

	cfg := config.Default()
	cfg.Documents.Dir = docs
	cfg.Documents.PublicBaseURL = "https://docs.example"
	cfg.Knowledge.CSV = kb
	cfg.Log.Level = "error"
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.Save(path, cfg))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { configPath, logFile = "", "" })
	for _, k := range []string{"GOBI_DOCS_DIR", "GOBI_KB_CSV", "GOBI_PUBLIC_DOC_BASE_URL", "GOBI_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAsk_PrintsGroundedAnswerWithSource(t *testing.T) {
	path := writeWorkspace(t)
	out, err := run(t, "--config", path, "ask", "¿cómo", "derivo", "un", "documento?")
	require.NoError(t, err)
	assert.Contains(t, out, "GOBI:")
	assert.Contains(t, out, "derivar un documento")
	assert.Contains(t, out, "procedimiento.txt: https://docs.example/procedimiento.txt")
	assert.NotContains(t, out, "kb.example")
}

func TestAsk_RequiresQuestion(t *testing.T) {
	_, err := run(t, "--config", writeWorkspace(t), "ask")
	assert.Error(t, err)
}

func TestIndex_PrintsStats(t *testing.T) {
	path := writeWorkspace(t)
	out, err := run(t, "--config", path, "index")
	require.NoError(t, err)
	assert.Contains(t, out, "1 documents, 1 chunks")
	assert.Contains(t, out, "1 rows")
}

func TestLogFileFlag(t *testing.T) {
	path := writeWorkspace(t)
	logPath := filepath.Join(t.TempDir(), "gobi.log")
	_, err := run(t, "--config", path, "--log-file", logPath, "index")
	require.NoError(t, err)
	_, err = os.Stat(logPath)
	assert.NoError(t, err)
}

func TestInvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunker:\n  size: 10\n  overlap: 10\n"), 0o644))
	_, err := run(t, "--config", path, "index")
	assert.Error(t, err)
}
