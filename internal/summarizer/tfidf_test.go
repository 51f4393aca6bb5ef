package summarizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single without terminator", "ingrese al sistema", []string{"ingrese al sistema"}},
		{"mixed terminators", "Hola. ¿Qué tal? ¡Bien!  Fin", []string{"Hola.", "¿Qué tal?", "¡Bien!", "Fin"}},
		{"no split inside numbers", "Versión 2.5 del manual. Siguiente", []string{"Versión 2.5 del manual.", "Siguiente"}},
		{"list numbers", "1. Abrir el menu. 2. Cerrar.", []string{"1. Abrir el menu.", "2. Cerrar."}},
		{"newlines", "Uno.\nDos.\n", []string{"Uno.", "Dos."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.in))
		})
	}
}

func TestSelect_KeepsAllWhenShort(t *testing.T) {
	s := NewTFIDFSummarizer(nil)
	in := []string{"a.", "b.", "c."}
	assert.Equal(t, in, s.Select(in, 5))
}

func TestSelect_PrefersDenseSentencesInOriginalOrder(t *testing.T) {
	s := NewTFIDFSummarizer([]string{"el", "la", "de"})
	sentences := []string{
		"Ok.",
		"Ingrese al modulo de recepcion y registre el expediente con su firma digital.",
		"Bien.",
		"Luego derive el tramite a la oficina competente mediante la bandeja.",
		"Si.",
	}
	got := s.Select(sentences, 2)
	require.Len(t, got, 2)
	assert.Equal(t, sentences[1], got[0])
	assert.Equal(t, sentences[3], got[1])
}

func TestSelect_TiesFavorEarlierSentences(t *testing.T) {
	s := NewTFIDFSummarizer(nil)
	sentences := []string{"alfa.", "beta.", "gamma.", "delta."}
	assert.Equal(t, []string{"alfa.", "beta."}, s.Select(sentences, 2))
}

func TestSelect_DegenerateVocabulary(t *testing.T) {
	s := NewTFIDFSummarizer(nil)
	sentences := []string{"...", "!!", "??", "--"}
	assert.Equal(t, []string{"...", "!!"}, s.Select(sentences, 2))
}

func TestSummarize(t *testing.T) {
	s := NewTFIDFSummarizer(nil)
	out, err := s.Summarize("  sin puntos  ", 3)
	require.NoError(t, err)
	assert.Equal(t, "sin puntos", out)

	out, err = s.Summarize("", 3)
	require.NoError(t, err)
	assert.Empty(t, out)
}
