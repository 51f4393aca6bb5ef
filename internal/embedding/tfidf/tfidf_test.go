package tfidf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobi/internal/embedding"
)

func TestPrepare_EmptyCorpus(t *testing.T) {
	e := NewEmbedder()
	assert.ErrorIs(t, e.Prepare(nil), ErrEmptyCorpus)
}

func TestPrepare_EmptyVocabulary(t *testing.T) {
	tests := []struct {
		name   string
		corpus []string
		opts   []Option
	}{
		{"blank documents", []string{"", "   "}, nil},
		{"punctuation only", []string{"¿? ... !!"}, nil},
		{"all stop words", []string{"el la de", "de la"}, []Option{WithStopwords([]string{"el", "la", "de"})}},
		{"everything pruned", []string{"hola mundo", "hola mundo"}, []Option{WithMaxDF(0.9)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEmbedder(tt.opts...)
			assert.ErrorIs(t, e.Prepare(tt.corpus), ErrEmptyVocabulary)
		})
	}
}

func TestEmbed_NotPrepared(t *testing.T) {
	_, err := NewEmbedder().Embed("hola")
	assert.ErrorIs(t, err, ErrNotPrepared)
}

func TestPrepare_UnigramsAndBigrams(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare([]string{"mesa de partes"}))
	// 3 unigrams + 2 bigrams
	assert.Equal(t, 5, e.Dimension())
}

func TestPrepare_MaxDFSkippedForSingleDocument(t *testing.T) {
	e := NewEmbedder(WithMaxDF(0.9))
	require.NoError(t, e.Prepare([]string{"derivar documento"}))
	assert.Equal(t, 3, e.Dimension())
}

func TestPrepare_MaxDFPrunesCommonTerms(t *testing.T) {
	e := NewEmbedder(WithNgramRange(1, 1), WithMaxDF(0.9))
	require.NoError(t, e.Prepare([]string{"firma documento", "firma expediente"}))
	assert.Equal(t, 2, e.Dimension())

	v, err := e.Embed("firma")
	require.NoError(t, err)
	assert.True(t, v.IsZero())
}

func TestEmbed_NormalizesAndIgnoresOOV(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare([]string{"derivar documento", "firma electronica"}))

	a, err := e.Embed("DERIVAR Documento")
	require.NoError(t, err)
	b, err := e.Embed("derivar documento palabrainexistente")
	require.NoError(t, err)

	assert.InDelta(t, 1.0, a.Norm(), 1e-9)
	assert.InDelta(t, 1.0, embedding.Cosine(a, b), 1e-9)

	oov, err := e.Embed("nada que ver")
	require.NoError(t, err)
	assert.True(t, oov.IsZero())
}

func TestEmbed_AccentInsensitive(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare([]string{"tramite de recepcion"}))
	v, err := e.Embed("Trámite de Recepción")
	require.NoError(t, err)
	assert.False(t, v.IsZero())
}

func TestEmbed_RawWeightsWithoutNorm(t *testing.T) {
	e := NewEmbedder(WithNgramRange(1, 1), WithL2Norm(false))
	require.NoError(t, e.Prepare([]string{"a b", "a"}))

	v, err := e.Embed("b b")
	require.NoError(t, err)
	require.Len(t, v.Values, 1)
	// idf(b) = ln(3/2) + 1, tf = 2
	assert.InDelta(t, 2*(1.4054651081081644), v.Values[0], 1e-9)
}
