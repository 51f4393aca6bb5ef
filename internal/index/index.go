// Package index builds immutable TF-IDF indexes over a corpus of records.
package index

import (
	"log/slog"

	"gobi/internal/domain"
	"gobi/internal/embedding"
	"gobi/internal/embedding/tfidf"
	"gobi/internal/vectorstore"
	"gobi/internal/vectorstore/memory"
)

// Options controls how the vector space is fitted.
type Options struct {
	NgramMin  int
	NgramMax  int
	MaxDF     float64
	Stopwords []string
}

// Index pairs a fitted embedder with the vectors of its corpus. A nil embedder
// marks the degenerate variant: it has no vocabulary and every query is empty.
// An Index is never mutated after Build returns.
type Index struct {
	embedder embedding.Embedder
	store    vectorstore.Storage
	records  []domain.Record
}

// Empty returns the degenerate index.
func Empty() *Index { return &Index{} }

// Build fits the vector space over records. Empty corpora and corpora whose
// vocabulary ends up empty yield the degenerate index instead of an error.
func Build(records []domain.Record, opts Options, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	if len(records) == 0 {
		return Empty()
	}
	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Text
	}
	emb := tfidf.NewEmbedder(
		tfidf.WithNgramRange(opts.NgramMin, opts.NgramMax),
		tfidf.WithMaxDF(opts.MaxDF),
		tfidf.WithStopwords(opts.Stopwords),
	)
	if err := emb.Prepare(texts); err != nil {
		logger.Warn("index has no vocabulary", "records", len(records), "err", err)
		return Empty()
	}
	vectors := make([]embedding.Vector, len(records))
	for i, text := range texts {
		v, err := emb.Embed(text)
		if err != nil {
			logger.Warn("embedding failed", "err", err)
			return Empty()
		}
		vectors[i] = v
	}
	store := memory.NewStorage()
	if err := store.Init(emb.Dimension()); err != nil {
		logger.Warn("vector store init failed", "err", err)
		return Empty()
	}
	if err := store.Upsert(records, vectors); err != nil {
		logger.Warn("vector store upsert failed", "err", err)
		return Empty()
	}
	kept := make([]domain.Record, len(records))
	copy(kept, records)
	return &Index{embedder: emb, store: store, records: kept}
}

// Query returns up to k hits by descending cosine similarity. Ties keep corpus
// order. The degenerate index always returns nil.
func (ix *Index) Query(text string, k int) []domain.RetrievalHit {
	if ix == nil || ix.embedder == nil || k <= 0 {
		return nil
	}
	vec, err := ix.embedder.Embed(text)
	if err != nil {
		return nil
	}
	hits, err := ix.store.Search(vec, k)
	if err != nil {
		return nil
	}
	return hits
}

// Degenerate reports whether the index has no vocabulary.
func (ix *Index) Degenerate() bool { return ix == nil || ix.embedder == nil }

// Len returns the number of indexed records.
func (ix *Index) Len() int {
	if ix.Degenerate() {
		return 0
	}
	return len(ix.records)
}

// Vocabulary returns the size of the fitted vocabulary.
func (ix *Index) Vocabulary() int {
	if ix.Degenerate() {
		return 0
	}
	return ix.embedder.Dimension()
}

// Records returns the indexed records in corpus order.
func (ix *Index) Records() []domain.Record {
	if ix.Degenerate() {
		return nil
	}
	return ix.records
}
