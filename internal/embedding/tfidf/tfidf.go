package tfidf

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"

	"gobi/internal/embedding"
	"gobi/internal/textnorm"
)

var (
	// ErrEmptyCorpus is returned by Prepare when there is nothing to fit.
	ErrEmptyCorpus = errors.New("empty corpus for TF-IDF prepare")
	// ErrEmptyVocabulary is returned by Prepare when no term survives tokenization and pruning.
	ErrEmptyVocabulary = errors.New("no terms remain after tokenization and pruning")
	// ErrNotPrepared is returned by Embed before a successful Prepare.
	ErrNotPrepared = errors.New("tfidf embedder not prepared")
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Embedder implements a bag-of-n-grams TF-IDF vectorizer.
// It builds a vocabulary from the corpus and computes smoothed IDF values.
type Embedder struct {
	vocabulary map[string]int
	idf        []float64
	dimension  int
	prepared   bool
	minN, maxN int
	maxDF      float64
	l2         bool
	stopwords  map[string]struct{}
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithNgramRange sets the inclusive range of n-gram lengths.
func WithNgramRange(minN, maxN int) Option {
	return func(e *Embedder) {
		if minN >= 1 && maxN >= minN {
			e.minN, e.maxN = minN, maxN
		}
	}
}

// WithMaxDF drops terms that appear in more than this fraction of documents.
// Pruning only applies to corpora with more than one document.
func WithMaxDF(maxDF float64) Option {
	return func(e *Embedder) {
		if maxDF > 0 && maxDF <= 1 {
			e.maxDF = maxDF
		}
	}
}

// WithStopwords excludes the given words before n-grams are formed.
func WithStopwords(words []string) Option {
	return func(e *Embedder) {
		for _, w := range words {
			e.stopwords[textnorm.Normalize(w)] = struct{}{}
		}
	}
}

// WithL2Norm toggles L2 normalization of embedded vectors.
func WithL2Norm(on bool) Option {
	return func(e *Embedder) { e.l2 = on }
}

// NewEmbedder creates an unprepared embedder. Defaults: unigrams and bigrams,
// no max-df pruning, no stop words, L2-normalized output.
func NewEmbedder(opts ...Option) *Embedder {
	e := &Embedder{
		vocabulary: make(map[string]int),
		minN:       1,
		maxN:       2,
		maxDF:      1,
		l2:         true,
		stopwords:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "tfidf" }

// Prepare builds the vocabulary and IDF values from the provided corpus.
func (e *Embedder) Prepare(corpus []string) error {
	if len(corpus) == 0 {
		return ErrEmptyCorpus
	}
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, term := range e.terms(text) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	n := float64(len(corpus))
	maxCount := math.Inf(1)
	if len(corpus) > 1 && e.maxDF < 1 {
		maxCount = e.maxDF * n
	}
	// Create stable ordering for vocabulary
	terms := make([]string, 0, len(df))
	for term, count := range df {
		if float64(count) > maxCount {
			continue
		}
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		return ErrEmptyVocabulary
	}
	sort.Strings(terms)
	e.vocabulary = make(map[string]int, len(terms))
	e.idf = make([]float64, len(terms))
	for i, term := range terms {
		e.vocabulary[term] = i
		// Smoothed IDF
		e.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	e.dimension = len(terms)
	e.prepared = true
	return nil
}

// Dimension returns the vocabulary size.
func (e *Embedder) Dimension() int { return e.dimension }

// Embed projects text into the fitted space. Out-of-vocabulary terms are ignored.
func (e *Embedder) Embed(text string) (embedding.Vector, error) {
	if !e.prepared {
		return embedding.Vector{}, ErrNotPrepared
	}
	tf := make(map[int]int)
	for _, term := range e.terms(text) {
		if idx, ok := e.vocabulary[term]; ok {
			tf[idx]++
		}
	}
	if len(tf) == 0 {
		return embedding.Vector{}, nil
	}
	vec := embedding.Vector{
		Indices: make([]int, 0, len(tf)),
		Values:  make([]float64, 0, len(tf)),
	}
	for idx := range tf {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)
	for _, idx := range vec.Indices {
		vec.Values = append(vec.Values, float64(tf[idx])*e.idf[idx])
	}
	if e.l2 {
		if norm := vec.Norm(); norm > 0 {
			for i := range vec.Values {
				vec.Values[i] /= norm
			}
		}
	}
	return vec, nil
}

// terms returns the n-grams of text after normalization and stop-word removal.
func (e *Embedder) terms(text string) []string {
	tokens := e.tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	var out []string
	for n := e.minN; n <= e.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

func (e *Embedder) tokenize(text string) []string {
	raw := tokenPattern.FindAllString(textnorm.Normalize(text), -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := e.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}
