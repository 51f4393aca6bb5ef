package memory

import (
	"errors"
	"sort"
	"sync"

	"gobi/internal/domain"
	"gobi/internal/embedding"
)

// Storage is a simple in-memory vector store using brute-force cosine similarity.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	vectors   []embedding.Vector
	records   []domain.Record
}

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.vectors = nil
	s.records = nil
	return nil
}

func (s *Storage) Upsert(records []domain.Record, vectors []embedding.Vector) error {
	if len(records) != len(vectors) {
		return errors.New("records and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if n := len(v.Indices); n > 0 && v.Indices[n-1] >= s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.records = append(s.records, records...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

// Search returns at most topK hits ordered by descending cosine score.
// Equal scores keep insertion order, so lower positions win ties.
func (s *Storage) Search(vector embedding.Vector, topK int) ([]domain.RetrievalHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 || len(s.vectors) == 0 {
		return nil, nil
	}
	scores := make([]float64, len(s.vectors))
	for i := range s.vectors {
		scores[i] = embedding.Cosine(s.vectors[i], vector)
	}
	idxs := argsortDesc(scores)
	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]domain.RetrievalHit, 0, topK)
	for i := 0; i < topK; i++ {
		j := idxs[i]
		results = append(results, domain.RetrievalHit{Record: s.records[j], Score: scores[j], Rank: i})
	}
	return results, nil
}

// Len returns the number of stored vectors.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}

func argsortDesc(vals []float64) []int {
	idxs := make([]int, len(vals))
	for i := range vals {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool { return vals[idxs[a]] > vals[idxs[b]] })
	return idxs
}
