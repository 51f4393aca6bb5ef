package vectorstore

import (
	"gobi/internal/domain"
	"gobi/internal/embedding"
)

// Storage holds record vectors and supports similarity search.
type Storage interface {
	Init(dimension int) error
	Upsert(records []domain.Record, vectors []embedding.Vector) error
	Search(vector embedding.Vector, topK int) ([]domain.RetrievalHit, error)
	Len() int
}
