package vectorstore

import (
	"context"

	"docintel-be/internal/entity"
)

// Store is the collection of embedded chunks behind the retrieval service.
// AddMany has upsert semantics: a later insert with an existing id replaces
// the earlier document. Search ranks by cosine similarity descending, drops
// scores below minScore, and breaks ties by insertion order.
//
// Implementations do not synchronize access; the hosting service is expected
// to impose single-writer/many-reader discipline around AddMany/Search/Clear.
type Store interface {
	AddMany(ctx context.Context, docs []*entity.VectorDocument) error
	Search(ctx context.Context, embedding []float32, topK int, minScore float64) ([]entity.SearchResult, error)
	Size(ctx context.Context) (int, error)
	GetAll(ctx context.Context) ([]*entity.VectorDocument, error)
	Clear(ctx context.Context) error
}
