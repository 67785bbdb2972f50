package contract

import (
	"context"

	"docintel-be/internal/entity"
)

type VectorDocumentRepository interface {
	// Upsert inserts the batch, replacing rows whose id already exists.
	Upsert(ctx context.Context, docs []*entity.VectorDocument) error
	// SearchSimilar returns the closest rows by cosine similarity, already
	// filtered by minScore and ordered by descending score.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, minScore float64) ([]entity.SearchResult, error)
	Count(ctx context.Context) (int64, error)
	FindAll(ctx context.Context) ([]*entity.VectorDocument, error)
	DeleteByDocumentId(ctx context.Context, documentId string) error
	DeleteAll(ctx context.Context) error
}
