package repository

import (
	"context"

	"docintel-be/internal/entity"
	"docintel-be/internal/repository/contract"
	"docintel-be/pkg/vectorstore"
)

// vectorStoreAdapter exposes the Postgres repository through the engine's
// vectorstore.Store interface, so the persistent and in-memory backends are
// interchangeable at wiring time.
type vectorStoreAdapter struct {
	repo contract.VectorDocumentRepository
}

func NewVectorStoreAdapter(repo contract.VectorDocumentRepository) vectorstore.Store {
	return &vectorStoreAdapter{repo: repo}
}

func (a *vectorStoreAdapter) AddMany(ctx context.Context, docs []*entity.VectorDocument) error {
	return a.repo.Upsert(ctx, docs)
}

func (a *vectorStoreAdapter) Search(ctx context.Context, embedding []float32, topK int, minScore float64) ([]entity.SearchResult, error) {
	return a.repo.SearchSimilar(ctx, embedding, topK, minScore)
}

func (a *vectorStoreAdapter) Size(ctx context.Context) (int, error) {
	count, err := a.repo.Count(ctx)
	return int(count), err
}

func (a *vectorStoreAdapter) GetAll(ctx context.Context) ([]*entity.VectorDocument, error) {
	return a.repo.FindAll(ctx)
}

func (a *vectorStoreAdapter) Clear(ctx context.Context) error {
	return a.repo.DeleteAll(ctx)
}
