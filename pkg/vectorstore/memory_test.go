package vectorstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"docintel-be/internal/entity"
)

func vecDoc(id string, embedding []float32) *entity.VectorDocument {
	return &entity.VectorDocument{
		Id:         id,
		DocumentId: id,
		ChunkId:    "chunk_0",
		Text:       "text for " + id,
		Embedding:  embedding,
	}
}

func TestMemoryStoreSearchOrdering(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.AddMany(ctx, []*entity.VectorDocument{
		vecDoc("far", []float32{0, 1}),
		vecDoc("near", []float32{1, 0}),
		vecDoc("mid", []float32{1, 1}),
	})
	assert.NoError(t, err)

	results, err := s.Search(ctx, []float32{1, 0}, 5, 0.0)
	assert.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, "near", results[0].Document.Id)
	assert.Equal(t, "mid", results[1].Document.Id)
	assert.Equal(t, "far", results[2].Document.Id)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
}

func TestMemoryStoreSearchMinScoreAndTopK(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.AddMany(ctx, []*entity.VectorDocument{
		vecDoc("a", []float32{1, 0}),
		vecDoc("b", []float32{1, 1}),
		vecDoc("c", []float32{0, 1}),
	})
	assert.NoError(t, err)

	// min score drops the orthogonal document
	results, err := s.Search(ctx, []float32{1, 0}, 5, 0.5)
	assert.NoError(t, err)
	assert.Len(t, results, 2)

	// topK truncates after sorting
	results, err = s.Search(ctx, []float32{1, 0}, 1, 0.0)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Document.Id)

	// non-positive topK falls back to the default of 5
	results, err = s.Search(ctx, []float32{1, 0}, 0, 0.0)
	assert.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestMemoryStoreUpsertKeepsPosition(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	assert.NoError(t, s.AddMany(ctx, []*entity.VectorDocument{
		vecDoc("a", []float32{1, 0}),
		vecDoc("b", []float32{0, 1}),
	}))

	replacement := vecDoc("a", []float32{0.5, 0.5})
	replacement.Text = "replaced"
	assert.NoError(t, s.AddMany(ctx, []*entity.VectorDocument{replacement}))

	size, err := s.Size(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, size)

	all, err := s.GetAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "a", all[0].Id)
	assert.Equal(t, "replaced", all[0].Text)
	assert.Equal(t, "b", all[1].Id)
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	assert.NoError(t, s.AddMany(ctx, []*entity.VectorDocument{vecDoc("a", []float32{1})}))
	assert.NoError(t, s.Clear(ctx))

	size, err := s.Size(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, size)

	// the store is reusable after a clear
	assert.NoError(t, s.AddMany(ctx, []*entity.VectorDocument{vecDoc("b", []float32{1})}))
	size, err = s.Size(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0.0},
		{"unnormalized", []float32{2, 0}, []float32{7, 0}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}
