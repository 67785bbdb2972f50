package vectorstore

import (
	"context"
	"math"
	"sort"

	"docintel-be/internal/entity"
)

// MemoryStore is a brute-force in-memory vector store. Each query is an O(N)
// linear scan over the corpus, which is acceptable at the corpus sizes this
// engine targets; there is no indexing structure.
type MemoryStore struct {
	docs  []*entity.VectorDocument
	index map[string]int // id -> position in docs
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		index: make(map[string]int),
	}
}

// AddMany upserts by id. A replaced document keeps its original insertion
// position, so tie-breaking stays stable across re-ingests.
func (s *MemoryStore) AddMany(_ context.Context, docs []*entity.VectorDocument) error {
	for _, doc := range docs {
		if pos, ok := s.index[doc.Id]; ok {
			s.docs[pos] = doc
			continue
		}
		s.index[doc.Id] = len(s.docs)
		s.docs = append(s.docs, doc)
	}
	return nil
}

func (s *MemoryStore) Search(_ context.Context, embedding []float32, topK int, minScore float64) ([]entity.SearchResult, error) {
	if topK <= 0 {
		topK = 5
	}

	results := make([]entity.SearchResult, 0, len(s.docs))
	for _, doc := range s.docs {
		score := cosineSimilarity(embedding, doc.Embedding)
		if score >= minScore {
			results = append(results, entity.SearchResult{Document: doc, Score: score})
		}
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func (s *MemoryStore) Size(_ context.Context) (int, error) {
	return len(s.docs), nil
}

func (s *MemoryStore) GetAll(_ context.Context) ([]*entity.VectorDocument, error) {
	out := make([]*entity.VectorDocument, len(s.docs))
	copy(out, s.docs)
	return out, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.docs = nil
	s.index = make(map[string]int)
	return nil
}

// cosineSimilarity computes the normalized inner product of two vectors.
// Providers normalize on ingest, but the magnitudes are still divided out so
// unnormalized test vectors score correctly.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
