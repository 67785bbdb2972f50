package embedding

import (
	"context"
	"errors"
	"math"
)

// ErrUnavailable is returned by the retrieval path when no embedding backend
// is configured. It is a hard error: the engine never degrades to a mock.
var ErrUnavailable = errors.New("embedding backend unavailable")

// Provider defines the interface for generating text embeddings.
// GenerateBatch is order- and length-preserving and all-or-nothing: a failure
// on any input fails the whole batch.
type Provider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
	GenerateBatch(ctx context.Context, texts []string) ([][]float32, error)
	IsAvailable() bool
}

// Normalize scales a vector to unit length. Cosine similarity over normalized
// vectors reduces to a dot product, which both the in-memory store and
// pgvector rely on.
func Normalize(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
