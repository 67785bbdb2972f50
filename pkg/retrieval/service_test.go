package retrieval

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"docintel-be/internal/entity"
	"docintel-be/internal/pkg/logger"
	"docintel-be/pkg/chunker"
	"docintel-be/pkg/embedding"
	"docintel-be/pkg/vectorstore"
)

// stubProvider embeds by counting occurrences of a small fixed vocabulary,
// which gives deterministic, topically meaningful vectors without a backend.
type stubProvider struct {
	available bool
	calls     int
}

var stubVocab = []string{"contract", "payment", "custody", "hearing"}

func (s *stubProvider) Generate(_ context.Context, text string) ([]float32, error) {
	s.calls++
	lower := strings.ToLower(text)
	vec := make([]float32, len(stubVocab))
	for i, word := range stubVocab {
		vec[i] = float32(strings.Count(lower, word))
	}
	return embedding.Normalize(vec), nil
}

func (s *stubProvider) GenerateBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := s.Generate(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (s *stubProvider) IsAvailable() bool { return s.available }

func newTestService(provider embedding.Provider) *Service {
	return NewService(chunker.New(0), provider, vectorstore.NewMemoryStore(), logger.NewNop())
}

func contractDoc() *entity.Document {
	return &entity.Document{
		Id:         "doc_contract",
		Text:       "The contract requires payment within thirty days. The contract survives termination.",
		Type:       "legal",
		Source:     "Acme Services Agreement",
		SourceType: "contract",
		Metadata:   entity.DocumentMetadata{County: "Oakland", IssueTags: []string{"payment"}},
	}
}

func custodyDoc() *entity.Document {
	return &entity.Document{
		Id:         "doc_custody",
		Text:       "The custody hearing was continued. The referee set a new hearing date.",
		Type:       "case_file",
		Source:     "Case 24-001 Register of Actions",
		SourceType: "court_record",
		Metadata:   entity.DocumentMetadata{County: "Wayne"},
	}
}

func TestIngestDocumentUnavailableBackend(t *testing.T) {
	svc := newTestService(&stubProvider{available: false})

	_, err := svc.IngestDocument(context.Background(), contractDoc())
	assert.ErrorIs(t, err, embedding.ErrUnavailable)
}

func TestIngestDocumentStoresChunks(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&stubProvider{available: true})

	ids, err := svc.IngestDocument(ctx, contractDoc())
	assert.NoError(t, err)
	assert.NotEmpty(t, ids)
	assert.Equal(t, "doc_contract_chunk_0", ids[0])

	stats, err := svc.GetStats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, len(ids), stats.DocumentCount)
	assert.True(t, stats.EmbeddingBackendAvailable)
	assert.Contains(t, stats.DataSources, "Acme Services Agreement")
	assert.Contains(t, stats.DataSources, "contract")
}

func TestIngestDocumentEmptyText(t *testing.T) {
	svc := newTestService(&stubProvider{available: true})

	ids, err := svc.IngestDocument(context.Background(), &entity.Document{Id: "empty", Text: "   "})
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestQueryRanksByTopic(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&stubProvider{available: true})

	_, err := svc.IngestDocument(ctx, contractDoc())
	assert.NoError(t, err)
	_, err = svc.IngestDocument(ctx, custodyDoc())
	assert.NoError(t, err)

	opts := DefaultQueryOptions()
	opts.ExpandQuery = false
	opts.Rerank = false

	res, err := svc.Query(ctx, "contract payment terms", opts)
	assert.NoError(t, err)
	assert.Equal(t, "contract payment terms", res.Query)
	assert.NotEmpty(t, res.Chunks)
	assert.Contains(t, res.Chunks[0].Text, "contract")

	assert.NotEmpty(t, res.Citations)
	assert.Equal(t, "doc_contract", res.Citations[0].DocumentId)
	assert.Equal(t, "chunk_0", res.Citations[0].ChunkId)

	assert.Contains(t, res.DataSources, "Acme Services Agreement")
	assert.Contains(t, res.SourceNotice, "Acme Services Agreement")
	assert.Contains(t, res.Context, "[Source: Acme Services Agreement]")
}

func TestQueryUnavailableBackend(t *testing.T) {
	svc := newTestService(&stubProvider{available: false})

	_, err := svc.Query(context.Background(), "anything", DefaultQueryOptions())
	assert.ErrorIs(t, err, embedding.ErrUnavailable)
}

func TestQueryDeduplicatesByDocument(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&stubProvider{available: true})

	// one document, several topically similar chunks
	doc := contractDoc()
	doc.Text = "The contract requires payment.\n\nThe contract covers payment schedules.\n\nThe contract defines payment defaults."
	_, err := svc.IngestDocument(ctx, doc)
	assert.NoError(t, err)

	opts := DefaultQueryOptions()
	res, err := svc.Query(ctx, "contract payment", opts)
	assert.NoError(t, err)

	docIds := make(map[string]int)
	for _, c := range res.Citations {
		docIds[c.DocumentId]++
	}
	assert.Equal(t, 1, docIds["doc_contract"])
}

func TestQueryStructuredFilters(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&stubProvider{available: true})

	_, err := svc.IngestDocument(ctx, contractDoc())
	assert.NoError(t, err)
	_, err = svc.IngestDocument(ctx, custodyDoc())
	assert.NoError(t, err)

	opts := DefaultQueryOptions()
	opts.ExpandQuery = false
	opts.County = "Wayne"

	res, err := svc.Query(ctx, "hearing", opts)
	assert.NoError(t, err)
	for _, c := range res.Citations {
		assert.Equal(t, "doc_custody", c.DocumentId)
	}
	assert.NotEmpty(t, res.Citations)
}

func TestQueryLegacyTypeFilter(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&stubProvider{available: true})

	_, err := svc.IngestDocument(ctx, contractDoc())
	assert.NoError(t, err)
	_, err = svc.IngestDocument(ctx, custodyDoc())
	assert.NoError(t, err)

	opts := DefaultQueryOptions()
	opts.ExpandQuery = false
	opts.FilterByType = []string{"case_file"}

	res, err := svc.Query(ctx, "custody hearing", opts)
	assert.NoError(t, err)
	assert.NotEmpty(t, res.Citations)
	for _, c := range res.Citations {
		assert.Equal(t, "doc_custody", c.DocumentId)
	}
}

func TestQueryEmbeddingCache(t *testing.T) {
	ctx := context.Background()
	provider := &stubProvider{available: true}
	svc := newTestService(provider)

	_, err := svc.IngestDocument(ctx, contractDoc())
	assert.NoError(t, err)

	opts := DefaultQueryOptions()
	opts.ExpandQuery = false

	_, err = svc.Query(ctx, "contract payment", opts)
	assert.NoError(t, err)
	callsAfterFirst := provider.calls

	_, err = svc.Query(ctx, "contract payment", opts)
	assert.NoError(t, err)
	assert.Equal(t, callsAfterFirst, provider.calls)
}

func TestQueryIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&stubProvider{available: true})

	_, err := svc.IngestDocument(ctx, contractDoc())
	assert.NoError(t, err)
	_, err = svc.IngestDocument(ctx, custodyDoc())
	assert.NoError(t, err)

	opts := DefaultQueryOptions()
	opts.ExpandQuery = false
	opts.Rerank = false

	first, err := svc.Query(ctx, "contract hearing", opts)
	assert.NoError(t, err)
	second, err := svc.Query(ctx, "contract hearing", opts)
	assert.NoError(t, err)

	assert.Equal(t, len(first.Chunks), len(second.Chunks))
	for i := range first.Chunks {
		assert.Equal(t, first.Chunks[i].Id, second.Chunks[i].Id)
		assert.Equal(t, first.Chunks[i].Score, second.Chunks[i].Score)
	}
	assert.Equal(t, first.Context, second.Context)
}

func TestIsAvailable(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&stubProvider{available: true})

	// backend up but corpus empty
	assert.False(t, svc.IsAvailable(ctx))

	_, err := svc.IngestDocument(ctx, contractDoc())
	assert.NoError(t, err)
	assert.True(t, svc.IsAvailable(ctx))

	assert.NoError(t, svc.Clear(ctx))
	assert.False(t, svc.IsAvailable(ctx))
}

func TestGetContext(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&stubProvider{available: true})

	_, err := svc.IngestDocument(ctx, contractDoc())
	assert.NoError(t, err)

	text, err := svc.GetContext(ctx, "contract payment", 3)
	assert.NoError(t, err)
	assert.Contains(t, text, "contract")
}

func TestExpandQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "no known terms",
			query: "what happened in court",
			want:  []string{"what happened in court"},
		},
		{
			name:  "one term caps at three variants",
			query: "contract dispute",
			want: []string{
				"contract dispute",
				"contract dispute agreement",
				"contract dispute covenant",
			},
		},
		{
			name:  "punctuation stripped before lookup",
			query: "breach?",
			want: []string{
				"breach?",
				"breach? violation",
				"breach? default",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandQuery(tt.query))
		})
	}
}

func TestRerankBlendsKeywordOverlap(t *testing.T) {
	results := []entity.SearchResult{
		{Document: &entity.VectorDocument{Id: "a", Text: "nothing relevant here"}, Score: 0.9},
		{Document: &entity.VectorDocument{Id: "b", Text: "custody hearing continued"}, Score: 0.8},
	}

	reranked := rerank(results, "custody hearing")

	// 0.7*0.8 + 0.2 beats 0.7*0.9 + 0
	assert.Equal(t, "b", reranked[0].Document.Id)
	assert.InDelta(t, 0.76, reranked[0].Score, 1e-9)
	assert.InDelta(t, 0.63, reranked[1].Score, 1e-9)
}

func TestRerankKeywordBonusIsCapped(t *testing.T) {
	results := []entity.SearchResult{
		{Document: &entity.VectorDocument{Id: "a", Text: "custody hearing motion judgment evidence"}, Score: 0.0},
	}

	reranked := rerank(results, "custody hearing motion judgment evidence")
	assert.InDelta(t, 0.3, reranked[0].Score, 1e-9)
}
