package retrieval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docintel-be/internal/entity"
	"docintel-be/internal/pkg/logger"
	"docintel-be/pkg/chunker"
	"docintel-be/pkg/embedding"
	"docintel-be/pkg/vectorstore"

	gocache "github.com/patrickmn/go-cache"
)

const (
	contextSeparator  = "\n\n---\n\n"
	citationTextLimit = 200

	embedCacheTTL     = 5 * time.Minute
	embedCacheCleanup = 10 * time.Minute
)

// Service orchestrates the vector path: ingestion (chunk -> embed -> store)
// and query (expand -> multi-query search -> dedup -> rerank -> filter ->
// assemble). It performs no locking of its own; the hosting service is
// responsible for single-writer/many-reader discipline around the store.
type Service struct {
	chunker    *chunker.Chunker
	provider   embedding.Provider
	store      vectorstore.Store
	embedCache *gocache.Cache
	logger     logger.ILogger
}

func NewService(ch *chunker.Chunker, provider embedding.Provider, store vectorstore.Store, log logger.ILogger) *Service {
	return &Service{
		chunker:    ch,
		provider:   provider,
		store:      store,
		embedCache: gocache.New(embedCacheTTL, embedCacheCleanup),
		logger:     log,
	}
}

// IngestDocument chunks, embeds and stores one document, returning the ids of
// the created vector documents. The embedding batch is all-or-nothing: any
// backend failure fails the whole ingest.
func (s *Service) IngestDocument(ctx context.Context, doc *entity.Document) ([]string, error) {
	if s.provider == nil || !s.provider.IsAvailable() {
		return nil, embedding.ErrUnavailable
	}

	meta := doc.Metadata
	if meta.DocumentType == "" {
		meta.DocumentType = doc.Type
	}

	chunks := s.chunker.ChunkText(doc.Text, chunker.Options{
		Strategy: chunker.StrategyFor(doc.Type),
		Metadata: meta,
	})
	if len(chunks) == 0 {
		return []string{}, nil
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}

	vectors, err := s.provider.GenerateBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("batch embedding failed: %w", err)
	}

	vectorDocs := make([]*entity.VectorDocument, len(chunks))
	ids := make([]string, len(chunks))
	for i, ch := range chunks {
		id := entity.VectorDocumentId(doc.Id, ch.Id)
		vectorDocs[i] = &entity.VectorDocument{
			Id:           id,
			DocumentId:   doc.Id,
			ChunkId:      ch.Id,
			Text:         ch.Text,
			Embedding:    vectors[i],
			DocumentType: doc.Type,
			Source:       doc.Source,
			SourceType:   doc.SourceType,
			Metadata:     ch.Metadata,
		}
		ids[i] = id
	}

	if err := s.store.AddMany(ctx, vectorDocs); err != nil {
		return nil, fmt.Errorf("store insert failed: %w", err)
	}

	s.logger.Info("RETRIEVAL", "Document ingested", map[string]interface{}{
		"document_id": doc.Id,
		"chunks":      len(chunks),
	})

	return ids, nil
}

// Query runs the full fusion pipeline for one query.
func (s *Service) Query(ctx context.Context, queryText string, opts QueryOptions) (*QueryResult, error) {
	if s.provider == nil || !s.provider.IsAvailable() {
		return nil, embedding.ErrUnavailable
	}
	if opts.TopK <= 0 {
		opts.TopK = 5
	}

	// 1. Query expansion.
	variants := []string{queryText}
	if opts.ExpandQuery {
		variants = expandQuery(queryText)
	}

	// 2+3. Embed each variant and union the per-variant searches.
	var union []entity.SearchResult
	for _, variant := range variants {
		vec, err := s.embedVariant(ctx, variant)
		if err != nil {
			return nil, fmt.Errorf("query embedding failed: %w", err)
		}
		hits, err := s.store.Search(ctx, vec, opts.TopK*2, opts.MinScore)
		if err != nil {
			return nil, fmt.Errorf("vector search failed: %w", err)
		}
		union = append(union, hits...)
	}

	// 4. Deduplicate by owning document id, first-seen order.
	seen := make(map[string]bool)
	results := make([]entity.SearchResult, 0, len(union))
	for _, r := range union {
		if seen[r.Document.DocumentId] {
			continue
		}
		seen[r.Document.DocumentId] = true
		results = append(results, r)
	}

	// 5. Rerank by blended vector+keyword score.
	if opts.Rerank {
		results = rerank(results, queryText)
	}

	// 6. Structured filters, before truncation.
	results = applyStructuredFilters(results, opts)

	// 7. Truncate.
	if len(results) > opts.TopK {
		results = results[:opts.TopK]
	}

	// 8. Legacy type filter, after truncation (documented asymmetry).
	results = applyTypeFilter(results, opts.FilterByType)

	s.logger.Debug("RETRIEVAL", "Query executed", map[string]interface{}{
		"query":    queryText,
		"variants": len(variants),
		"results":  len(results),
	})

	// 9. Assemble.
	return s.assemble(queryText, results, opts), nil
}

// GetContext is a convenience wrapper returning only the assembled context.
func (s *Service) GetContext(ctx context.Context, queryText string, topK int) (string, error) {
	opts := DefaultQueryOptions()
	if topK > 0 {
		opts.TopK = topK
	}
	res, err := s.Query(ctx, queryText, opts)
	if err != nil {
		return "", err
	}
	return res.Context, nil
}

// IsAvailable reports whether the engine can answer queries: an embedding
// backend is configured and the store holds at least one document.
func (s *Service) IsAvailable(ctx context.Context) bool {
	if s.provider == nil || !s.provider.IsAvailable() {
		return false
	}
	size, err := s.store.Size(ctx)
	return err == nil && size > 0
}

func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	size, err := s.store.Size(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var sources []string
	seen := make(map[string]bool)
	for _, d := range docs {
		for _, tag := range []string{d.Source, d.SourceType} {
			if tag != "" && !seen[tag] {
				seen[tag] = true
				sources = append(sources, tag)
			}
		}
	}

	return &Stats{
		DocumentCount:             size,
		EmbeddingBackendAvailable: s.provider != nil && s.provider.IsAvailable(),
		DataSources:               sources,
	}, nil
}

// Clear drops the whole corpus.
func (s *Service) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// embedVariant embeds one query variant, caching by variant text so repeated
// or expanded queries avoid redundant backend round trips.
func (s *Service) embedVariant(ctx context.Context, variant string) ([]float32, error) {
	if cached, ok := s.embedCache.Get(variant); ok {
		return cached.([]float32), nil
	}
	vec, err := s.provider.Generate(ctx, variant)
	if err != nil {
		return nil, err
	}
	s.embedCache.Set(variant, vec, gocache.DefaultExpiration)
	return vec, nil
}

func (s *Service) assemble(queryText string, results []entity.SearchResult, opts QueryOptions) *QueryResult {
	chunks := make([]ChunkResult, 0, len(results))
	citations := make([]Citation, 0, len(results))
	contextParts := make([]string, 0, len(results))

	var dataSources []string
	seenSource := make(map[string]bool)

	for _, r := range results {
		doc := r.Document

		var meta *entity.DocumentMetadata
		if opts.IncludeMetadata {
			m := doc.Metadata
			meta = &m
		}

		chunks = append(chunks, ChunkResult{
			Id:       doc.Id,
			Text:     doc.Text,
			Score:    r.Score,
			Metadata: meta,
		})

		citations = append(citations, Citation{
			DocumentId: doc.DocumentId,
			ChunkId:    doc.ChunkId,
			Text:       truncateText(doc.Text, citationTextLimit),
			Score:      r.Score,
			Source:     doc.Source,
			SourceType: doc.SourceType,
			Metadata:   meta,
		})

		part := doc.Text
		if opts.IncludeSourceInfo && doc.Source != "" {
			part = fmt.Sprintf("[Source: %s]\n%s", doc.Source, doc.Text)
		}
		contextParts = append(contextParts, part)

		for _, tag := range []string{doc.Source, doc.SourceType} {
			if tag != "" && !seenSource[tag] {
				seenSource[tag] = true
				dataSources = append(dataSources, tag)
			}
		}
	}

	return &QueryResult{
		Query:        queryText,
		Context:      strings.Join(contextParts, contextSeparator),
		Chunks:       chunks,
		Citations:    citations,
		DataSources:  dataSources,
		SourceNotice: buildSourceNotice(dataSources),
	}
}

func buildSourceNotice(dataSources []string) string {
	if len(dataSources) == 0 {
		return ""
	}
	return fmt.Sprintf("This response draws on material from the following sources: %s.", strings.Join(dataSources, ", "))
}

func truncateText(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
