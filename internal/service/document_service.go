package service

import (
	"context"
	"encoding/json"
	"sync"

	"docintel-be/internal/dto"
	"docintel-be/internal/pkg/logger"
	"docintel-be/pkg/retrieval"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error)
	BulkIngest(ctx context.Context, req *dto.BulkIngestRequest) (*dto.BulkIngestResponse, error)
	Query(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error)
	GetContext(ctx context.Context, query string, topK int) (*dto.ContextResponse, error)
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
	Clear(ctx context.Context) error
}

// documentService fronts the retrieval engine for the REST layer. The engine
// performs no locking of its own, so this service holds the RWMutex: ingest
// and clear take the write lock, queries and stats the read lock.
type documentService struct {
	engine           *retrieval.Service
	publisherService IPublisherService
	logger           logger.ILogger
	defaultTopK      int
	defaultMinScore  float64

	mu sync.RWMutex
}

func NewDocumentService(
	engine *retrieval.Service,
	publisherService IPublisherService,
	log logger.ILogger,
	defaultTopK int,
	defaultMinScore float64,
) IDocumentService {
	return &documentService{
		engine:           engine,
		publisherService: publisherService,
		logger:           log,
		defaultTopK:      defaultTopK,
		defaultMinScore:  defaultMinScore,
	}
}

func (s *documentService) Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.engine.IngestDocument(ctx, req.ToEntity())
	if err != nil {
		return nil, err
	}

	return &dto.IngestDocumentResponse{
		DocumentId: req.Id,
		ChunkIds:   ids,
		ChunkCount: len(ids),
	}, nil
}

// BulkIngest accepts the batch immediately and hands each document to the
// embedding consumer via the message bus.
func (s *documentService) BulkIngest(ctx context.Context, req *dto.BulkIngestRequest) (*dto.BulkIngestResponse, error) {
	jobIds := make([]string, 0, len(req.Documents))

	for _, doc := range req.Documents {
		payload := dto.PublishIngestDocumentMessage{
			JobId:    uuid.NewString(),
			Document: doc,
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		if err := s.publisherService.Publish(ctx, raw); err != nil {
			return nil, err
		}
		jobIds = append(jobIds, payload.JobId)
	}

	s.logger.Info("DOCUMENT", "Bulk ingest accepted", map[string]interface{}{
		"documents": len(req.Documents),
	})

	return &dto.BulkIngestResponse{
		Accepted: len(jobIds),
		JobIds:   jobIds,
	}, nil
}

func (s *documentService) Query(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, err := s.engine.Query(ctx, req.Query, req.ToOptions(s.defaultTopK, s.defaultMinScore))
	if err != nil {
		return nil, err
	}
	return dto.QueryResponseFromResult(res), nil
}

func (s *documentService) GetContext(ctx context.Context, query string, topK int) (*dto.ContextResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	text, err := s.engine.GetContext(ctx, query, topK)
	if err != nil {
		return nil, err
	}
	return &dto.ContextResponse{Query: query, Context: text}, nil
}

func (s *documentService) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats, err := s.engine.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.StatsResponse{
		DocumentCount:             stats.DocumentCount,
		EmbeddingBackendAvailable: stats.EmbeddingBackendAvailable,
		Available:                 s.engine.IsAvailable(ctx),
		DataSources:               stats.DataSources,
	}, nil
}

func (s *documentService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.Clear(ctx)
}
