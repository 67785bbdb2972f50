package retrieval

import (
	"time"

	"docintel-be/internal/entity"
)

// QueryOptions controls a single Query call. Zero values are meaningful, so
// callers normally start from DefaultQueryOptions and override.
type QueryOptions struct {
	TopK              int
	MinScore          float64
	IncludeMetadata   bool
	ExpandQuery       bool
	Rerank            bool
	IncludeSourceInfo bool

	// FilterByType is the legacy document-type allow-list. It is applied
	// AFTER truncation to TopK, unlike the structured filters below. The
	// asymmetry is intentional and preserved.
	FilterByType []string

	// Structured filters, applied in this order before truncation.
	SourceTypes   []string
	County        string
	Court         string
	JudgeReferee  string
	IssueTags     []string
	EffectiveFrom *time.Time
	EffectiveTo   *time.Time
}

func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		TopK:              5,
		MinScore:          0.0,
		ExpandQuery:       true,
		Rerank:            true,
		IncludeSourceInfo: true,
	}
}

// ChunkResult is one retrieved chunk in a query response.
type ChunkResult struct {
	Id       string
	Text     string
	Score    float64
	Metadata *entity.DocumentMetadata
}

// Citation points a retrieved chunk back at its source document.
type Citation struct {
	DocumentId string
	ChunkId    string
	Text       string
	Score      float64
	Source     string
	SourceType string
	Metadata   *entity.DocumentMetadata
}

// QueryResult is the assembled output of one query.
type QueryResult struct {
	Query        string
	Context      string
	Chunks       []ChunkResult
	Citations    []Citation
	DataSources  []string
	SourceNotice string
}

// Stats summarizes the engine's readiness and corpus.
type Stats struct {
	DocumentCount             int
	EmbeddingBackendAvailable bool
	DataSources               []string
}
