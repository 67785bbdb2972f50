package dto

import (
	"time"

	"docintel-be/internal/entity"
	"docintel-be/pkg/retrieval"
)

// DocumentMetadataDto mirrors entity.DocumentMetadata on the wire.
type DocumentMetadataDto struct {
	DocumentType  string            `json:"document_type,omitempty"`
	Section       string            `json:"section,omitempty"`
	Page          int               `json:"page,omitempty"`
	Jurisdiction  string            `json:"jurisdiction,omitempty"`
	County        string            `json:"county,omitempty"`
	Court         string            `json:"court,omitempty"`
	JudgeReferee  string            `json:"judge_referee,omitempty"`
	IssueTags     []string          `json:"issue_tags,omitempty"`
	PracticeAreas []string          `json:"practice_areas,omitempty"`
	EffectiveFrom *time.Time        `json:"effective_from,omitempty"`
	EffectiveTo   *time.Time        `json:"effective_to,omitempty"`
	Extra         map[string]string `json:"extra,omitempty"`
}

func (d *DocumentMetadataDto) ToEntity() entity.DocumentMetadata {
	if d == nil {
		return entity.DocumentMetadata{}
	}
	return entity.DocumentMetadata{
		DocumentType:  d.DocumentType,
		Section:       d.Section,
		Page:          d.Page,
		Jurisdiction:  d.Jurisdiction,
		County:        d.County,
		Court:         d.Court,
		JudgeReferee:  d.JudgeReferee,
		IssueTags:     d.IssueTags,
		PracticeAreas: d.PracticeAreas,
		EffectiveFrom: d.EffectiveFrom,
		EffectiveTo:   d.EffectiveTo,
		Extra:         d.Extra,
	}
}

func MetadataDtoFromEntity(m entity.DocumentMetadata) *DocumentMetadataDto {
	return &DocumentMetadataDto{
		DocumentType:  m.DocumentType,
		Section:       m.Section,
		Page:          m.Page,
		Jurisdiction:  m.Jurisdiction,
		County:        m.County,
		Court:         m.Court,
		JudgeReferee:  m.JudgeReferee,
		IssueTags:     m.IssueTags,
		PracticeAreas: m.PracticeAreas,
		EffectiveFrom: m.EffectiveFrom,
		EffectiveTo:   m.EffectiveTo,
		Extra:         m.Extra,
	}
}

type IngestDocumentRequest struct {
	Id         string               `json:"id" validate:"required"`
	Text       string               `json:"text" validate:"required"`
	Type       string               `json:"type"`
	Source     string               `json:"source"`
	SourceType string               `json:"source_type"`
	Metadata   *DocumentMetadataDto `json:"metadata"`
}

func (r *IngestDocumentRequest) ToEntity() *entity.Document {
	return &entity.Document{
		Id:         r.Id,
		Text:       r.Text,
		Type:       r.Type,
		Source:     r.Source,
		SourceType: r.SourceType,
		Metadata:   r.Metadata.ToEntity(),
	}
}

type IngestDocumentResponse struct {
	DocumentId string   `json:"document_id"`
	ChunkIds   []string `json:"chunk_ids"`
	ChunkCount int      `json:"chunk_count"`
}

type BulkIngestRequest struct {
	Documents []IngestDocumentRequest `json:"documents" validate:"required,min=1,dive"`
}

// BulkIngestResponse acknowledges an async bulk ingest. Documents are
// embedded in the background; JobIds correlate with consumer logs.
type BulkIngestResponse struct {
	Accepted int      `json:"accepted"`
	JobIds   []string `json:"job_ids"`
}

type QueryRequest struct {
	Query             string  `json:"query" validate:"required"`
	TopK              int     `json:"top_k" validate:"omitempty,min=1,max=50"`
	MinScore          float64 `json:"min_score" validate:"omitempty,min=0,max=1"`
	IncludeMetadata   bool    `json:"include_metadata"`
	ExpandQuery       *bool   `json:"expand_query"`
	Rerank            *bool   `json:"rerank"`
	IncludeSourceInfo *bool   `json:"include_source_info"`

	FilterByType []string `json:"filter_by_type"`

	SourceTypes   []string   `json:"source_types"`
	County        string     `json:"county"`
	Court         string     `json:"court"`
	JudgeReferee  string     `json:"judge_referee"`
	IssueTags     []string   `json:"issue_tags"`
	EffectiveFrom *time.Time `json:"effective_from"`
	EffectiveTo   *time.Time `json:"effective_to"`
}

// ToOptions folds the request onto the engine defaults: absent booleans keep
// their default-true behavior, zero TopK/MinScore keep the configured
// defaults.
func (r *QueryRequest) ToOptions(defaultTopK int, defaultMinScore float64) retrieval.QueryOptions {
	opts := retrieval.DefaultQueryOptions()
	if defaultTopK > 0 {
		opts.TopK = defaultTopK
	}
	if r.TopK > 0 {
		opts.TopK = r.TopK
	}
	if defaultMinScore > 0 {
		opts.MinScore = defaultMinScore
	}
	if r.MinScore > 0 {
		opts.MinScore = r.MinScore
	}
	opts.IncludeMetadata = r.IncludeMetadata
	if r.ExpandQuery != nil {
		opts.ExpandQuery = *r.ExpandQuery
	}
	if r.Rerank != nil {
		opts.Rerank = *r.Rerank
	}
	if r.IncludeSourceInfo != nil {
		opts.IncludeSourceInfo = *r.IncludeSourceInfo
	}
	opts.FilterByType = r.FilterByType
	opts.SourceTypes = r.SourceTypes
	opts.County = r.County
	opts.Court = r.Court
	opts.JudgeReferee = r.JudgeReferee
	opts.IssueTags = r.IssueTags
	opts.EffectiveFrom = r.EffectiveFrom
	opts.EffectiveTo = r.EffectiveTo
	return opts
}

type ChunkResultDto struct {
	Id       string               `json:"id"`
	Text     string               `json:"text"`
	Score    float64              `json:"score"`
	Metadata *DocumentMetadataDto `json:"metadata,omitempty"`
}

type CitationDto struct {
	DocumentId string               `json:"document_id"`
	ChunkId    string               `json:"chunk_id"`
	Text       string               `json:"text"`
	Score      float64              `json:"score"`
	Source     string               `json:"source,omitempty"`
	SourceType string               `json:"source_type,omitempty"`
	Metadata   *DocumentMetadataDto `json:"metadata,omitempty"`
}

type QueryResponse struct {
	Query        string           `json:"query"`
	Context      string           `json:"context"`
	Chunks       []ChunkResultDto `json:"chunks"`
	Citations    []CitationDto    `json:"citations"`
	DataSources  []string         `json:"data_sources"`
	SourceNotice string           `json:"source_notice,omitempty"`
}

func QueryResponseFromResult(res *retrieval.QueryResult) *QueryResponse {
	chunks := make([]ChunkResultDto, len(res.Chunks))
	for i, c := range res.Chunks {
		chunks[i] = ChunkResultDto{
			Id:    c.Id,
			Text:  c.Text,
			Score: c.Score,
		}
		if c.Metadata != nil {
			chunks[i].Metadata = MetadataDtoFromEntity(*c.Metadata)
		}
	}

	citations := make([]CitationDto, len(res.Citations))
	for i, c := range res.Citations {
		citations[i] = CitationDto{
			DocumentId: c.DocumentId,
			ChunkId:    c.ChunkId,
			Text:       c.Text,
			Score:      c.Score,
			Source:     c.Source,
			SourceType: c.SourceType,
		}
		if c.Metadata != nil {
			citations[i].Metadata = MetadataDtoFromEntity(*c.Metadata)
		}
	}

	return &QueryResponse{
		Query:        res.Query,
		Context:      res.Context,
		Chunks:       chunks,
		Citations:    citations,
		DataSources:  res.DataSources,
		SourceNotice: res.SourceNotice,
	}
}

type ContextResponse struct {
	Query   string `json:"query"`
	Context string `json:"context"`
}

type StatsResponse struct {
	DocumentCount             int      `json:"document_count"`
	EmbeddingBackendAvailable bool     `json:"embedding_backend_available"`
	Available                 bool     `json:"available"`
	DataSources               []string `json:"data_sources"`
}
