package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// VectorDocument is the persisted form of one embedded chunk. The dimension
// matches Gemini text-embedding-004; Ollama's nomic-embed-text emits the same
// width.
type VectorDocument struct {
	Id           string          `gorm:"type:text;primaryKey"`
	DocumentId   string          `gorm:"type:text;not null;index"`
	ChunkId      string          `gorm:"type:text;not null"`
	Text         string          `gorm:"type:text"`
	Embedding    pgvector.Vector `gorm:"type:vector(768)"`
	DocumentType string          `gorm:"type:text;index"`
	Source       string          `gorm:"type:text"`
	SourceType   string          `gorm:"type:text;index"`

	// Structured metadata, flattened so filters hit real columns.
	Section       string     `gorm:"type:text"`
	Page          int        `gorm:"default:0"`
	Jurisdiction  string     `gorm:"type:text"`
	County        string     `gorm:"type:text;index"`
	Court         string     `gorm:"type:text"`
	JudgeReferee  string     `gorm:"type:text"`
	IssueTags     []string   `gorm:"type:jsonb;serializer:json"`
	PracticeAreas []string   `gorm:"type:jsonb;serializer:json"`
	EffectiveFrom *time.Time `gorm:""`
	EffectiveTo   *time.Time `gorm:""`

	Extra map[string]string `gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (VectorDocument) TableName() string {
	return "vector_documents"
}
