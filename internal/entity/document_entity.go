package entity

import "time"

// DocumentMetadata carries the optional descriptive fields a caller may attach
// to an ingested document. Fields are explicit rather than a free-form map so
// the structured query filters can address them directly.
type DocumentMetadata struct {
	DocumentType  string
	Section       string
	Page          int
	Jurisdiction  string
	County        string
	Court         string
	JudgeReferee  string
	IssueTags     []string
	PracticeAreas []string
	EffectiveFrom *time.Time
	EffectiveTo   *time.Time
	Extra         map[string]string
}

// Document is the ingestion input. It is consumed during ingestion and not
// retained by the engine.
type Document struct {
	Id         string
	Text       string
	Type       string
	Source     string
	SourceType string
	Metadata   DocumentMetadata
}

// Chunk is a bounded span of a document's text produced by the chunker.
// Id is unique within the owning document.
type Chunk struct {
	Id       string
	Text     string
	Index    int
	Section  string
	Metadata DocumentMetadata
}
