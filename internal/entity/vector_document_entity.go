package entity

import "fmt"

// VectorDocument is an embedded chunk owned by the vector store. Its id is
// "{documentId}_{chunkId}" so chunk-level hits can be traced back to the
// source document.
type VectorDocument struct {
	Id           string
	DocumentId   string
	ChunkId      string
	Text         string
	Embedding    []float32
	DocumentType string
	Source       string
	SourceType   string
	Metadata     DocumentMetadata
}

// SearchResult pairs a stored vector document with its similarity score for
// one query.
type SearchResult struct {
	Document *VectorDocument
	Score    float64
}

// VectorDocumentId builds the canonical store id for a chunk of a document.
func VectorDocumentId(documentId, chunkId string) string {
	return fmt.Sprintf("%s_%s", documentId, chunkId)
}
