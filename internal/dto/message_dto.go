package dto

// PublishIngestDocumentMessage is the payload carried on the async ingest
// topic. The full document rides along so the consumer needs no lookup.
type PublishIngestDocumentMessage struct {
	JobId    string                `json:"job_id"`
	Document IngestDocumentRequest `json:"document"`
}
