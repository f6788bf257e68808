package models

import "time"

// Document status values. Only StatusAnalyzed is ever persisted; rejected or
// failed uploads are cleaned up instead of stored.
const (
	StatusAnalyzed = "ANALYZED"
	StatusRejected = "REJECTED"
	StatusError    = "ERROR"
)

// DocumentRecord is the persisted outcome of a successful analysis run.
type DocumentRecord struct {
	ID            string            `json:"id"`
	FileName      string            `json:"fileName"`
	FileReference string            `json:"fileReference"`
	Status        string            `json:"status"`
	MimeType      string            `json:"mimeType"`
	ExtractedText string            `json:"extractedText"`
	Summary       string            `json:"summary"`
	KeyValuePairs map[string]string `json:"keyValuePairs"`
	CreatedAt     time.Time         `json:"created_at"`
}

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	Message  string         `json:"message"`
	Document DocumentRecord `json:"document"`
}

// ExplainRequest carries the clause to be rewritten in plain language.
type ExplainRequest struct {
	Clause string `json:"clause" binding:"required"`
}

// SummarizeRequest carries ad-hoc text to summarize.
type SummarizeRequest struct {
	Text string `json:"text" binding:"required"`
}
