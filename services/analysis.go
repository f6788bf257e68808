package services

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"legalease-platform/internal/classifier"
	"legalease-platform/internal/common"
	"legalease-platform/internal/logger"
	"legalease-platform/internal/store"
	"legalease-platform/models"
)

// TextExtractor is what the orchestrator needs from the extractor set.
type TextExtractor interface {
	Text(ctx context.Context, path, declaredMimeType string) (string, error)
}

// ModelPipelines is what the orchestrator needs from the pipeline cache.
type ModelPipelines interface {
	Summarize(ctx context.Context, text string) (string, error)
	Explain(ctx context.Context, clause, fullText string) (string, error)
}

// AnalysisService sequences extraction, classification, summarization and
// persistence for each upload, and serves the read-side operations. Every
// failed upload deletes the retained file before returning; only a fully
// analyzed document ever reaches the store.
type AnalysisService struct {
	extractor  TextExtractor
	classifier *classifier.Classifier
	pipelines  ModelPipelines
	repo       store.Repository
}

// NewAnalysisService wires the pipeline stages together.
func NewAnalysisService(extractor TextExtractor, cls *classifier.Classifier, pipelines ModelPipelines, repo store.Repository) *AnalysisService {
	return &AnalysisService{
		extractor:  extractor,
		classifier: cls,
		pipelines:  pipelines,
		repo:       repo,
	}
}

// Upload runs one file through the full pipeline and returns the persisted
// record. path is the retained upload on disk; the record owns it after a
// successful run, and it is deleted on every failure branch.
func (s *AnalysisService) Upload(ctx context.Context, path, mimeType, fileName string) (models.DocumentRecord, error) {
	logger.Info("starting document analysis", "file", fileName, "mime_type", mimeType)

	text, err := s.extractor.Text(ctx, path, mimeType)
	if err != nil {
		s.discard(path)
		return models.DocumentRecord{}, err
	}

	if !s.classifier.IsLegalDocument(text) {
		logger.Warn("document rejected: no legal keyword found", "file", fileName)
		s.discard(path)
		return models.DocumentRecord{}, common.WrapError(common.ErrRejected, "not recognized as a legal document")
	}

	summary, err := s.pipelines.Summarize(ctx, text)
	if err != nil {
		s.discard(path)
		return models.DocumentRecord{}, err
	}

	record := models.DocumentRecord{
		ID:            uuid.NewString(),
		FileName:      fileName,
		FileReference: path,
		Status:        models.StatusAnalyzed,
		MimeType:      mimeType,
		ExtractedText: text,
		Summary:       summary,
		KeyValuePairs: map[string]string{},
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Append(ctx, record); err != nil {
		// No record owns the file if persistence failed; discard it so the
		// upload directory never accumulates orphans.
		s.discard(path)
		return models.DocumentRecord{}, err
	}

	logger.Info("document analyzed and stored", "id", record.ID, "file", fileName)
	return record, nil
}

// Repo exposes the backing repository for read-only consumers such as the
// spreadsheet export.
func (s *AnalysisService) Repo() store.Repository {
	return s.repo
}

// List returns all persisted records.
func (s *AnalysisService) List(ctx context.Context) ([]models.DocumentRecord, error) {
	return s.repo.List(ctx)
}

// Get returns one record by id.
func (s *AnalysisService) Get(ctx context.Context, id string) (models.DocumentRecord, error) {
	return s.repo.Get(ctx, id)
}

// SummarizeAdHoc summarizes caller-supplied text without touching the store.
func (s *AnalysisService) SummarizeAdHoc(ctx context.Context, text string) (string, error) {
	return s.pipelines.Summarize(ctx, text)
}

// SummarizeExisting recomputes a summary for a stored record's text. The
// stored summary field is left untouched.
func (s *AnalysisService) SummarizeExisting(ctx context.Context, id string) (string, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.pipelines.Summarize(ctx, record.ExtractedText)
}

// Explain rewrites a clause in plain language, grounded in the stored
// document text. A missing record or empty context returns before any model
// invocation.
func (s *AnalysisService) Explain(ctx context.Context, id, clause string) (string, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(record.ExtractedText) == "" {
		return "", common.WrapError(common.ErrEmptyContext, "cannot explain clause for document "+id)
	}
	return s.pipelines.Explain(ctx, clause, record.ExtractedText)
}

// discard removes a retained upload that no record will ever reference.
func (s *AnalysisService) discard(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to delete retained upload", "path", path, "error", err)
	}
}
