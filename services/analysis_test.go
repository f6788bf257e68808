package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"legalease-platform/internal/classifier"
	"legalease-platform/internal/common"
	"legalease-platform/internal/extract"
	"legalease-platform/internal/store"
	"legalease-platform/models"
)

type fakePipelines struct {
	mu            sync.Mutex
	summarizeN    int
	explainN      int
	summarizeErr  error
	summaryOutput string
}

func (f *fakePipelines) Summarize(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	f.summarizeN++
	f.mu.Unlock()
	if f.summarizeErr != nil {
		return "", f.summarizeErr
	}
	if f.summaryOutput != "" {
		return f.summaryOutput, nil
	}
	return "generated summary", nil
}

func (f *fakePipelines) Explain(ctx context.Context, clause, fullText string) (string, error) {
	f.mu.Lock()
	f.explainN++
	f.mu.Unlock()
	return "plain-language explanation", nil
}

type failingRepo struct{}

func (failingRepo) List(ctx context.Context) ([]models.DocumentRecord, error) {
	return nil, common.ErrPersistence
}
func (failingRepo) Get(ctx context.Context, id string) (models.DocumentRecord, error) {
	return models.DocumentRecord{}, common.ErrPersistence
}
func (failingRepo) Append(ctx context.Context, record models.DocumentRecord) error {
	return common.ErrPersistence
}

type noOCR struct{}

func (noOCR) Recognize(ctx context.Context, path string) (string, error) {
	return "", common.ErrSubprocess
}

func newService(t *testing.T, pipelines ModelPipelines, repo store.Repository) *AnalysisService {
	t.Helper()
	if repo == nil {
		repo = store.NewJSONFileStore(filepath.Join(t.TempDir(), "documents.json"))
	}
	return NewAnalysisService(extract.New(noOCR{}), classifier.New(), pipelines, repo)
}

func uploadFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.txt")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestUploadLegalDocumentAnalyzed(t *testing.T) {
	repo := store.NewJSONFileStore(filepath.Join(t.TempDir(), "documents.json"))
	svc := newService(t, &fakePipelines{}, repo)
	path := uploadFixture(t, "This Agreement is entered into between the parties")

	record, err := svc.Upload(context.Background(), path, "text/plain", "agreement.txt")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if record.Status != models.StatusAnalyzed {
		t.Errorf("expected status %s, got %s", models.StatusAnalyzed, record.Status)
	}
	if record.Summary == "" {
		t.Error("expected non-empty summary")
	}
	if record.ExtractedText == "" {
		t.Error("expected non-empty extracted text")
	}
	if !fileExists(path) {
		t.Error("successful upload must retain the file owned by the record")
	}

	stored, err := repo.Get(context.Background(), record.ID)
	if err != nil {
		t.Fatalf("record not persisted: %v", err)
	}
	if stored.FileReference != path {
		t.Errorf("record should reference the retained file, got %q", stored.FileReference)
	}
}

func TestUploadRejectedAndCleanedUp(t *testing.T) {
	pipelines := &fakePipelines{}
	repo := store.NewJSONFileStore(filepath.Join(t.TempDir(), "documents.json"))
	svc := newService(t, pipelines, repo)
	path := uploadFixture(t, "Hello world")

	_, err := svc.Upload(context.Background(), path, "text/plain", "hello.txt")
	if !errors.Is(err, common.ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	if fileExists(path) {
		t.Error("rejected upload must be deleted from disk")
	}
	if pipelines.summarizeN != 0 {
		t.Error("summarizer must not run for rejected documents")
	}
	records, _ := repo.List(context.Background())
	if len(records) != 0 {
		t.Error("rejected upload must never reach the store")
	}
}

func TestUploadUnsupportedFormat(t *testing.T) {
	repo := store.NewJSONFileStore(filepath.Join(t.TempDir(), "documents.json"))
	svc := newService(t, &fakePipelines{}, repo)
	path := uploadFixture(t, "binary audio bytes")

	_, err := svc.Upload(context.Background(), path, "audio/mpeg", "song.mp3")
	if !errors.Is(err, common.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if fileExists(path) {
		t.Error("unsupported upload must be deleted from disk")
	}
	records, _ := repo.List(context.Background())
	if len(records) != 0 {
		t.Error("no record may be created for unsupported formats")
	}
}

func TestUploadSummarizeFailureCleansUp(t *testing.T) {
	pipelines := &fakePipelines{summarizeErr: common.ErrModel}
	svc := newService(t, pipelines, nil)
	path := uploadFixture(t, "This contract binds the parties")

	_, err := svc.Upload(context.Background(), path, "text/plain", "contract.txt")
	if !errors.Is(err, common.ErrModel) {
		t.Fatalf("expected ErrModel, got %v", err)
	}
	if fileExists(path) {
		t.Error("failed upload must be deleted from disk")
	}
}

func TestUploadPersistenceFailureCleansUp(t *testing.T) {
	svc := newService(t, &fakePipelines{}, failingRepo{})
	path := uploadFixture(t, "This contract binds the parties")

	_, err := svc.Upload(context.Background(), path, "text/plain", "contract.txt")
	if !errors.Is(err, common.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if fileExists(path) {
		t.Error("upload must not be retained when persistence fails")
	}
}

func TestConcurrentUploadsAllPersisted(t *testing.T) {
	repo := store.NewJSONFileStore(filepath.Join(t.TempDir(), "documents.json"))
	svc := newService(t, &fakePipelines{}, repo)

	const m = 20
	dir := t.TempDir()
	var wg sync.WaitGroup
	for i := 0; i < m; i++ {
		path := filepath.Join(dir, fmt.Sprintf("upload-%d.txt", i))
		if err := os.WriteFile(path, []byte("agreement between the parties"), 0600); err != nil {
			t.Fatal(err)
		}
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			if _, err := svc.Upload(context.Background(), path, "text/plain", filepath.Base(path)); err != nil {
				t.Errorf("Upload %s: %v", path, err)
			}
		}(path)
	}
	wg.Wait()

	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != m {
		t.Fatalf("expected %d records after %d concurrent uploads, got %d", m, m, len(records))
	}
}

func TestExplainMissingDocumentSkipsModel(t *testing.T) {
	pipelines := &fakePipelines{}
	svc := newService(t, pipelines, nil)

	_, err := svc.Explain(context.Background(), "no-such-id", "the indemnity clause")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if pipelines.explainN != 0 {
		t.Error("explain must not invoke the model for a missing document")
	}
}

func TestExplainEmptyContext(t *testing.T) {
	repo := store.NewJSONFileStore(filepath.Join(t.TempDir(), "documents.json"))
	pipelines := &fakePipelines{}
	svc := newService(t, pipelines, repo)

	// A record with no extracted text should never reach a model.
	repo.Append(context.Background(), models.DocumentRecord{ID: "empty", Status: models.StatusAnalyzed})

	_, err := svc.Explain(context.Background(), "empty", "some clause")
	if !errors.Is(err, common.ErrEmptyContext) {
		t.Fatalf("expected ErrEmptyContext, got %v", err)
	}
	if pipelines.explainN != 0 {
		t.Error("explain must not invoke the model without context")
	}
}

func TestSummarizeExisting(t *testing.T) {
	repo := store.NewJSONFileStore(filepath.Join(t.TempDir(), "documents.json"))
	pipelines := &fakePipelines{summaryOutput: "fresh summary"}
	svc := newService(t, pipelines, repo)

	repo.Append(context.Background(), models.DocumentRecord{
		ID:            "doc-1",
		Status:        models.StatusAnalyzed,
		ExtractedText: "lease terms",
		Summary:       "original summary",
	})

	summary, err := svc.SummarizeExisting(context.Background(), "doc-1")
	if err != nil {
		t.Fatal(err)
	}
	if summary != "fresh summary" {
		t.Errorf("unexpected summary %q", summary)
	}

	// Recomputing must not rewrite the stored summary.
	stored, _ := repo.Get(context.Background(), "doc-1")
	if stored.Summary != "original summary" {
		t.Error("ad hoc summarization must not mutate the stored record")
	}

	if _, err := svc.SummarizeExisting(context.Background(), "missing"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
