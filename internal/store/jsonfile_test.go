package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"legalease-platform/internal/common"
	"legalease-platform/models"
)

func newTestStore(t *testing.T) *JSONFileStore {
	t.Helper()
	return NewJSONFileStore(filepath.Join(t.TempDir(), "documents.json"))
}

func record(id string) models.DocumentRecord {
	return models.DocumentRecord{
		ID:            id,
		FileName:      id + ".txt",
		FileReference: "/uploads/" + id,
		Status:        models.StatusAnalyzed,
		MimeType:      "text/plain",
		ExtractedText: "whereas the parties agree",
		Summary:       "a short summary",
		KeyValuePairs: map[string]string{},
	}
}

func TestMissingFileReadsEmpty(t *testing.T) {
	s := newTestStore(t)

	records, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty collection, got %d records", len(records))
	}
}

func TestAppendAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Append(ctx, record("doc-1")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := s.Get(ctx, "doc-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Summary != "a short summary" || got.Status != models.StatusAnalyzed {
		t.Errorf("unexpected record %+v", got)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestConcurrentAppendsLoseNothing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const m = 50
	var wg sync.WaitGroup
	for i := 0; i < m; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.Append(ctx, record(fmt.Sprintf("doc-%d", i))); err != nil {
				t.Errorf("Append %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	records, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != m {
		t.Fatalf("expected %d records after concurrent appends, got %d", m, len(records))
	}

	seen := make(map[string]bool, m)
	for _, r := range records {
		seen[r.ID] = true
	}
	if len(seen) != m {
		t.Errorf("expected %d distinct records, got %d", m, len(seen))
	}
}

func TestCorruptFileIsPersistenceError(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.List(context.Background()); !errors.Is(err, common.ErrPersistence) {
		t.Errorf("expected ErrPersistence for corrupt file, got %v", err)
	}
	if err := s.Append(context.Background(), record("x")); !errors.Is(err, common.ErrPersistence) {
		t.Errorf("expected Append to refuse a corrupt collection, got %v", err)
	}
}

func TestAppendSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "documents.json")
	ctx := context.Background()

	s1 := NewJSONFileStore(path)
	if err := s1.Append(ctx, record("doc-1")); err != nil {
		t.Fatal(err)
	}

	// A fresh store over the same file sees the persisted collection.
	s2 := NewJSONFileStore(path)
	if _, err := s2.Get(ctx, "doc-1"); err != nil {
		t.Fatalf("expected record to survive reload: %v", err)
	}
}
