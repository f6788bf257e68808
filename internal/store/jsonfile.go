package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"legalease-platform/internal/common"
	"legalease-platform/models"
)

// JSONFileStore keeps the full record collection in one JSON file, rewritten
// wholesale on every append. A mutex imposes single-writer discipline, and
// writes go through a temp file + rename so a crash never leaves a
// half-written collection behind.
type JSONFileStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONFileStore creates a store over path. The file is created lazily on
// first append; a missing file reads as an empty collection.
func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

func (s *JSONFileStore) List(ctx context.Context) ([]models.DocumentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

func (s *JSONFileStore) Get(ctx context.Context, id string) (models.DocumentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return models.DocumentRecord{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return models.DocumentRecord{}, common.WrapError(common.ErrNotFound, "no document with id "+id)
}

func (s *JSONFileStore) Append(ctx context.Context, record models.DocumentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return err
	}
	records = append(records, record)
	return s.writeAll(records)
}

// readAll loads the whole collection. Caller holds the mutex.
func (s *JSONFileStore) readAll() ([]models.DocumentRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.DocumentRecord{}, nil
		}
		return nil, common.WrapError(common.ErrPersistence, "failed to read documents file")
	}
	if len(data) == 0 {
		return []models.DocumentRecord{}, nil
	}

	var records []models.DocumentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, common.WrapError(common.ErrPersistence, "documents file is corrupt")
	}
	return records, nil
}

// writeAll atomically replaces the collection file. Caller holds the mutex.
func (s *JSONFileStore) writeAll(records []models.DocumentRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return common.WrapError(common.ErrPersistence, "failed to encode documents")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".documents-*.json")
	if err != nil {
		return common.WrapError(common.ErrPersistence, "failed to create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return common.WrapError(common.ErrPersistence, "failed to write documents")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return common.WrapError(common.ErrPersistence, "failed to flush documents")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return common.WrapError(common.ErrPersistence, fmt.Sprintf("failed to replace %s", s.path))
	}
	return nil
}
