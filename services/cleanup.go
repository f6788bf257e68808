package services

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"legalease-platform/internal/logger"
	"legalease-platform/internal/store"
)

// CleanupService periodically sweeps the upload directory and deletes files
// no stored record references. Failed pipeline runs delete their own file,
// but a crash between saving an upload and finishing analysis can leave
// orphans behind.
type CleanupService struct {
	uploadDir string
	repo      store.Repository
	interval  time.Duration
	minAge    time.Duration
	stopChan  chan struct{}
}

func NewCleanupService(uploadDir string, repo store.Repository, interval time.Duration) *CleanupService {
	return &CleanupService{
		uploadDir: uploadDir,
		repo:      repo,
		interval:  interval,
		minAge:    30 * time.Minute,
		stopChan:  make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called. Run it on its own
// goroutine.
func (c *CleanupService) Start() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	logger.Info("starting upload-dir cleanup service", "dir", c.uploadDir, "interval", c.interval.String())

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			if err := c.Sweep(ctx); err != nil {
				logger.Error("cleanup sweep failed", "error", err)
			}
			cancel()

		case <-c.stopChan:
			logger.Info("stopping upload-dir cleanup service")
			return
		}
	}
}

func (c *CleanupService) Stop() {
	close(c.stopChan)
}

// Sweep deletes unreferenced files older than minAge. Young files are left
// alone: they may belong to an upload still in flight.
func (c *CleanupService) Sweep(ctx context.Context) error {
	records, err := c.repo.List(ctx)
	if err != nil {
		return err
	}

	referenced := make(map[string]bool, len(records))
	for _, r := range records {
		abs, err := filepath.Abs(r.FileReference)
		if err != nil {
			continue
		}
		referenced[abs] = true
	}

	entries, err := os.ReadDir(c.uploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(c.uploadDir, entry.Name())
		abs, err := filepath.Abs(path)
		if err != nil || referenced[abs] {
			continue
		}
		info, err := entry.Info()
		if err != nil || time.Since(info.ModTime()) < c.minAge {
			continue
		}
		if err := os.Remove(path); err != nil {
			logger.Warn("failed to remove orphaned upload", "path", path, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		logger.Info("cleanup sweep removed orphaned uploads", "count", removed)
	}
	return nil
}
