package jobs

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/tewodrosm/sera-api/pkg/logger"
)

// CleanupTempFiles returns a job that removes files older than maxAge
// from the temp upload directory. Abandoned multipart uploads end up
// there; nothing references them after the request finishes.
func CleanupTempFiles(tempDir string, maxAge time.Duration) Job {
	return func(ctx context.Context) error {
		cutoff := time.Now().Add(-maxAge)
		entries, err := os.ReadDir(tempDir)
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
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if info.ModTime().Before(cutoff) {
				if err := os.Remove(filepath.Join(tempDir, entry.Name())); err == nil {
					removed++
				}
			}
		}

		if removed > 0 {
			logger.Info("Removed stale temp uploads", "count", removed)
		}
		return nil
	}
}
