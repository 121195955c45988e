package services

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
	"github.com/tewodrosm/sera-api/internal/storage"
)

// BackupService streams a zip archive holding a JSON export of every
// table, the uploaded-files tree, and a manifest describing the run.
type BackupService struct {
	backupRepo repository.BackupRepository
	storage    *storage.LocalStorage
	auditSvc   *AuditService
}

// NewBackupService creates a new backup service
func NewBackupService(backupRepo repository.BackupRepository, store *storage.LocalStorage, auditSvc *AuditService) *BackupService {
	return &BackupService{
		backupRepo: backupRepo,
		storage:    store,
		auditSvc:   auditSvc,
	}
}

type backupManifest struct {
	BackupID   string    `json:"backup_id"`
	CreatedAt  time.Time `json:"created_at"`
	CreatedBy  string    `json:"created_by"`
	TableCount int       `json:"table_count"`
	FileCount  int       `json:"file_count"`
	TotalSize  int64     `json:"total_size_bytes"`
}

// Build writes the archive to w and returns the suggested filename.
// Temp files are left out; they are working scratch, not data.
func (s *BackupService) Build(ctx context.Context, w io.Writer, actorID uint, actorName, ip string) (string, error) {
	zw := zip.NewWriter(w)

	manifest := backupManifest{
		BackupID:  uuid.NewString(),
		CreatedAt: time.Now(),
		CreatedBy: actorName,
	}

	dumps, err := s.backupRepo.DumpTables(ctx)
	if err != nil {
		zw.Close()
		return "", err
	}
	for _, dump := range dumps {
		entry, err := zw.Create("data/" + dump.Name + ".json")
		if err != nil {
			zw.Close()
			return "", err
		}
		if err := json.NewEncoder(entry).Encode(dump.Rows); err != nil {
			zw.Close()
			return "", err
		}
		manifest.TableCount++
	}

	base := s.storage.BasePath()
	err = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, storage.DirTemp+"/") {
			return nil
		}

		entry, err := zw.Create("uploads/" + rel)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		n, err := io.Copy(entry, f)
		f.Close()
		if err != nil {
			return err
		}

		manifest.FileCount++
		manifest.TotalSize += n
		return nil
	})
	if err != nil {
		zw.Close()
		return "", err
	}

	entry, err := zw.Create("manifest.json")
	if err != nil {
		zw.Close()
		return "", err
	}
	if err := json.NewEncoder(entry).Encode(manifest); err != nil {
		zw.Close()
		return "", err
	}

	if err := zw.Close(); err != nil {
		return "", err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionBackup, "backup", 0,
		fmt.Sprintf("Backup %s with %d tables and %d files", manifest.BackupID, manifest.TableCount, manifest.FileCount), ip)

	filename := fmt.Sprintf("backup_%s.zip", time.Now().Format("2006-01-02_150405"))
	return filename, nil
}
