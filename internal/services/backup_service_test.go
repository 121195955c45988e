package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
	"github.com/tewodrosm/sera-api/internal/storage"
)

type mockBackupRepo struct {
	repository.BackupRepository
	mockDumpTables func(ctx context.Context) ([]repository.TableDump, error)
}

func (m *mockBackupRepo) DumpTables(ctx context.Context) ([]repository.TableDump, error) {
	return m.mockDumpTables(ctx)
}

func TestBackupService_Build(t *testing.T) {
	base := t.TempDir()
	store, err := storage.NewLocalStorage(base)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(base, storage.DirEmployees, "abebe_id.pdf"), []byte("doc"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(base, storage.DirAssets, "laptop.pdf"), []byte("receipt"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(base, storage.DirTemp, "scratch.tmp"), []byte("scratch"), 0644))

	mockRepo := &mockBackupRepo{
		mockDumpTables: func(ctx context.Context) ([]repository.TableDump, error) {
			return []repository.TableDump{
				{Name: "users", Rows: &[]models.User{{ID: 1, Username: "admin"}}},
				{Name: "employees", Rows: &[]models.Employee{}},
			}, nil
		},
	}
	service := NewBackupService(mockRepo, store, stubAudit())

	var buf bytes.Buffer
	filename, err := service.Build(context.Background(), &buf, 1, "admin", "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "backup_"))
	assert.True(t, strings.HasSuffix(filename, ".zip"))

	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	names := make(map[string]bool, len(reader.File))
	for _, f := range reader.File {
		names[f.Name] = true
	}

	assert.True(t, names["data/users.json"])
	assert.True(t, names["data/employees.json"])
	assert.True(t, names["uploads/employees/abebe_id.pdf"])
	assert.True(t, names["uploads/assets/laptop.pdf"])
	assert.True(t, names["manifest.json"])
	// Temp scratch files stay out of the archive
	assert.False(t, names["uploads/temp/scratch.tmp"])

	uf, err := reader.Open("data/users.json")
	require.NoError(t, err)
	defer uf.Close()

	var users []models.User
	require.NoError(t, json.NewDecoder(uf).Decode(&users))
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)

	mf, err := reader.Open("manifest.json")
	require.NoError(t, err)
	defer mf.Close()

	var manifest struct {
		BackupID   string `json:"backup_id"`
		CreatedBy  string `json:"created_by"`
		TableCount int    `json:"table_count"`
		FileCount  int    `json:"file_count"`
		TotalSize  int64  `json:"total_size_bytes"`
	}
	require.NoError(t, json.NewDecoder(mf).Decode(&manifest))
	assert.NotEmpty(t, manifest.BackupID)
	assert.Equal(t, "admin", manifest.CreatedBy)
	assert.Equal(t, 2, manifest.TableCount)
	assert.Equal(t, 2, manifest.FileCount)
	assert.Equal(t, int64(len("doc")+len("receipt")), manifest.TotalSize)
}
