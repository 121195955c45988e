package storage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeName(t *testing.T) {
	assert.Equal(t, "abebe_kebede", SafeName("Abebe Kebede"))
	assert.Equal(t, "abebe_kebede", SafeName("  Abebe  Kebede!  "))
	assert.Equal(t, "id-card", SafeName("ID-Card"))
	assert.Equal(t, "a_b", SafeName("a/../b"))
	assert.Equal(t, "", SafeName("???"))
}

type stubFile struct {
	*bytes.Reader
}

func (stubFile) Close() error { return nil }

func upload(t *testing.T, store *LocalStorage, filename, subDir string, parts ...string) string {
	t.Helper()
	file := stubFile{bytes.NewReader([]byte("content"))}
	header := &multipart.FileHeader{Filename: filename}
	path, err := store.Upload(file, header, subDir, parts...)
	require.NoError(t, err)
	return path
}

func TestLocalStorage_UploadDeterministicName(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	path := upload(t, store, "scan.PDF", DirEmployees, "Abebe Kebede", "ID Card")
	assert.Equal(t, "employees/abebe_kebede_id_card.pdf", path)
	assert.True(t, store.Exists(path))
}

func TestLocalStorage_UploadCollisionSuffix(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	first := upload(t, store, "scan.pdf", DirAssets, "Laptop", "receipt")
	second := upload(t, store, "scan.pdf", DirAssets, "Laptop", "receipt")
	third := upload(t, store, "scan.pdf", DirAssets, "Laptop", "receipt")

	assert.Equal(t, "assets/laptop_receipt.pdf", first)
	assert.Equal(t, "assets/laptop_receipt_1.pdf", second)
	assert.Equal(t, "assets/laptop_receipt_2.pdf", third)
}

func TestLocalStorage_UploadFallsBackToOriginalName(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	path := upload(t, store, "Photo 1.png", DirGeneral)
	assert.Equal(t, "general/photo_1.png", path)
}

func TestLocalStorage_DeleteMissingFileIsNotAnError(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete("employees/never_uploaded.pdf"))
}

func TestLocalStorage_DeleteRemovesFile(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalStorage(base)
	require.NoError(t, err)

	path := upload(t, store, "scan.pdf", DirGuarantors, "someone", "id")
	require.NoError(t, store.Delete(path))

	_, statErr := os.Stat(filepath.Join(base, path))
	assert.True(t, os.IsNotExist(statErr))
	assert.False(t, store.Exists(path))
}

func TestNewLocalStorage_CreatesSubdirectories(t *testing.T) {
	base := t.TempDir()
	_, err := NewLocalStorage(base)
	require.NoError(t, err)

	for _, dir := range []string{DirAssets, DirEmployees, DirGuarantors, DirGeneral, DirTemp} {
		info, err := os.Stat(filepath.Join(base, dir))
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir())
	}
}

func TestIsValidContentType(t *testing.T) {
	assert.True(t, IsValidContentType("application/pdf"))
	assert.True(t, IsValidContentType("image/png"))
	assert.False(t, IsValidContentType("application/zip"))
	assert.False(t, IsValidContentType("text/html"))
}
