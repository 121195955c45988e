package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Entity subdirectories under the storage root. Every upload lands in
// exactly one of these.
const (
	DirAssets     = "assets"
	DirEmployees  = "employees"
	DirGuarantors = "guarantors"
	DirGeneral    = "general"
	DirTemp       = "temp"
)

// LocalStorage handles file storage on the local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	for _, dir := range []string{DirAssets, DirEmployees, DirGuarantors, DirGeneral, DirTemp} {
		if err := os.MkdirAll(filepath.Join(basePath, dir), 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}
	return &LocalStorage{basePath: basePath}, nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// SafeName lowercases s and replaces everything outside [a-z0-9_-]
// with underscores, so human names become stable filename parts.
func SafeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = unsafeChars.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// Upload saves a file under subDir with a deterministic name built from
// the given parts (e.g. employee name + document type) plus the original
// extension. On collision a numeric suffix is appended: name.ext,
// name_1.ext, name_2.ext. Creation uses O_EXCL so two concurrent uploads
// can never claim the same path.
func (s *LocalStorage) Upload(file multipart.File, header *multipart.FileHeader, subDir string, nameParts ...string) (string, error) {
	dir := filepath.Join(s.basePath, subDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	parts := make([]string, 0, len(nameParts))
	for _, p := range nameParts {
		if safe := SafeName(p); safe != "" {
			parts = append(parts, safe)
		}
	}
	base := strings.Join(parts, "_")
	if base == "" {
		base = SafeName(strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)))
	}
	if base == "" {
		base = "file"
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))

	var dst *os.File
	var filePath string
	for n := 0; ; n++ {
		name := base + ext
		if n > 0 {
			name = fmt.Sprintf("%s_%d%s", base, n, ext)
		}
		filePath = filepath.Join(dir, name)

		f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			dst = f
			break
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("failed to create file: %w", err)
		}
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		// Clean up on failure
		os.Remove(filePath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	relPath, _ := filepath.Rel(s.basePath, filePath)
	return filepath.ToSlash(relPath), nil
}

// Download returns a file for reading
func (s *LocalStorage) Download(relativePath string) (*os.File, error) {
	return os.Open(filepath.Join(s.basePath, filepath.FromSlash(relativePath)))
}

// Delete removes a file. A file that is already gone is not an error;
// the database row is the authority and the cleanup should not fail a
// cascade over a missing blob.
func (s *LocalStorage) Delete(relativePath string) error {
	err := os.Remove(filepath.Join(s.basePath, filepath.FromSlash(relativePath)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Exists checks if a file exists
func (s *LocalStorage) Exists(relativePath string) bool {
	_, err := os.Stat(filepath.Join(s.basePath, filepath.FromSlash(relativePath)))
	return err == nil
}

// GetFullPath returns the absolute path for serving files
func (s *LocalStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.basePath, filepath.FromSlash(relativePath))
}

// BasePath returns the storage root, used by the backup builder.
func (s *LocalStorage) BasePath() string {
	return s.basePath
}

// ValidContentTypes returns allowed MIME types for uploads
func ValidContentTypes() map[string]bool {
	return map[string]bool{
		"application/pdf": true,
		"image/jpeg":      true,
		"image/jpg":       true,
		"image/png":       true,
	}
}

// MaxFileSize returns the maximum allowed file size (10MB)
func MaxFileSize() int64 {
	return 10 * 1024 * 1024 // 10 MB
}

// IsValidContentType checks if the content type is allowed
func IsValidContentType(contentType string) bool {
	return ValidContentTypes()[contentType]
}
