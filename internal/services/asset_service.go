package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"gorm.io/gorm"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
	"github.com/tewodrosm/sera-api/internal/storage"
	"github.com/tewodrosm/sera-api/pkg/logger"
)

// AssetService handles asset lifecycle operations
type AssetService struct {
	assetRepo repository.AssetRepository
	storage   *storage.LocalStorage
	auditSvc  *AuditService
}

// NewAssetService creates a new asset service
func NewAssetService(assetRepo repository.AssetRepository, store *storage.LocalStorage, auditSvc *AuditService) *AssetService {
	return &AssetService{
		assetRepo: assetRepo,
		storage:   store,
		auditSvc:  auditSvc,
	}
}

// List returns assets matching the query
func (s *AssetService) List(ctx context.Context, query *repository.ListQuery) ([]models.Asset, int64, error) {
	return s.assetRepo.List(ctx, query)
}

// Get returns a single asset with its documents
func (s *AssetService) Get(ctx context.Context, id uint) (*models.Asset, error) {
	asset, err := s.assetRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return asset, nil
}

// Create registers a new asset and its first history entry
func (s *AssetService) Create(ctx context.Context, asset *models.Asset, actorID uint, actorName, ip string) error {
	if err := s.assetRepo.Create(ctx, asset); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrDuplicate
		}
		return err
	}

	s.addHistory(ctx, asset.ID, models.AssetActionCreated, "Asset registered", actorID)
	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionCreate, "asset", asset.ID,
		fmt.Sprintf("Created asset %s (%s)", asset.Name, asset.AssetCode), ip)
	return nil
}

// Update modifies an asset and appends a history entry
func (s *AssetService) Update(ctx context.Context, id uint, updated *models.Asset, actorID uint, actorName, ip string) (*models.Asset, error) {
	asset, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated.ID = asset.ID
	updated.AssetCode = asset.AssetCode
	updated.CreatedBy = asset.CreatedBy
	updated.CreatedAt = asset.CreatedAt

	if err := s.assetRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	s.addHistory(ctx, id, models.AssetActionUpdated, "Asset details updated", actorID)
	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionUpdate, "asset", id,
		fmt.Sprintf("Updated asset %s", updated.Name), ip)
	return updated, nil
}

// Delete removes an asset, its rows, and its stored files. Files are
// removed first so a filesystem failure aborts before the rows go.
func (s *AssetService) Delete(ctx context.Context, id, actorID uint, actorName, ip string) error {
	asset, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	paths, err := s.assetRepo.ListDocumentPaths(ctx, id)
	if err != nil {
		return err
	}
	for _, p := range paths {
		if err := s.storage.Delete(p); err != nil {
			return fmt.Errorf("failed to delete asset file %s: %w", p, err)
		}
	}

	if err := s.assetRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionDelete, "asset", id,
		fmt.Sprintf("Deleted asset %s (%s)", asset.Name, asset.AssetCode), ip)
	return nil
}

// UploadDocument stores a file for an asset and records it
func (s *AssetService) UploadDocument(ctx context.Context, assetID uint, file multipart.File, header *multipart.FileHeader, docType string, actorID uint, actorName, ip string) (*models.AssetDocument, error) {
	asset, err := s.Get(ctx, assetID)
	if err != nil {
		return nil, err
	}

	path, err := s.storage.Upload(file, header, storage.DirAssets, asset.AssetCode, docType)
	if err != nil {
		return nil, err
	}

	doc := &models.AssetDocument{
		AssetID:      assetID,
		DocumentType: docType,
		FileName:     header.Filename,
		FilePath:     path,
	}
	if err := s.assetRepo.AddDocument(ctx, doc); err != nil {
		// Roll back the stored file so it does not leak.
		if derr := s.storage.Delete(path); derr != nil {
			logger.Error("failed to remove orphaned upload", "path", path, "error", derr)
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionCreate, "asset_document", doc.ID,
		fmt.Sprintf("Uploaded %s for asset %s", docType, asset.AssetCode), ip)
	return doc, nil
}

// GetDocument returns a document row for download
func (s *AssetService) GetDocument(ctx context.Context, assetID, docID uint) (*models.AssetDocument, error) {
	doc, err := s.assetRepo.FindDocument(ctx, assetID, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// DeleteDocument removes a document row and its file
func (s *AssetService) DeleteDocument(ctx context.Context, assetID, docID, actorID uint, actorName, ip string) error {
	doc, err := s.GetDocument(ctx, assetID, docID)
	if err != nil {
		return err
	}

	if doc.FilePath != "" {
		if err := s.storage.Delete(doc.FilePath); err != nil {
			return fmt.Errorf("failed to delete file %s: %w", doc.FilePath, err)
		}
	}
	if err := s.assetRepo.DeleteDocument(ctx, docID); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionDelete, "asset_document", docID,
		fmt.Sprintf("Deleted document %s from asset %d", doc.FileName, assetID), ip)
	return nil
}

// History returns the asset's history entries, newest first
func (s *AssetService) History(ctx context.Context, assetID uint) ([]models.AssetHistory, error) {
	if _, err := s.Get(ctx, assetID); err != nil {
		return nil, err
	}
	return s.assetRepo.ListHistory(ctx, assetID)
}

// FilePath resolves a document's absolute path for serving
func (s *AssetService) FilePath(relative string) string {
	return s.storage.GetFullPath(relative)
}

func (s *AssetService) addHistory(ctx context.Context, assetID uint, action, description string, actorID uint) {
	entry := &models.AssetHistory{
		AssetID:     assetID,
		Action:      action,
		Description: description,
	}
	if actorID != 0 {
		entry.PerformedBy = &actorID
	}
	if err := s.assetRepo.AddHistory(ctx, entry); err != nil {
		logger.Error("failed to write asset history", "asset_id", assetID, "error", err)
	}
}
