package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tewodrosm/sera-api/internal/models"
)

// AssetRepository defines the interface for asset data access
type AssetRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Asset, error)
	Create(ctx context.Context, asset *models.Asset) error
	Update(ctx context.Context, asset *models.Asset) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Asset, int64, error)

	AddDocument(ctx context.Context, doc *models.AssetDocument) error
	FindDocument(ctx context.Context, assetID, docID uint) (*models.AssetDocument, error)
	DeleteDocument(ctx context.Context, docID uint) error
	ListDocumentPaths(ctx context.Context, assetID uint) ([]string, error)

	AddHistory(ctx context.Context, entry *models.AssetHistory) error
	ListHistory(ctx context.Context, assetID uint) ([]models.AssetHistory, error)
}

type assetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) FindByID(ctx context.Context, id uint) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).
		Preload("Documents").
		Preload("AssignedEmployee").
		First(&asset, id).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) Create(ctx context.Context, asset *models.Asset) error {
	if err := r.db.WithContext(ctx).Create(asset).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *assetRepository) Update(ctx context.Context, asset *models.Asset) error {
	if err := r.db.WithContext(ctx).Save(asset).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *assetRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Select("Documents", "History").Delete(&models.Asset{ID: id}).Error
}

func (r *assetRepository) List(ctx context.Context, query *ListQuery) ([]models.Asset, int64, error) {
	var assets []models.Asset
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Asset{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR asset_code ILIKE ? OR location ILIKE ?",
			search, search, search)
	}
	if query.Filters["category"] != "" {
		db = db.Where("category = ?", query.Filters["category"])
	}
	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}
	if query.Filters["department"] != "" {
		db = db.Where("department = ?", query.Filters["department"])
	}

	db.Count(&total)
	db = applySortAndPage(db, query, "created_at DESC")

	err := db.Preload("AssignedEmployee").Find(&assets).Error
	return assets, total, err
}

func (r *assetRepository) AddDocument(ctx context.Context, doc *models.AssetDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *assetRepository) FindDocument(ctx context.Context, assetID, docID uint) (*models.AssetDocument, error) {
	var doc models.AssetDocument
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		First(&doc, docID).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *assetRepository) DeleteDocument(ctx context.Context, docID uint) error {
	return r.db.WithContext(ctx).Delete(&models.AssetDocument{}, docID).Error
}

func (r *assetRepository) ListDocumentPaths(ctx context.Context, assetID uint) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).
		Model(&models.AssetDocument{}).
		Where("asset_id = ?", assetID).
		Pluck("file_path", &paths).Error
	return paths, err
}

func (r *assetRepository) AddHistory(ctx context.Context, entry *models.AssetHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *assetRepository) ListHistory(ctx context.Context, assetID uint) ([]models.AssetHistory, error) {
	var history []models.AssetHistory
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("performed_at DESC").
		Find(&history).Error
	return history, err
}
