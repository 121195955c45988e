package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tewodrosm/sera-api/internal/models"
)

// ErrInsufficientStock is returned when an "out" transaction would push
// an item's stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// InventoryRepository defines the interface for inventory data access
type InventoryRepository interface {
	FindByID(ctx context.Context, id uint) (*models.InventoryItem, error)
	Create(ctx context.Context, item *models.InventoryItem) error
	Update(ctx context.Context, item *models.InventoryItem) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.InventoryItem, int64, error)

	ApplyTransaction(ctx context.Context, txn *models.InventoryTransaction) (*models.InventoryItem, error)
	ListTransactions(ctx context.Context, itemID uint, query *ListQuery) ([]models.InventoryTransaction, int64, error)

	FindSupplier(ctx context.Context, id uint) (*models.Supplier, error)
	CreateSupplier(ctx context.Context, supplier *models.Supplier) error
	UpdateSupplier(ctx context.Context, supplier *models.Supplier) error
	DeleteSupplier(ctx context.Context, id uint) error
	ListSuppliers(ctx context.Context, query *ListQuery) ([]models.Supplier, int64, error)
}

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) FindByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *inventoryRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *inventoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Select("Transactions").Delete(&models.InventoryItem{ID: id}).Error
}

func (r *inventoryRepository) List(ctx context.Context, query *ListQuery) ([]models.InventoryItem, int64, error) {
	var items []models.InventoryItem
	var total int64

	db := r.db.WithContext(ctx).Model(&models.InventoryItem{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR item_code ILIKE ?", search, search)
	}
	if query.Filters["category"] != "" {
		db = db.Where("category = ?", query.Filters["category"])
	}
	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}
	// low_stock filter compares the two stock columns directly in SQL
	if query.Filters["low_stock"] == "true" {
		db = db.Where("current_stock <= min_stock")
	}

	db.Count(&total)
	db = applySortAndPage(db, query, "name ASC")

	err := db.Find(&items).Error
	return items, total, err
}

// ApplyTransaction records a stock movement and updates current_stock
// atomically. The item row is locked for the duration of the transaction
// so concurrent movements serialize instead of racing.
func (r *inventoryRepository) ApplyTransaction(ctx context.Context, txn *models.InventoryTransaction) (*models.InventoryItem, error) {
	var item models.InventoryItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&item, txn.ItemID).Error; err != nil {
			return err
		}

		newStock := item.CurrentStock
		switch txn.TransactionType {
		case models.TransactionIn:
			newStock += txn.Quantity
		case models.TransactionOut:
			newStock -= txn.Quantity
			if newStock < 0 {
				return ErrInsufficientStock
			}
		case models.TransactionAdjustment:
			// adjustment sets the absolute level
			newStock = txn.Quantity
		}

		if err := tx.Create(txn).Error; err != nil {
			return err
		}

		item.CurrentStock = newStock
		return tx.Model(&item).Update("current_stock", newStock).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) ListTransactions(ctx context.Context, itemID uint, query *ListQuery) ([]models.InventoryTransaction, int64, error) {
	var txns []models.InventoryTransaction
	var total int64

	db := r.db.WithContext(ctx).
		Model(&models.InventoryTransaction{}).
		Where("item_id = ?", itemID)

	if query.Filters["transaction_type"] != "" {
		db = db.Where("transaction_type = ?", query.Filters["transaction_type"])
	}

	db.Count(&total)
	db = applySortAndPage(db, query, "transaction_date DESC")

	err := db.Find(&txns).Error
	return txns, total, err
}

func (r *inventoryRepository) FindSupplier(ctx context.Context, id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *inventoryRepository) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *inventoryRepository) UpdateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

func (r *inventoryRepository) DeleteSupplier(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Supplier{}, id).Error
}

func (r *inventoryRepository) ListSuppliers(ctx context.Context, query *ListQuery) ([]models.Supplier, int64, error) {
	var suppliers []models.Supplier
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Supplier{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR contact_person ILIKE ?", search, search)
	}
	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}

	db.Count(&total)
	db = applySortAndPage(db, query, "name ASC")

	err := db.Find(&suppliers).Error
	return suppliers, total, err
}
