package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
)

// InventoryService handles stock items, transactions, and suppliers
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
	auditSvc      *AuditService
}

// NewInventoryService creates a new inventory service
func NewInventoryService(inventoryRepo repository.InventoryRepository, auditSvc *AuditService) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		auditSvc:      auditSvc,
	}
}

// List returns inventory items matching the query
func (s *InventoryService) List(ctx context.Context, query *repository.ListQuery) ([]models.InventoryItem, int64, error) {
	return s.inventoryRepo.List(ctx, query)
}

// Get returns a single inventory item
func (s *InventoryService) Get(ctx context.Context, id uint) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// Create registers a new inventory item. An opening stock level is
// recorded as an initial "in" transaction rather than a raw column
// write, so the transaction log explains the balance from day one.
func (s *InventoryService) Create(ctx context.Context, item *models.InventoryItem, actorID uint, actorName, ip string) error {
	openingStock := item.CurrentStock
	item.CurrentStock = 0

	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrDuplicate
		}
		return err
	}

	if openingStock > 0 {
		txn := &models.InventoryTransaction{
			ItemID:          item.ID,
			TransactionType: models.TransactionIn,
			Quantity:        openingStock,
			Notes:           "Opening stock",
		}
		if actorID != 0 {
			txn.PerformedBy = &actorID
		}
		updated, err := s.inventoryRepo.ApplyTransaction(ctx, txn)
		if err != nil {
			return err
		}
		item.CurrentStock = updated.CurrentStock
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionCreate, "inventory", item.ID,
		fmt.Sprintf("Created inventory item %s (%s)", item.Name, item.ItemCode), ip)
	return nil
}

// Update modifies item metadata. Stock is deliberately not updatable
// here; it only moves through transactions.
func (s *InventoryService) Update(ctx context.Context, id uint, updated *models.InventoryItem, actorID uint, actorName, ip string) (*models.InventoryItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated.ID = item.ID
	updated.ItemCode = item.ItemCode
	updated.CurrentStock = item.CurrentStock
	updated.CreatedAt = item.CreatedAt

	if err := s.inventoryRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionUpdate, "inventory", id,
		fmt.Sprintf("Updated inventory item %s", updated.Name), ip)
	return updated, nil
}

// Delete removes an item and its transaction history
func (s *InventoryService) Delete(ctx context.Context, id, actorID uint, actorName, ip string) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.inventoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionDelete, "inventory", id,
		fmt.Sprintf("Deleted inventory item %s (%s)", item.Name, item.ItemCode), ip)
	return nil
}

// TransactionInput holds the fields for a stock movement
type TransactionInput struct {
	// Quantity carries no "required" binding tag: zero is a valid value
	// for an adjustment, and the service validates the rest.
	TransactionType string `json:"transaction_type" binding:"required"`
	Quantity        int    `json:"quantity"`
	ReferenceNo     string `json:"reference_no"`
	Notes           string `json:"notes"`
}

// RecordTransaction applies a stock movement. "in" adds, "out" subtracts
// and is rejected if it would go negative, "adjustment" sets the level.
func (s *InventoryService) RecordTransaction(ctx context.Context, itemID uint, input TransactionInput, actorID uint, actorName, ip string) (*models.InventoryItem, *models.InventoryTransaction, error) {
	if !models.IsValidTransactionType(input.TransactionType) {
		return nil, nil, fmt.Errorf("%w: unknown transaction type %q", ErrValidation, input.TransactionType)
	}
	if input.Quantity < 0 || (input.Quantity == 0 && input.TransactionType != models.TransactionAdjustment) {
		return nil, nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	if _, err := s.Get(ctx, itemID); err != nil {
		return nil, nil, err
	}

	txn := &models.InventoryTransaction{
		ItemID:          itemID,
		TransactionType: input.TransactionType,
		Quantity:        input.Quantity,
		ReferenceNo:     input.ReferenceNo,
		Notes:           input.Notes,
	}
	if actorID != 0 {
		txn.PerformedBy = &actorID
	}

	item, err := s.inventoryRepo.ApplyTransaction(ctx, txn)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, nil, ErrInsufficientStock
		}
		return nil, nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionCreate, "inventory_transaction", txn.ID,
		fmt.Sprintf("Stock %s of %d for item %s", input.TransactionType, input.Quantity, item.ItemCode), ip)
	return item, txn, nil
}

// ListTransactions returns the movement history of an item
func (s *InventoryService) ListTransactions(ctx context.Context, itemID uint, query *repository.ListQuery) ([]models.InventoryTransaction, int64, error) {
	if _, err := s.Get(ctx, itemID); err != nil {
		return nil, 0, err
	}
	return s.inventoryRepo.ListTransactions(ctx, itemID, query)
}

// --- Suppliers ---

// ListSuppliers returns suppliers matching the query
func (s *InventoryService) ListSuppliers(ctx context.Context, query *repository.ListQuery) ([]models.Supplier, int64, error) {
	return s.inventoryRepo.ListSuppliers(ctx, query)
}

// GetSupplier returns a single supplier
func (s *InventoryService) GetSupplier(ctx context.Context, id uint) (*models.Supplier, error) {
	supplier, err := s.inventoryRepo.FindSupplier(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return supplier, nil
}

// CreateSupplier registers a new supplier
func (s *InventoryService) CreateSupplier(ctx context.Context, supplier *models.Supplier, actorID uint, actorName, ip string) error {
	if err := s.inventoryRepo.CreateSupplier(ctx, supplier); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionCreate, "supplier", supplier.ID,
		fmt.Sprintf("Created supplier %s", supplier.Name), ip)
	return nil
}

// UpdateSupplier modifies a supplier
func (s *InventoryService) UpdateSupplier(ctx context.Context, id uint, updated *models.Supplier, actorID uint, actorName, ip string) (*models.Supplier, error) {
	supplier, err := s.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	updated.ID = supplier.ID
	updated.CreatedAt = supplier.CreatedAt

	if err := s.inventoryRepo.UpdateSupplier(ctx, updated); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionUpdate, "supplier", id,
		fmt.Sprintf("Updated supplier %s", updated.Name), ip)
	return updated, nil
}

// DeleteSupplier removes a supplier
func (s *InventoryService) DeleteSupplier(ctx context.Context, id, actorID uint, actorName, ip string) error {
	supplier, err := s.GetSupplier(ctx, id)
	if err != nil {
		return err
	}
	if err := s.inventoryRepo.DeleteSupplier(ctx, id); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionDelete, "supplier", id,
		fmt.Sprintf("Deleted supplier %s", supplier.Name), ip)
	return nil
}
