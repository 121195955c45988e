package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
)

type mockInventoryRepo struct {
	repository.InventoryRepository
	mockFindByID         func(ctx context.Context, id uint) (*models.InventoryItem, error)
	mockCreate           func(ctx context.Context, item *models.InventoryItem) error
	mockApplyTransaction func(ctx context.Context, txn *models.InventoryTransaction) (*models.InventoryItem, error)
}

func (m *mockInventoryRepo) FindByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockInventoryRepo) Create(ctx context.Context, item *models.InventoryItem) error {
	return m.mockCreate(ctx, item)
}

func (m *mockInventoryRepo) ApplyTransaction(ctx context.Context, txn *models.InventoryTransaction) (*models.InventoryItem, error) {
	return m.mockApplyTransaction(ctx, txn)
}

func TestInventoryService_Create_RecordsOpeningStock(t *testing.T) {
	mockRepo := &mockInventoryRepo{}
	service := NewInventoryService(mockRepo, stubAudit())

	var applied *models.InventoryTransaction
	mockRepo.mockCreate = func(ctx context.Context, item *models.InventoryItem) error {
		// Stock must not be written directly
		assert.Equal(t, 0, item.CurrentStock)
		item.ID = 4
		return nil
	}
	mockRepo.mockApplyTransaction = func(ctx context.Context, txn *models.InventoryTransaction) (*models.InventoryItem, error) {
		applied = txn
		return &models.InventoryItem{ID: txn.ItemID, CurrentStock: txn.Quantity}, nil
	}

	item := &models.InventoryItem{ItemCode: "INV-001", Name: "Gloves", CurrentStock: 50}
	err := service.Create(context.Background(), item, 1, "admin", "127.0.0.1")

	assert.NoError(t, err)
	assert.NotNil(t, applied)
	assert.Equal(t, models.TransactionIn, applied.TransactionType)
	assert.Equal(t, 50, applied.Quantity)
	assert.Equal(t, "Opening stock", applied.Notes)
	assert.Equal(t, 50, item.CurrentStock)
}

func TestInventoryService_Create_ZeroStockSkipsTransaction(t *testing.T) {
	mockRepo := &mockInventoryRepo{}
	service := NewInventoryService(mockRepo, stubAudit())

	mockRepo.mockCreate = func(ctx context.Context, item *models.InventoryItem) error {
		item.ID = 4
		return nil
	}
	mockRepo.mockApplyTransaction = func(ctx context.Context, txn *models.InventoryTransaction) (*models.InventoryItem, error) {
		t.Fatal("no transaction expected for zero opening stock")
		return nil, nil
	}

	err := service.Create(context.Background(), &models.InventoryItem{ItemCode: "INV-002"}, 1, "admin", "127.0.0.1")
	assert.NoError(t, err)
}

func TestInventoryService_RecordTransaction_UnknownType(t *testing.T) {
	service := NewInventoryService(&mockInventoryRepo{}, stubAudit())

	_, _, err := service.RecordTransaction(context.Background(), 1, TransactionInput{
		TransactionType: "transfer",
		Quantity:        5,
	}, 1, "admin", "127.0.0.1")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInventoryService_RecordTransaction_QuantityRules(t *testing.T) {
	service := NewInventoryService(&mockInventoryRepo{}, stubAudit())

	// Zero quantity is invalid for in/out
	_, _, err := service.RecordTransaction(context.Background(), 1, TransactionInput{
		TransactionType: models.TransactionIn,
		Quantity:        0,
	}, 1, "admin", "127.0.0.1")
	assert.ErrorIs(t, err, ErrValidation)

	// Negative quantity is always invalid
	_, _, err = service.RecordTransaction(context.Background(), 1, TransactionInput{
		TransactionType: models.TransactionAdjustment,
		Quantity:        -3,
	}, 1, "admin", "127.0.0.1")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInventoryService_RecordTransaction_AdjustmentToZero(t *testing.T) {
	mockRepo := &mockInventoryRepo{}
	service := NewInventoryService(mockRepo, stubAudit())

	mockRepo.mockFindByID = func(ctx context.Context, id uint) (*models.InventoryItem, error) {
		return &models.InventoryItem{ID: id, ItemCode: "INV-001", CurrentStock: 12}, nil
	}
	mockRepo.mockApplyTransaction = func(ctx context.Context, txn *models.InventoryTransaction) (*models.InventoryItem, error) {
		return &models.InventoryItem{ID: txn.ItemID, ItemCode: "INV-001", CurrentStock: txn.Quantity}, nil
	}

	item, txn, err := service.RecordTransaction(context.Background(), 1, TransactionInput{
		TransactionType: models.TransactionAdjustment,
		Quantity:        0,
	}, 1, "admin", "127.0.0.1")

	assert.NoError(t, err)
	assert.Equal(t, 0, item.CurrentStock)
	assert.Equal(t, models.TransactionAdjustment, txn.TransactionType)
}

func TestInventoryService_RecordTransaction_InsufficientStock(t *testing.T) {
	mockRepo := &mockInventoryRepo{}
	service := NewInventoryService(mockRepo, stubAudit())

	mockRepo.mockFindByID = func(ctx context.Context, id uint) (*models.InventoryItem, error) {
		return &models.InventoryItem{ID: id, ItemCode: "INV-001", CurrentStock: 2}, nil
	}
	mockRepo.mockApplyTransaction = func(ctx context.Context, txn *models.InventoryTransaction) (*models.InventoryItem, error) {
		return nil, repository.ErrInsufficientStock
	}

	_, _, err := service.RecordTransaction(context.Background(), 1, TransactionInput{
		TransactionType: models.TransactionOut,
		Quantity:        5,
	}, 1, "admin", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInsufficientStock)
}
