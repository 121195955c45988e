package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
)

type mockReportRepo struct {
	repository.ReportRepository
	mockLowStockItems func(ctx context.Context) ([]models.InventoryItem, error)
}

func (m *mockReportRepo) LowStockItems(ctx context.Context) ([]models.InventoryItem, error) {
	return m.mockLowStockItems(ctx)
}

type notifEmployeeRepo struct {
	mockEmployeeRepo
	docs []models.EmployeeDocument
}

func (m *notifEmployeeRepo) FindExpiringDocuments(ctx context.Context, before time.Time) ([]models.EmployeeDocument, error) {
	return m.docs, nil
}

type mockRentalRepo struct {
	repository.RentalRepository
	tenants []models.Tenant
}

func (m *mockRentalRepo) FindTenantsEndingBefore(ctx context.Context, before time.Time) ([]models.Tenant, error) {
	return m.tenants, nil
}

func TestNotificationService_List_Severities(t *testing.T) {
	pastExpiry := time.Now().AddDate(0, 0, -2)
	soonExpiry := time.Now().AddDate(0, 0, 10)
	endingSoon := time.Now().AddDate(0, 0, 5)

	reportRepo := &mockReportRepo{
		mockLowStockItems: func(ctx context.Context) ([]models.InventoryItem, error) {
			return []models.InventoryItem{
				{ID: 1, Name: "Gloves", ItemCode: "INV-001", CurrentStock: 3, MinStock: 5, Unit: "box"},
				{ID: 2, Name: "Masks", ItemCode: "INV-002", CurrentStock: 0, MinStock: 10, Unit: "box"},
			}, nil
		},
	}
	employeeRepo := &notifEmployeeRepo{docs: []models.EmployeeDocument{
		{ID: 11, EmployeeID: 1, DocumentType: "work_permit", ExpiryDate: &pastExpiry},
		{ID: 12, EmployeeID: 2, DocumentType: "id_card", ExpiryDate: &soonExpiry},
	}}
	rentalRepo := &mockRentalRepo{tenants: []models.Tenant{
		{ID: 21, Name: "Tigist", ContractEnd: &endingSoon, Property: &models.RentalProperty{Name: "Unit 4"}},
	}}

	service := NewNotificationService(nil, employeeRepo, rentalRepo, reportRepo)

	notifications, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, notifications, 5)

	bySeverity := map[string]int{}
	byType := map[string]int{}
	for _, n := range notifications {
		bySeverity[n.Severity]++
		byType[n.Type]++
	}

	// Zero stock and a past expiry are critical, the rest warnings
	assert.Equal(t, 2, bySeverity[models.SeverityCritical])
	assert.Equal(t, 3, bySeverity[models.SeverityWarning])
	assert.Equal(t, 2, byType[models.NotificationLowStock])
	assert.Equal(t, 2, byType[models.NotificationDocumentExpiry])
	assert.Equal(t, 1, byType[models.NotificationContractExpiry])
}

func TestNotificationService_List_EmptyWhenHealthy(t *testing.T) {
	reportRepo := &mockReportRepo{
		mockLowStockItems: func(ctx context.Context) ([]models.InventoryItem, error) {
			return nil, nil
		},
	}
	service := NewNotificationService(nil, &notifEmployeeRepo{}, &mockRentalRepo{}, reportRepo)

	notifications, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notifications)
}
