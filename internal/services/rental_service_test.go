package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tewodrosm/sera-api/internal/models"
)

type rentalServiceRepo struct {
	mockRentalRepo
	mockFindProperty   func(ctx context.Context, id uint) (*models.RentalProperty, error)
	mockFindTenant     func(ctx context.Context, id uint) (*models.Tenant, error)
	mockDeleteTenant   func(ctx context.Context, id uint) error
	mockUpdateProperty func(ctx context.Context, property *models.RentalProperty) error
	mockCreateTenant   func(ctx context.Context, tenant *models.Tenant) error
}

func (m *rentalServiceRepo) FindProperty(ctx context.Context, id uint) (*models.RentalProperty, error) {
	return m.mockFindProperty(ctx, id)
}

func (m *rentalServiceRepo) FindTenant(ctx context.Context, id uint) (*models.Tenant, error) {
	return m.mockFindTenant(ctx, id)
}

func (m *rentalServiceRepo) DeleteTenant(ctx context.Context, id uint) error {
	return m.mockDeleteTenant(ctx, id)
}

func (m *rentalServiceRepo) UpdateProperty(ctx context.Context, property *models.RentalProperty) error {
	return m.mockUpdateProperty(ctx, property)
}

func (m *rentalServiceRepo) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	return m.mockCreateTenant(ctx, tenant)
}

func TestRentalService_CreateTenant_UnknownProperty(t *testing.T) {
	mockRepo := &rentalServiceRepo{}
	service := NewRentalService(mockRepo, stubAudit())

	mockRepo.mockFindProperty = func(ctx context.Context, id uint) (*models.RentalProperty, error) {
		return nil, gorm.ErrRecordNotFound
	}

	err := service.CreateTenant(context.Background(), &models.Tenant{PropertyID: 42, Name: "Tigist"}, 1, "admin", "127.0.0.1")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRentalService_DeleteTenant_RevertsPropertyToAvailable(t *testing.T) {
	mockRepo := &rentalServiceRepo{}
	service := NewRentalService(mockRepo, stubAudit())

	mockRepo.mockFindTenant = func(ctx context.Context, id uint) (*models.Tenant, error) {
		return &models.Tenant{ID: id, PropertyID: 7, Name: "Tigist"}, nil
	}
	mockRepo.mockDeleteTenant = func(ctx context.Context, id uint) error { return nil }
	mockRepo.mockFindProperty = func(ctx context.Context, id uint) (*models.RentalProperty, error) {
		// No remaining active tenants after the delete
		return &models.RentalProperty{ID: id, Status: models.PropertyRented}, nil
	}
	var savedProperty *models.RentalProperty
	mockRepo.mockUpdateProperty = func(ctx context.Context, property *models.RentalProperty) error {
		savedProperty = property
		return nil
	}

	err := service.DeleteTenant(context.Background(), 3, 1, "admin", "127.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, savedProperty)
	assert.Equal(t, models.PropertyAvailable, savedProperty.Status)
}

func TestRentalService_DeleteTenant_KeepsRentedWhileOccupied(t *testing.T) {
	mockRepo := &rentalServiceRepo{}
	service := NewRentalService(mockRepo, stubAudit())

	mockRepo.mockFindTenant = func(ctx context.Context, id uint) (*models.Tenant, error) {
		return &models.Tenant{ID: id, PropertyID: 7, Name: "Tigist"}, nil
	}
	mockRepo.mockDeleteTenant = func(ctx context.Context, id uint) error { return nil }
	mockRepo.mockFindProperty = func(ctx context.Context, id uint) (*models.RentalProperty, error) {
		return &models.RentalProperty{
			ID:     id,
			Status: models.PropertyRented,
			Tenants: []models.Tenant{
				{ID: 9, Status: models.StatusActive},
			},
		}, nil
	}
	mockRepo.mockUpdateProperty = func(ctx context.Context, property *models.RentalProperty) error {
		t.Fatal("property status should not change while another active tenant remains")
		return nil
	}

	err := service.DeleteTenant(context.Background(), 3, 1, "admin", "127.0.0.1")
	assert.NoError(t, err)
}
