package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tewodrosm/sera-api/internal/models"
)

// RentalRepository defines the interface for rental data access
type RentalRepository interface {
	FindProperty(ctx context.Context, id uint) (*models.RentalProperty, error)
	CreateProperty(ctx context.Context, property *models.RentalProperty) error
	UpdateProperty(ctx context.Context, property *models.RentalProperty) error
	DeleteProperty(ctx context.Context, id uint) error
	ListProperties(ctx context.Context, query *ListQuery) ([]models.RentalProperty, int64, error)

	FindTenant(ctx context.Context, id uint) (*models.Tenant, error)
	CreateTenant(ctx context.Context, tenant *models.Tenant) error
	UpdateTenant(ctx context.Context, tenant *models.Tenant) error
	DeleteTenant(ctx context.Context, id uint) error
	ListTenants(ctx context.Context, query *ListQuery) ([]models.Tenant, int64, error)
	FindTenantsEndingBefore(ctx context.Context, before time.Time) ([]models.Tenant, error)

	CreatePayment(ctx context.Context, payment *models.RentPayment) error
	ListPayments(ctx context.Context, tenantID uint) ([]models.RentPayment, error)
	DeletePayment(ctx context.Context, id uint) error
}

type rentalRepository struct {
	db *gorm.DB
}

// NewRentalRepository creates a new rental repository
func NewRentalRepository(db *gorm.DB) RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) FindProperty(ctx context.Context, id uint) (*models.RentalProperty, error) {
	var property models.RentalProperty
	err := r.db.WithContext(ctx).
		Preload("Tenants").
		First(&property, id).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *rentalRepository) CreateProperty(ctx context.Context, property *models.RentalProperty) error {
	if err := r.db.WithContext(ctx).Create(property).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *rentalRepository) UpdateProperty(ctx context.Context, property *models.RentalProperty) error {
	if err := r.db.WithContext(ctx).Save(property).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *rentalRepository) DeleteProperty(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Select("Tenants").Delete(&models.RentalProperty{ID: id}).Error
}

func (r *rentalRepository) ListProperties(ctx context.Context, query *ListQuery) ([]models.RentalProperty, int64, error) {
	var properties []models.RentalProperty
	var total int64

	db := r.db.WithContext(ctx).Model(&models.RentalProperty{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR property_code ILIKE ? OR address ILIKE ?",
			search, search, search)
	}
	if query.Filters["property_type"] != "" {
		db = db.Where("property_type = ?", query.Filters["property_type"])
	}
	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}

	db.Count(&total)
	db = applySortAndPage(db, query, "created_at DESC")

	err := db.Preload("Tenants").Find(&properties).Error
	return properties, total, err
}

func (r *rentalRepository) FindTenant(ctx context.Context, id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Payments").
		First(&tenant, id).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// CreateTenant inserts the tenant and flips the property to rented in
// one transaction.
func (r *rentalRepository) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tenant).Error; err != nil {
			return err
		}
		return tx.Model(&models.RentalProperty{}).
			Where("id = ?", tenant.PropertyID).
			Update("status", models.PropertyRented).Error
	})
}

func (r *rentalRepository) UpdateTenant(ctx context.Context, tenant *models.Tenant) error {
	return r.db.WithContext(ctx).Save(tenant).Error
}

func (r *rentalRepository) DeleteTenant(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Select("Payments").Delete(&models.Tenant{ID: id}).Error
}

func (r *rentalRepository) ListTenants(ctx context.Context, query *ListQuery) ([]models.Tenant, int64, error) {
	var tenants []models.Tenant
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Tenant{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR phone ILIKE ?", search, search)
	}
	if query.Filters["property_id"] != "" {
		db = db.Where("property_id = ?", query.Filters["property_id"])
	}
	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}

	db.Count(&total)
	db = applySortAndPage(db, query, "created_at DESC")

	err := db.Preload("Property").Find(&tenants).Error
	return tenants, total, err
}

func (r *rentalRepository) FindTenantsEndingBefore(ctx context.Context, before time.Time) ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := r.db.WithContext(ctx).
		Where("status = ? AND contract_end IS NOT NULL AND contract_end <= ?", models.StatusActive, before).
		Preload("Property").
		Order("contract_end ASC").
		Find(&tenants).Error
	return tenants, err
}

func (r *rentalRepository) CreatePayment(ctx context.Context, payment *models.RentPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *rentalRepository) ListPayments(ctx context.Context, tenantID uint) ([]models.RentPayment, error) {
	var payments []models.RentPayment
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("payment_date DESC").
		Find(&payments).Error
	return payments, err
}

func (r *rentalRepository) DeletePayment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.RentPayment{}, id).Error
}
