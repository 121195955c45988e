package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
)

// RentalService handles rental properties, tenants, and rent payments
type RentalService struct {
	rentalRepo repository.RentalRepository
	auditSvc   *AuditService
}

// NewRentalService creates a new rental service
func NewRentalService(rentalRepo repository.RentalRepository, auditSvc *AuditService) *RentalService {
	return &RentalService{
		rentalRepo: rentalRepo,
		auditSvc:   auditSvc,
	}
}

// ListProperties returns rental properties matching the query
func (s *RentalService) ListProperties(ctx context.Context, query *repository.ListQuery) ([]models.RentalProperty, int64, error) {
	return s.rentalRepo.ListProperties(ctx, query)
}

// GetProperty returns a single property with its tenants
func (s *RentalService) GetProperty(ctx context.Context, id uint) (*models.RentalProperty, error) {
	property, err := s.rentalRepo.FindProperty(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return property, nil
}

// CreateProperty registers a new rental property
func (s *RentalService) CreateProperty(ctx context.Context, property *models.RentalProperty, actorID uint, actorName, ip string) error {
	if err := s.rentalRepo.CreateProperty(ctx, property); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrDuplicate
		}
		return err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionCreate, "rental_property", property.ID,
		fmt.Sprintf("Created property %s (%s)", property.Name, property.PropertyCode), ip)
	return nil
}

// UpdateProperty modifies a rental property
func (s *RentalService) UpdateProperty(ctx context.Context, id uint, updated *models.RentalProperty, actorID uint, actorName, ip string) (*models.RentalProperty, error) {
	property, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	updated.ID = property.ID
	updated.PropertyCode = property.PropertyCode
	updated.CreatedAt = property.CreatedAt

	if err := s.rentalRepo.UpdateProperty(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionUpdate, "rental_property", id,
		fmt.Sprintf("Updated property %s", updated.Name), ip)
	return updated, nil
}

// DeleteProperty removes a property and its tenant history
func (s *RentalService) DeleteProperty(ctx context.Context, id, actorID uint, actorName, ip string) error {
	property, err := s.GetProperty(ctx, id)
	if err != nil {
		return err
	}

	if err := s.rentalRepo.DeleteProperty(ctx, id); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionDelete, "rental_property", id,
		fmt.Sprintf("Deleted property %s (%s)", property.Name, property.PropertyCode), ip)
	return nil
}

// --- Tenants ---

// ListTenants returns tenants matching the query
func (s *RentalService) ListTenants(ctx context.Context, query *repository.ListQuery) ([]models.Tenant, int64, error) {
	return s.rentalRepo.ListTenants(ctx, query)
}

// GetTenant returns a single tenant with property and payments
func (s *RentalService) GetTenant(ctx context.Context, id uint) (*models.Tenant, error) {
	tenant, err := s.rentalRepo.FindTenant(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tenant, nil
}

// CreateTenant places a tenant in a property. The property flips to
// rented in the same transaction as the insert.
func (s *RentalService) CreateTenant(ctx context.Context, tenant *models.Tenant, actorID uint, actorName, ip string) error {
	property, err := s.GetProperty(ctx, tenant.PropertyID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: property %d not found", ErrValidation, tenant.PropertyID)
		}
		return err
	}

	if err := s.rentalRepo.CreateTenant(ctx, tenant); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionCreate, "tenant", tenant.ID,
		fmt.Sprintf("Added tenant %s to property %s", tenant.Name, property.PropertyCode), ip)
	return nil
}

// UpdateTenant modifies a tenant record
func (s *RentalService) UpdateTenant(ctx context.Context, id uint, updated *models.Tenant, actorID uint, actorName, ip string) (*models.Tenant, error) {
	tenant, err := s.GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}

	updated.ID = tenant.ID
	updated.PropertyID = tenant.PropertyID
	updated.CreatedAt = tenant.CreatedAt

	if err := s.rentalRepo.UpdateTenant(ctx, updated); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionUpdate, "tenant", id,
		fmt.Sprintf("Updated tenant %s", updated.Name), ip)
	return updated, nil
}

// DeleteTenant removes a tenant and their payment history. The property
// goes back to available if no other active tenant remains.
func (s *RentalService) DeleteTenant(ctx context.Context, id, actorID uint, actorName, ip string) error {
	tenant, err := s.GetTenant(ctx, id)
	if err != nil {
		return err
	}

	if err := s.rentalRepo.DeleteTenant(ctx, id); err != nil {
		return err
	}

	property, err := s.rentalRepo.FindProperty(ctx, tenant.PropertyID)
	if err == nil {
		active := false
		for _, t := range property.Tenants {
			if t.Status == models.StatusActive {
				active = true
				break
			}
		}
		if !active && property.Status == models.PropertyRented {
			property.Status = models.PropertyAvailable
			_ = s.rentalRepo.UpdateProperty(ctx, property)
		}
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionDelete, "tenant", id,
		fmt.Sprintf("Removed tenant %s", tenant.Name), ip)
	return nil
}

// --- Payments ---

// PaymentInput holds the fields for recording a rent payment
type PaymentInput struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentDate   string  `json:"payment_date"`
	PeriodMonth   string  `json:"period_month"`
	PaymentMethod string  `json:"payment_method"`
	ReferenceNo   string  `json:"reference_no"`
	Notes         string  `json:"notes"`
}

// ListPayments returns a tenant's payments, newest first
func (s *RentalService) ListPayments(ctx context.Context, tenantID uint) ([]models.RentPayment, error) {
	if _, err := s.GetTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.rentalRepo.ListPayments(ctx, tenantID)
}

// RecordPayment records a rent payment for a tenant
func (s *RentalService) RecordPayment(ctx context.Context, tenantID uint, input PaymentInput, actorID uint, actorName, ip string) (*models.RentPayment, error) {
	tenant, err := s.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	payment := &models.RentPayment{
		TenantID:      tenantID,
		Amount:        input.Amount,
		PaymentDate:   parseDate(input.PaymentDate),
		PeriodMonth:   input.PeriodMonth,
		PaymentMethod: input.PaymentMethod,
		ReferenceNo:   input.ReferenceNo,
		Notes:         input.Notes,
	}
	if actorID != 0 {
		payment.RecordedBy = &actorID
	}

	if err := s.rentalRepo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionCreate, "rent_payment", payment.ID,
		fmt.Sprintf("Recorded payment of %.2f for tenant %s", input.Amount, tenant.Name), ip)
	return payment, nil
}
