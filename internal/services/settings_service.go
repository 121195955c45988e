package services

import (
	"context"
	"fmt"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
)

// SettingsService manages the settings singleton
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	auditSvc     *AuditService
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, auditSvc *AuditService) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		auditSvc:     auditSvc,
	}
}

// Get returns the settings, creating defaults on first access
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

// CompanyInput holds the company identity fields
type CompanyInput struct {
	CompanyName    *string `json:"company_name"`
	CompanyAddress *string `json:"company_address"`
	CompanyPhone   *string `json:"company_phone"`
	CompanyEmail   *string `json:"company_email"`
	TinNumber      *string `json:"tin_number"`
}

// UpdateCompany updates the company identity portion of settings
func (s *SettingsService) UpdateCompany(ctx context.Context, input CompanyInput, actorID uint, actorName, ip string) (*models.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.CompanyName != nil {
		settings.CompanyName = *input.CompanyName
	}
	if input.CompanyAddress != nil {
		settings.CompanyAddress = *input.CompanyAddress
	}
	if input.CompanyPhone != nil {
		settings.CompanyPhone = *input.CompanyPhone
	}
	if input.CompanyEmail != nil {
		settings.CompanyEmail = *input.CompanyEmail
	}
	if input.TinNumber != nil {
		settings.TinNumber = *input.TinNumber
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionUpdate, "settings", models.SettingsID,
		"Updated company settings", ip)
	return settings, nil
}

// SystemInput holds the system preference fields
type SystemInput struct {
	Currency          *string `json:"currency"`
	DateFormat        *string `json:"date_format"`
	Timezone          *string `json:"timezone"`
	LowStockThreshold *int    `json:"low_stock_threshold"`
}

// UpdateSystem updates the system preference portion of settings
func (s *SettingsService) UpdateSystem(ctx context.Context, input SystemInput, actorID uint, actorName, ip string) (*models.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.Currency != nil {
		settings.Currency = *input.Currency
	}
	if input.DateFormat != nil {
		settings.DateFormat = *input.DateFormat
	}
	if input.Timezone != nil {
		settings.Timezone = *input.Timezone
	}
	if input.LowStockThreshold != nil {
		if *input.LowStockThreshold < 0 {
			return nil, fmt.Errorf("%w: low_stock_threshold cannot be negative", ErrValidation)
		}
		settings.LowStockThreshold = *input.LowStockThreshold
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionUpdate, "settings", models.SettingsID,
		"Updated system settings", ip)
	return settings, nil
}
