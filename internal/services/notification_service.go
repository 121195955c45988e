package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
)

// NotificationService derives alerts from current data on every call.
// Nothing is stored, so an alert disappears the moment its cause is
// resolved.
type NotificationService struct {
	inventoryRepo repository.InventoryRepository
	employeeRepo  repository.EmployeeRepository
	rentalRepo    repository.RentalRepository
	reportRepo    repository.ReportRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(inventoryRepo repository.InventoryRepository, employeeRepo repository.EmployeeRepository, rentalRepo repository.RentalRepository, reportRepo repository.ReportRepository) *NotificationService {
	return &NotificationService{
		inventoryRepo: inventoryRepo,
		employeeRepo:  employeeRepo,
		rentalRepo:    rentalRepo,
		reportRepo:    reportRepo,
	}
}

// List computes the current notification set: low stock on active
// items, employee documents expiring within 30 days, and tenant
// contracts ending within 30 days.
func (s *NotificationService) List(ctx context.Context) ([]models.Notification, error) {
	notifications := []models.Notification{}
	windowEnd := time.Now().AddDate(0, 0, models.ExpiryWindowDays)

	lowStock, err := s.reportRepo.LowStockItems(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range lowStock {
		severity := models.SeverityWarning
		if item.CurrentStock == 0 {
			severity = models.SeverityCritical
		}
		notifications = append(notifications, models.Notification{
			Type:     models.NotificationLowStock,
			Severity: severity,
			Title:    "Low stock",
			Message:  fmt.Sprintf("%s (%s) is down to %d %s (minimum %d)", item.Name, item.ItemCode, item.CurrentStock, item.Unit, item.MinStock),
			Entity:   "inventory",
			EntityID: item.ID,
		})
	}

	expiring, err := s.employeeRepo.FindExpiringDocuments(ctx, windowEnd)
	if err != nil {
		return nil, err
	}
	for _, doc := range expiring {
		severity := models.SeverityWarning
		if doc.ExpiryDate != nil && doc.ExpiryDate.Before(time.Now()) {
			severity = models.SeverityCritical
		}
		notifications = append(notifications, models.Notification{
			Type:     models.NotificationDocumentExpiry,
			Severity: severity,
			Title:    "Document expiring",
			Message:  fmt.Sprintf("%s (%s) for employee %d expires soon", doc.DocumentType, doc.FileName, doc.EmployeeID),
			Entity:   "employee_document",
			EntityID: doc.ID,
			DueDate:  doc.ExpiryDate,
		})
	}

	ending, err := s.rentalRepo.FindTenantsEndingBefore(ctx, windowEnd)
	if err != nil {
		return nil, err
	}
	for _, tenant := range ending {
		severity := models.SeverityWarning
		if tenant.ContractEnd != nil && tenant.ContractEnd.Before(time.Now()) {
			severity = models.SeverityCritical
		}
		propertyName := ""
		if tenant.Property != nil {
			propertyName = tenant.Property.Name
		}
		notifications = append(notifications, models.Notification{
			Type:     models.NotificationContractExpiry,
			Severity: severity,
			Title:    "Tenant contract ending",
			Message:  fmt.Sprintf("Lease of %s at %s ends soon", tenant.Name, propertyName),
			Entity:   "tenant",
			EntityID: tenant.ID,
			DueDate:  tenant.ContractEnd,
		})
	}

	return notifications, nil
}
