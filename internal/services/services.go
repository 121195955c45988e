package services

import (
	"github.com/tewodrosm/sera-api/internal/config"
	"github.com/tewodrosm/sera-api/internal/repository"
	"github.com/tewodrosm/sera-api/internal/storage"
)

// Services holds all service instances
type Services struct {
	Auth         *AuthService
	User         *UserService
	Asset        *AssetService
	Inventory    *InventoryService
	Employee     *EmployeeService
	Client       *ClientService
	Rental       *RentalService
	Report       *ReportService
	Notification *NotificationService
	Settings     *SettingsService
	Backup       *BackupService
	Audit        *AuditService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, store *storage.LocalStorage, cfg *config.Config) *Services {
	auditSvc := NewAuditService(repos.Audit)

	return &Services{
		Auth:         NewAuthService(repos.User, auditSvc, cfg),
		User:         NewUserService(repos.User, auditSvc),
		Asset:        NewAssetService(repos.Asset, store, auditSvc),
		Inventory:    NewInventoryService(repos.Inventory, auditSvc),
		Employee:     NewEmployeeService(repos.Employee, store, auditSvc),
		Client:       NewClientService(repos.Client, repos.Employee, auditSvc),
		Rental:       NewRentalService(repos.Rental, auditSvc),
		Report:       NewReportService(repos.Report, repos.Audit),
		Notification: NewNotificationService(repos.Inventory, repos.Employee, repos.Rental, repos.Report),
		Settings:     NewSettingsService(repos.Settings, auditSvc),
		Backup:       NewBackupService(repos.Backup, store, auditSvc),
		Audit:        auditSvc,
	}
}
