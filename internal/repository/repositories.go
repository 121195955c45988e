package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User      UserRepository
	Asset     AssetRepository
	Inventory InventoryRepository
	Employee  EmployeeRepository
	Client    ClientRepository
	Rental    RentalRepository
	Settings  SettingsRepository
	Audit     AuditRepository
	Report    ReportRepository
	Backup    BackupRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:      NewUserRepository(db),
		Asset:     NewAssetRepository(db),
		Inventory: NewInventoryRepository(db),
		Employee:  NewEmployeeRepository(db),
		Client:    NewClientRepository(db),
		Rental:    NewRentalRepository(db),
		Settings:  NewSettingsRepository(db),
		Audit:     NewAuditRepository(db),
		Report:    NewReportRepository(db),
		Backup:    NewBackupRepository(db),
	}
}
