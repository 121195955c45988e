package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tewodrosm/sera-api/internal/models"
)

// TableDump is one table's full contents, ready for JSON encoding.
type TableDump struct {
	Name string
	Rows interface{}
}

// BackupRepository defines the interface for full-table data exports
type BackupRepository interface {
	DumpTables(ctx context.Context) ([]TableDump, error)
}

type backupRepository struct {
	db *gorm.DB
}

// NewBackupRepository creates a new backup repository
func NewBackupRepository(db *gorm.DB) BackupRepository {
	return &backupRepository{db: db}
}

// DumpTables reads every table in full. The list mirrors the migration
// set; a model added there needs an entry here to be backed up.
func (r *backupRepository) DumpTables(ctx context.Context) ([]TableDump, error) {
	dumps := []TableDump{
		{"users", &[]models.User{}},
		{"audit_logs", &[]models.AuditLog{}},
		{"settings", &[]models.Settings{}},
		{"employees", &[]models.Employee{}},
		{"employee_documents", &[]models.EmployeeDocument{}},
		{"guarantors", &[]models.Guarantor{}},
		{"guarantor_documents", &[]models.GuarantorDocument{}},
		{"attendance", &[]models.AttendanceRecord{}},
		{"assets", &[]models.Asset{}},
		{"asset_documents", &[]models.AssetDocument{}},
		{"asset_history", &[]models.AssetHistory{}},
		{"inventory_items", &[]models.InventoryItem{}},
		{"inventory_transactions", &[]models.InventoryTransaction{}},
		{"suppliers", &[]models.Supplier{}},
		{"clients", &[]models.Client{}},
		{"service_contracts", &[]models.ServiceContract{}},
		{"employee_assignments", &[]models.EmployeeAssignment{}},
		{"rental_properties", &[]models.RentalProperty{}},
		{"tenants", &[]models.Tenant{}},
		{"rent_payments", &[]models.RentPayment{}},
	}

	for _, dump := range dumps {
		if err := r.db.WithContext(ctx).Find(dump.Rows).Error; err != nil {
			return nil, err
		}
	}
	return dumps, nil
}
