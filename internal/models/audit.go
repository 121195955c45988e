package models

import "time"

// AuditLog records one user-initiated action. Rows are never deleted;
// when the acting user is removed, user_id is set to NULL so the
// history survives.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     *uint     `gorm:"index;constraint:OnDelete:SET NULL" json:"user_id"`
	Username   string    `json:"username"`
	Action     string    `gorm:"not null;index" json:"action"`
	EntityType string    `gorm:"index" json:"entity_type"`
	EntityID   *uint     `json:"entity_id"`
	Details    string    `json:"details"`
	IPAddress  string    `json:"ip_address"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit action constants
const (
	AuditActionLogin  = "LOGIN"
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
	AuditActionImport = "IMPORT"
	AuditActionExport = "EXPORT"
	AuditActionBackup = "BACKUP"
)
