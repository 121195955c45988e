package models

import "time"

// Notification is a derived alert computed fresh on every request.
// Nothing here is persisted; there is no read/unread state.
type Notification struct {
	Type     string     `json:"type"`     // low_stock, document_expiry, contract_expiry
	Severity string     `json:"severity"` // warning, critical
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	Entity   string     `json:"entity"`
	EntityID uint       `json:"entity_id"`
	DueDate  *time.Time `json:"due_date,omitempty"`
}

// Notification type constants
const (
	NotificationLowStock       = "low_stock"
	NotificationDocumentExpiry = "document_expiry"
	NotificationContractExpiry = "contract_expiry"
)

// Notification severity constants
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// ExpiryWindowDays is the look-ahead window for expiry notifications.
const ExpiryWindowDays = 30
