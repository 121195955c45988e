package models

import (
	"time"

	"gorm.io/gorm"
)

// InventoryItem represents a consumable stock item
type InventoryItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ItemCode     string    `gorm:"uniqueIndex;not null" json:"item_code"`
	Name         string    `gorm:"not null" json:"name"`
	Category     string    `gorm:"not null" json:"category"`
	Description  string    `json:"description"`
	Unit         string    `json:"unit"`
	CurrentStock int       `gorm:"default:0" json:"current_stock"`
	MinStock     int       `gorm:"default:0" json:"min_stock"`
	MaxStock     *int      `json:"max_stock"`
	UnitPrice    *float64  `json:"unit_price"`
	Location     string    `json:"location"`
	Status       string    `gorm:"default:active" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Associations
	Transactions []InventoryTransaction `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
}

// TableName specifies the table name for InventoryItem
func (InventoryItem) TableName() string {
	return "inventory"
}

// BeforeCreate hook for setting defaults
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.Status == "" {
		i.Status = StatusActive
	}
	return nil
}

// IsLowStock reports the low-stock predicate. This is the sole source of
// truth for low-stock filtering and notifications; it is never cached.
func (i *InventoryItem) IsLowStock() bool {
	return i.CurrentStock <= i.MinStock
}

// InventoryTransaction is an append-only stock movement record. Stock is
// only ever changed through transactions, never by editing current_stock.
type InventoryTransaction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ItemID          uint      `gorm:"not null;index" json:"item_id"`
	TransactionType string    `gorm:"not null" json:"transaction_type"` // in, out, adjustment
	Quantity        int       `gorm:"not null" json:"quantity"`
	ReferenceNo     string    `json:"reference_no"`
	Notes           string    `json:"notes"`
	PerformedBy     *uint     `json:"performed_by"`
	TransactionDate time.Time `gorm:"autoCreateTime" json:"transaction_date"`
}

func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}

// Transaction type constants
const (
	TransactionIn         = "in"
	TransactionOut        = "out"
	TransactionAdjustment = "adjustment"
)

// IsValidTransactionType reports whether t is a known stock transaction type.
func IsValidTransactionType(t string) bool {
	return t == TransactionIn || t == TransactionOut || t == TransactionAdjustment
}

// Supplier represents a goods supplier for inventory purchasing
type Supplier struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Status        string    `gorm:"default:active" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
