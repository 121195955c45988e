package models

import (
	"time"

	"gorm.io/gorm"
)

// Asset represents a physical company asset
type Asset struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	AssetCode        string     `gorm:"uniqueIndex;not null" json:"asset_code"`
	Name             string     `gorm:"not null" json:"name"`
	Category         string     `gorm:"not null" json:"category"`
	Description      string     `json:"description"`
	PurchaseDate     *time.Time `json:"purchase_date"`
	PurchasePrice    *float64   `json:"purchase_price"`
	CurrentValue     *float64   `json:"current_value"`
	DepreciationRate *float64   `json:"depreciation_rate"`
	Status           string     `gorm:"default:available" json:"status"`
	Location         string     `json:"location"`
	AssignedTo       *uint      `json:"assigned_to"`
	Department       string     `json:"department"`
	Condition        string     `json:"condition"`
	WarrantyExpiry   *time.Time `json:"warranty_expiry"`
	CreatedBy        *uint      `json:"created_by"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Associations
	AssignedEmployee *Employee       `gorm:"foreignKey:AssignedTo" json:"assigned_employee,omitempty"`
	Documents        []AssetDocument `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE" json:"documents,omitempty"`
	History          []AssetHistory  `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE" json:"history,omitempty"`
}

// TableName specifies the table name for Asset
func (Asset) TableName() string {
	return "assets"
}

// BeforeCreate hook for setting defaults
func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = AssetStatusAvailable
	}
	return nil
}

// Asset status constants
const (
	AssetStatusAvailable   = "available"
	AssetStatusAssigned    = "assigned"
	AssetStatusRented      = "rented"
	AssetStatusMaintenance = "maintenance"
	AssetStatusDamaged     = "damaged"
)

// AssetDocument is a file attached to an asset
type AssetDocument struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AssetID      uint      `gorm:"not null;index" json:"asset_id"`
	DocumentType string    `json:"document_type"`
	FileName     string    `json:"file_name"`
	FilePath     string    `json:"file_path"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (AssetDocument) TableName() string {
	return "asset_documents"
}

// AssetHistory is an append-only log of asset lifecycle actions
type AssetHistory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AssetID     uint      `gorm:"not null;index" json:"asset_id"`
	Action      string    `gorm:"not null" json:"action"` // CREATED, UPDATED
	Description string    `json:"description"`
	PerformedBy *uint     `json:"performed_by"`
	PerformedAt time.Time `gorm:"autoCreateTime" json:"performed_at"`
}

func (AssetHistory) TableName() string {
	return "asset_history"
}

// Asset history action constants
const (
	AssetActionCreated = "CREATED"
	AssetActionUpdated = "UPDATED"
)
