package models

import (
	"time"

	"gorm.io/gorm"
)

// RentalProperty represents a unit the company rents out
type RentalProperty struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PropertyCode string    `gorm:"uniqueIndex;not null" json:"property_code"`
	Name         string    `gorm:"not null" json:"name"`
	PropertyType string    `json:"property_type"` // office, shop, warehouse, residential
	Address      string    `json:"address"`
	SizeSqm      *float64  `json:"size_sqm"`
	MonthlyRent  *float64  `json:"monthly_rent"`
	Status       string    `gorm:"default:available" json:"status"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Tenants []Tenant `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"tenants,omitempty"`
}

// TableName specifies the table name for RentalProperty
func (RentalProperty) TableName() string {
	return "rental_properties"
}

// BeforeCreate hook for setting defaults
func (p *RentalProperty) BeforeCreate(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = PropertyAvailable
	}
	return nil
}

// Rental property status constants
const (
	PropertyAvailable   = "available"
	PropertyRented      = "rented"
	PropertyMaintenance = "maintenance"
)

// Tenant occupies a rental property under a lease
type Tenant struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	PropertyID    uint       `gorm:"not null;index" json:"property_id"`
	Name          string     `gorm:"not null" json:"name"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	IDNumber      string     `json:"id_number"`
	ContractStart *time.Time `json:"contract_start"`
	ContractEnd   *time.Time `json:"contract_end"`
	MonthlyRent   *float64   `json:"monthly_rent"`
	DepositAmount *float64   `json:"deposit_amount"`
	Status        string     `gorm:"default:active" json:"status"`
	CreatedAt     time.Time  `json:"created_at"`

	Property *RentalProperty `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Payments []RentPayment   `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// RentPayment records one rent payment by a tenant
type RentPayment struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	TenantID      uint       `gorm:"not null;index" json:"tenant_id"`
	Amount        float64    `gorm:"not null" json:"amount"`
	PaymentDate   *time.Time `json:"payment_date"`
	PeriodMonth   string     `json:"period_month"` // e.g. 2026-08
	PaymentMethod string     `json:"payment_method"`
	ReferenceNo   string     `json:"reference_no"`
	Notes         string     `json:"notes"`
	RecordedBy    *uint      `json:"recorded_by"`
	CreatedAt     time.Time  `json:"created_at"`

	Tenant *Tenant `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
}

func (RentPayment) TableName() string {
	return "rent_payments"
}
