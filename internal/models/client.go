package models

import (
	"time"

	"gorm.io/gorm"
)

// Client represents a customer organization or person
type Client struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ClientCode    string    `gorm:"uniqueIndex;not null" json:"client_code"`
	Name          string    `gorm:"not null" json:"name"`
	ClientType    string    `json:"client_type"` // individual, company, government, ngo
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	TinNumber     string    `json:"tin_number"`
	Status        string    `gorm:"default:active" json:"status"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Associations
	Contracts   []ServiceContract    `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"contracts,omitempty"`
	Assignments []EmployeeAssignment `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "clients"
}

// BeforeCreate hook for setting defaults
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.Status == "" {
		c.Status = StatusActive
	}
	return nil
}

// ServiceContract binds a client to a service engagement
type ServiceContract struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	ContractCode  string     `gorm:"uniqueIndex;not null" json:"contract_code"`
	ClientID      uint       `gorm:"not null;index" json:"client_id"`
	ServiceType   string     `gorm:"not null" json:"service_type"`
	Description   string     `json:"description"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	ContractValue *float64   `json:"contract_value"`
	PaymentTerms  string     `json:"payment_terms"`
	Status        string     `gorm:"default:active" json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

func (ServiceContract) TableName() string {
	return "service_contracts"
}

// Contract status constants
const (
	ContractActive     = "active"
	ContractExpired    = "expired"
	ContractTerminated = "terminated"
)
