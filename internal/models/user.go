package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an operator account in the system
type User struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Username          string    `gorm:"uniqueIndex;not null" json:"username"`
	EncryptedPassword string    `gorm:"column:encrypted_password;not null" json:"-"`
	Email             string    `gorm:"uniqueIndex" json:"email"`
	FullName          string    `json:"full_name"`
	Phone             string    `json:"phone"`
	Role              string    `gorm:"not null" json:"role"`
	Status            string    `gorm:"default:active" json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook for setting defaults
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Status == "" {
		u.Status = StatusActive
	}
	return nil
}

// IsAdmin returns true if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsActive returns true if user status is active
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// Role constants. Roles form a closed set; there is no roles table.
const (
	RoleAdmin            = "admin"
	RoleAssetManager     = "asset_manager"
	RoleInventoryManager = "inventory_manager"
	RoleHRManager        = "hr_manager"
	RoleClientManager    = "client_manager"
	RoleAccountant       = "accountant"
)

// Roles lists every valid role.
var Roles = []string{
	RoleAdmin,
	RoleAssetManager,
	RoleInventoryManager,
	RoleHRManager,
	RoleClientManager,
	RoleAccountant,
}

// IsValidRole reports whether role belongs to the closed role set.
func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Status constants
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// UserResponse is the JSON response format for users
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
