package database

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/pkg/logger"
)

// seedUsers are created on first boot so every role has a working login.
// Passwords must be changed after the first sign-in.
var seedUsers = []struct {
	Username string
	Email    string
	FullName string
	Role     string
	Password string
}{
	{"admin", "admin@sera.local", "System Administrator", models.RoleAdmin, "admin123"},
	{"assets", "assets@sera.local", "Asset Manager", models.RoleAssetManager, "assets123"},
	{"inventory", "inventory@sera.local", "Inventory Manager", models.RoleInventoryManager, "inventory123"},
	{"hr", "hr@sera.local", "HR Manager", models.RoleHRManager, "hr123456"},
	{"clients", "clients@sera.local", "Client Manager", models.RoleClientManager, "clients123"},
	{"accounts", "accounts@sera.local", "Accountant", models.RoleAccountant, "accounts123"},
}

// Seed inserts the default user accounts if they do not exist yet.
// It is idempotent and safe to run on every startup.
func Seed(db *gorm.DB) error {
	for _, su := range seedUsers {
		var count int64
		if err := db.Model(&models.User{}).
			Where("LOWER(username) = LOWER(?)", su.Username).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check seed user %s: %w", su.Username, err)
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}

		user := models.User{
			Username:          su.Username,
			Email:             su.Email,
			FullName:          su.FullName,
			Role:              su.Role,
			Status:            models.StatusActive,
			EncryptedPassword: string(hash),
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create seed user %s: %w", su.Username, err)
		}
		logger.Info("Seeded default user", "username", su.Username, "role", su.Role)
	}
	return nil
}
