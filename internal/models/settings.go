package models

import "time"

// Settings is a singleton row (id = 1) holding company and system
// preferences. It is created lazily with defaults on first read.
type Settings struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CompanyName       string    `json:"company_name"`
	CompanyAddress    string    `json:"company_address"`
	CompanyPhone      string    `json:"company_phone"`
	CompanyEmail      string    `json:"company_email"`
	TinNumber         string    `json:"tin_number"`
	Currency          string    `gorm:"default:ETB" json:"currency"`
	DateFormat        string    `gorm:"default:YYYY-MM-DD" json:"date_format"`
	Timezone          string    `gorm:"default:Africa/Addis_Ababa" json:"timezone"`
	LowStockThreshold int       `gorm:"default:10" json:"low_stock_threshold"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName specifies the table name for Settings
func (Settings) TableName() string {
	return "settings"
}

// SettingsID is the fixed primary key of the singleton settings row.
const SettingsID = 1

// DefaultSettings returns the settings row created on first access.
func DefaultSettings() Settings {
	return Settings{
		ID:                SettingsID,
		Currency:          "ETB",
		DateFormat:        "YYYY-MM-DD",
		Timezone:          "Africa/Addis_Ababa",
		LowStockThreshold: 10,
	}
}
