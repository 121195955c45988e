package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tewodrosm/sera-api/internal/models"
)

// SettingsRepository defines the interface for the settings singleton
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, settings *models.Settings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the singleton row, creating it with defaults on first
// access so callers never see a missing-settings state.
func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := r.db.WithContext(ctx).First(&settings, models.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.DefaultSettings()
		if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
			// Lost a race with another first reader; their row wins.
			if isDuplicateKeyError(err) {
				err = r.db.WithContext(ctx).First(&settings, models.SettingsID).Error
				if err != nil {
					return nil, err
				}
				return &settings, nil
			}
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *models.Settings) error {
	settings.ID = models.SettingsID
	return r.db.WithContext(ctx).Save(settings).Error
}
