// Package configuration provides lookups of the full configuration graph
// needed by the sync resolver and the provisioning flow.
package configuration

import (
	"errors"

	"gorm.io/gorm"

	"github.com/h-mdm/hmdm-server-sub000/internal/db/models"
)

var (
	// ErrConfigurationNotFound is returned when a configuration is not found.
	ErrConfigurationNotFound = errors.New("configuration not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetFull retrieves a configuration with its complete graph: application
// list, file list, attached application settings and the kiosk main app.
func GetFull(db *gorm.DB, id uint64) (*models.Configuration, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var cfg models.Configuration
	result := db.
		Preload("Customer").
		Preload("MainApp.Application").
		Preload("Applications.ApplicationVersion.Application").
		Preload("Files").
		Preload("ApplicationSettings.Application").
		First(&cfg, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrConfigurationNotFound
		}
		return nil, result.Error
	}

	return &cfg, nil
}

// GetByQRCodeKey retrieves the configuration referenced by a provisioning QR
// key, with the customer and main application resolved.
func GetByQRCodeKey(db *gorm.DB, key string) (*models.Configuration, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" {
		return nil, ErrConfigurationNotFound
	}

	var cfg models.Configuration
	result := db.
		Preload("Customer").
		Preload("MainApp.Application").
		Where("qr_code_key = ?", key).
		First(&cfg)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrConfigurationNotFound
		}
		return nil, result.Error
	}

	return &cfg, nil
}
