// Package device provides lookup, on-demand creation and report persistence
// for managed devices.
package device

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/h-mdm/hmdm-server-sub000/internal/db/models"
)

const (
	numberQueryPattern = "number = ?"
)

var (
	// ErrDeviceNotFound is returned when a device is not found.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrNumberEmpty is returned when the device identifier is empty.
	ErrNumberEmpty = errors.New("device identifier cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByNumber retrieves a device by its external identifier.
func GetByNumber(db *gorm.DB, number string) (*models.Device, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if number == "" {
		return nil, ErrNumberEmpty
	}

	var d models.Device
	result := db.Where(numberQueryPattern, number).First(&d)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, result.Error
	}

	return &d, nil
}

// GetOrCreateByNumber retrieves a device by its external identifier, creating
// it on demand when the master customer enables on-demand enrollment. Created
// devices get the default configuration and group and a zero sync timestamp.
//
// Concurrent first contact from the same identifier may race on the insert;
// the unique constraint on Number rejects the loser, which then re-reads the
// winner's record. Some valid record always survives.
func GetOrCreateByNumber(db *gorm.DB, number string) (*models.Device, error) {
	d, err := GetByNumber(db, number)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, ErrDeviceNotFound) {
		return nil, err
	}

	var customer models.Customer
	result := db.Where("master = ?", true).First(&customer)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, result.Error
	}

	var settings models.Settings
	result = db.Where("customer_id = ?", customer.ID).First(&settings)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, result.Error
	}

	if !settings.CreateNewDevices || settings.NewDeviceConfigurationID == nil {
		return nil, ErrDeviceNotFound
	}

	created := &models.Device{
		Number:          number,
		CustomerID:      customer.ID,
		ConfigurationID: *settings.NewDeviceConfigurationID,
		LastUpdate:      0,
	}

	if insertErr := db.Create(created).Error; insertErr != nil {
		// lost a first-contact race, the unique constraint on Number kept
		// exactly one record alive
		if existing, readErr := GetByNumber(db, number); readErr == nil {
			return existing, nil
		}
		return nil, insertErr
	}

	if settings.NewDeviceGroupID != nil {
		var group models.Group
		if db.First(&group, *settings.NewDeviceGroupID).Error == nil {
			if err := db.Model(created).Association("Groups").Append(&group); err != nil {
				log.Warn().Err(err).
					Str("device", created.Number).
					Str("group", group.Name).
					Msg("failed to add enrolled device to default group")
			}
		}
	}

	return created, nil
}

// UpdateReportedInfo persists the raw self-reported info blob and the fields
// derived from it. LastUpdate is stamped with the current wall clock.
func UpdateReportedInfo(db *gorm.DB, d *models.Device) error {
	if db == nil {
		return ErrDBNil
	}

	d.LastUpdate = time.Now().UnixMilli()

	result := db.Model(d).
		Select("Info", "IMEI", "Phone", "IMEIChangeTs", "LastUpdate").
		Updates(d)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// GetSettings returns the device-level application settings layer.
func GetSettings(db *gorm.DB, deviceID uint64) ([]models.ApplicationSetting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.ApplicationSetting
	result := db.Preload("Application").
		Where("device_id = ?", deviceID).
		Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	return settings, nil
}

// ReplaceSettings replaces the device-level application settings layer with
// the reported one. The swap is transactional: a malformed batch never leaves
// the device with a partially replaced layer.
func ReplaceSettings(db *gorm.DB, deviceID uint64, settings []models.ApplicationSetting) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("device_id = ?", deviceID).
			Delete(&models.ApplicationSetting{}).Error; err != nil {
			return err
		}

		for i := range settings {
			settings[i].ID = 0
			settings[i].DeviceID = &deviceID
			settings[i].ConfigurationID = nil
		}

		if len(settings) == 0 {
			return nil
		}

		return tx.Create(&settings).Error
	})
}
