// Package customer provides customer and tenant-settings lookups.
package customer

import (
	"errors"

	"gorm.io/gorm"

	"github.com/h-mdm/hmdm-server-sub000/internal/db/models"
)

var (
	// ErrCustomerNotFound is returned when a customer is not found.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrSettingsNotFound is returned when a customer has no settings row.
	ErrSettingsNotFound = errors.New("customer settings not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByID retrieves a customer by id.
func GetByID(db *gorm.DB, id uint64) (*models.Customer, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var c models.Customer
	result := db.First(&c, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, result.Error
	}

	return &c, nil
}

// GetMaster retrieves the built-in customer of a single-tenant deployment.
func GetMaster(db *gorm.DB) (*models.Customer, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var c models.Customer
	result := db.Where("master = ?", true).First(&c)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, result.Error
	}

	return &c, nil
}

// GetSettings retrieves the settings row of a customer.
func GetSettings(db *gorm.DB, customerID uint64) (*models.Settings, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var s models.Settings
	result := db.Where("customer_id = ?", customerID).First(&s)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, result.Error
	}

	return &s, nil
}
