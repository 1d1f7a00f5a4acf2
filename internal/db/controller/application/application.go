// Package application provides application catalog lookups by package id.
package application

import (
	"errors"

	"gorm.io/gorm"

	"github.com/h-mdm/hmdm-server-sub000/internal/db/models"
)

var (
	// ErrApplicationNotFound is returned when an application is not found.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrPkgEmpty is returned when the package identifier is empty.
	ErrPkgEmpty = errors.New("package identifier cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByPkg retrieves an application by its package identifier.
func GetByPkg(db *gorm.DB, pkg string) (*models.Application, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if pkg == "" {
		return nil, ErrPkgEmpty
	}

	var a models.Application
	result := db.Where("pkg = ?", pkg).First(&a)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, result.Error
	}

	return &a, nil
}

// GetOrCreateByPkg retrieves an application by its package identifier,
// registering an entry on first sight. Devices may report settings for
// applications the catalog does not know yet.
func GetOrCreateByPkg(db *gorm.DB, customerID uint64, pkg string) (*models.Application, error) {
	a, err := GetByPkg(db, pkg)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, ErrApplicationNotFound) {
		return nil, err
	}

	created := &models.Application{CustomerID: customerID, Pkg: pkg}
	if insertErr := db.Create(created).Error; insertErr != nil {
		// concurrent first sight, read the winner
		if existing, readErr := GetByPkg(db, pkg); readErr == nil {
			return existing, nil
		}
		return nil, insertErr
	}

	return created, nil
}
