package models

import (
	"gorm.io/datatypes"
)

// Device represents a managed endpoint identified by an operator-assigned
// string. Devices poll the server for their configuration and report their
// state back; the server never pushes state synchronously.
type Device struct {
	// ID is the unique identifier for the device.
	ID uint64 `gorm:"primaryKey"`
	// Number is the externally supplied device identifier, unique per server.
	Number string `gorm:"uniqueIndex;size:100;not null"`
	// CustomerID is the owning customer.
	CustomerID uint64 `gorm:"index;not null"`
	// ConfigurationID is the assigned configuration.
	ConfigurationID uint64 `gorm:"index;not null"`
	// Configuration is the associated configuration record.
	Configuration Configuration `gorm:"foreignKey:ConfigurationID"`
	// Description is a free-form operator note, available as a placeholder.
	Description string `gorm:"size:255"`
	// Phone is the phone number of the SIM card, available as a placeholder.
	Phone string `gorm:"size:50"`
	// IMEI is the last reported hardware identifier.
	IMEI string `gorm:"size:50"`
	// IMEIChangeTs is stamped once when a report carries an IMEI differing
	// from the last known value. Unix milliseconds, nil if never changed.
	IMEIChangeTs *int64
	// Custom1..Custom3 are free-form operator fields, available as placeholders.
	Custom1 string `gorm:"size:255"`
	Custom2 string `gorm:"size:255"`
	Custom3 string `gorm:"size:255"`
	// Info is the raw self-reported device info blob of the last report.
	Info datatypes.JSON
	// LastUpdate is the last contact timestamp in unix milliseconds; zero
	// for devices that never reported.
	LastUpdate int64
	// Groups are the group memberships of the device.
	Groups []Group `gorm:"many2many:device_groups"`
}

// Group is a named set of devices used for bulk operations and filtering.
type Group struct {
	ID         uint64 `gorm:"primaryKey"`
	CustomerID uint64 `gorm:"index;not null"`
	Name       string `gorm:"size:100;not null"`
}
