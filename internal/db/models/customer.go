// Package models contains database model definitions.
package models

// Customer represents a tenant owning configurations, applications and devices.
type Customer struct {
	// ID is the unique identifier for the customer.
	ID uint64 `gorm:"primaryKey"`
	// Name is the unique customer name, also used as the provisioning discriminator.
	Name string `gorm:"unique;size:100;not null"`
	// Description is a free-form note about the customer.
	Description string `gorm:"size:255"`
	// FilesDir is the per-customer subdirectory under the server files root.
	// Resolved file and icon URLs are built as {base}/files/{FilesDir}/{path}.
	FilesDir string `gorm:"size:100;not null"`
	// Master marks the built-in customer of a single-tenant deployment.
	Master bool
	// RegistrationTime is the creation timestamp in unix milliseconds.
	RegistrationTime int64
}

// Settings holds per-customer defaults: the design settings a Configuration
// inherits when it opts into default design, and the on-demand enrollment
// controls consulted when an unknown device first contacts the server.
type Settings struct {
	ID uint64 `gorm:"primaryKey"`
	// CustomerID is the owning customer, one settings row per customer.
	CustomerID uint64 `gorm:"uniqueIndex;not null"`

	// Design defaults. A Configuration with UseDefaultDesignSettings set
	// takes all of these, never a partial blend with its own fields.
	BackgroundColor    string `gorm:"size:20"`
	TextColor          string `gorm:"size:20"`
	BackgroundImageURL string `gorm:"size:500"`
	IconSize           string `gorm:"size:20"`
	DesktopHeader      string `gorm:"size:30"`

	// CreateNewDevices enables on-demand enrollment of unknown identifiers.
	CreateNewDevices bool
	// NewDeviceConfigurationID is the configuration assigned to devices
	// created on demand.
	NewDeviceConfigurationID *uint64
	// NewDeviceGroupID is the group devices created on demand are added to.
	NewDeviceGroupID *uint64
}
