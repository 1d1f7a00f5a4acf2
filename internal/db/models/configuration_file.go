package models

// ConfigurationFile is a file reference pushed to devices of a configuration.
// It carries either an explicit external URL or a server-relative path; the
// external URL wins and is passed through verbatim.
type ConfigurationFile struct {
	ID              uint64 `gorm:"primaryKey"`
	ConfigurationID uint64 `gorm:"index;not null"`
	// Description is a free-form operator note.
	Description string `gorm:"size:255"`
	// ExternalURL is an absolute URL served outside this server.
	ExternalURL string `gorm:"size:500"`
	// FilePath is the server-relative path under the customer files directory.
	FilePath string `gorm:"size:500"`
	// DevicePath is the absolute target path on the device.
	DevicePath string `gorm:"size:500;not null"`
	// Remove instructs the device to delete the file instead of fetching it.
	Remove bool
	// VarContent marks files whose content gets device placeholders
	// substituted before download.
	VarContent bool
	// LastUpdate is the last modification timestamp in unix milliseconds.
	LastUpdate int64
}
