package models

// Application setting value types as spoken by the device protocol.
const (
	SettingTypeString  = "STRING"
	SettingTypeInteger = "INTEGER"
	SettingTypeBoolean = "BOOLEAN"
)

// NormalizeSettingType maps a reported type code to a known type tag.
// Unknown codes fall back to the string type.
func NormalizeSettingType(t string) string {
	switch t {
	case SettingTypeString, SettingTypeInteger, SettingTypeBoolean:
		return t
	default:
		return SettingTypeString
	}
}

// ApplicationSetting is a (application, name) keyed value pushed to the
// managed application on the device. Two independent precedence layers share
// this shape: settings attached to a Configuration and settings attached
// directly to a Device. Duplicate keys across the layers are expected and
// resolved by merge, never by persistence-level uniqueness.
type ApplicationSetting struct {
	ID uint64 `gorm:"primaryKey"`
	// ConfigurationID is set for the configuration-level layer.
	ConfigurationID *uint64 `gorm:"index"`
	// DeviceID is set for the device-level layer.
	DeviceID *uint64 `gorm:"index"`
	// ApplicationID is the application the setting belongs to.
	ApplicationID uint64 `gorm:"index;not null"`
	// Application is the associated application record.
	Application Application `gorm:"foreignKey:ApplicationID"`
	// Name is the setting key within the application.
	Name string `gorm:"size:255;not null"`
	// Type is one of SettingTypeString, SettingTypeInteger, SettingTypeBoolean.
	Type string `gorm:"size:20;not null"`
	// ReadOnly prevents the device-side user from editing the value.
	ReadOnly bool
	// Value is the setting value template; it may contain device
	// placeholders substituted at resolution time.
	Value string `gorm:"size:4000"`
	// Comment is a free-form operator note.
	Comment string `gorm:"size:255"`
	// LastUpdate is the last modification timestamp in unix milliseconds.
	LastUpdate int64
}
