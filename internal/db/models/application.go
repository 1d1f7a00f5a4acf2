package models

// Application action codes shared across configuration application entries.
const (
	// ActionHide does not install the application and hides it if present.
	ActionHide = 0
	// ActionInstall installs the application or keeps it installed.
	ActionInstall = 1
	// ActionRemove does not install the application and removes it if present.
	ActionRemove = 2
)

// Application is a logical application identified by its package id.
type Application struct {
	// ID is the unique identifier for the application.
	ID uint64 `gorm:"primaryKey"`
	// CustomerID is the owning customer; zero marks a shared application.
	CustomerID uint64 `gorm:"index"`
	// Pkg is the Android package identifier, e.g. com.example.agent.
	// The device protocol speaks package identifiers, not numeric ids.
	Pkg string `gorm:"size:255;not null;index"`
	// Name is the display name of the application.
	Name string `gorm:"size:100"`
	// IconPath is the server-relative path of the launcher icon.
	IconPath string `gorm:"size:500"`
	// ShowIcon controls whether the launcher shows an icon for this app.
	ShowIcon bool
	// System marks applications preinstalled on the device.
	System bool
}

// ApplicationVersion is one published version of an Application. Exactly one
// row per (package, version) pair is expected; duplicate prevention is an
// upstream concern.
type ApplicationVersion struct {
	// ID is the unique identifier for the version.
	ID uint64 `gorm:"primaryKey"`
	// ApplicationID is the owning application.
	ApplicationID uint64 `gorm:"index;not null"`
	// Application is the associated application record.
	Application Application `gorm:"foreignKey:ApplicationID"`
	// Version is the human readable version string.
	Version string `gorm:"size:50"`
	// URL is the download location of the APK.
	URL string `gorm:"size:500"`
	// ArmeabiURL and Arm64URL optionally split the download by CPU
	// architecture; when set they win over URL for the matching devices.
	ArmeabiURL string `gorm:"size:500"`
	Arm64URL   string `gorm:"size:500"`
	// APKHash is the lazily computed content digest of the APK, base64
	// url-encoded SHA-256. Empty until first requested by provisioning.
	APKHash string `gorm:"size:100"`
	// DeletionProhibited pins a version that is currently installed or
	// referenced by at least one configuration.
	DeletionProhibited bool
}

// ConfigurationApplication links a configuration to an application version
// and carries the per-configuration install policy.
type ConfigurationApplication struct {
	ID              uint64 `gorm:"primaryKey"`
	ConfigurationID uint64 `gorm:"index;not null"`
	// ApplicationVersionID references the concrete version to install.
	ApplicationVersionID uint64 `gorm:"index;not null"`
	// ApplicationVersion is the associated version record.
	ApplicationVersion ApplicationVersion `gorm:"foreignKey:ApplicationVersionID"`
	// Action is one of ActionHide, ActionInstall, ActionRemove.
	Action int
	// ShowIcon overrides the application icon visibility in this configuration.
	ShowIcon bool
	// ScreenOrder positions the icon on the launcher screen.
	ScreenOrder *int
	// KeyCode maps a remote-control key to this application.
	KeyCode *int
	// Bottom places the icon into the bottom bar.
	Bottom bool
}
