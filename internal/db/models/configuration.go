package models

// System update policy variants for a configuration.
const (
	// SystemUpdateDefault leaves the update policy to the device.
	SystemUpdateDefault = 0
	// SystemUpdateInstant installs system updates as soon as available.
	SystemUpdateInstant = 1
	// SystemUpdateScheduled installs system updates inside a daily window.
	SystemUpdateScheduled = 2
)

// Configuration is a named, customer-owned policy bundle assignable to many
// devices. It defines the design of the device launcher, feature toggles,
// kiosk mode, the application set, files pushed to the device and attached
// per-application settings.
type Configuration struct {
	// ID is the unique identifier for the configuration.
	ID uint64 `gorm:"primaryKey"`
	// CustomerID is the owning customer.
	CustomerID uint64 `gorm:"index;not null"`
	// Customer is the associated customer record.
	Customer Customer `gorm:"foreignKey:CustomerID"`
	// Name is the configuration name shown to operators.
	Name string `gorm:"size:100;not null"`
	// Description is a free-form note about the configuration.
	Description string `gorm:"size:255"`
	// QRCodeKey is the unique key embedded into the enrollment QR URL.
	QRCodeKey string `gorm:"uniqueIndex;size:100"`
	// Password is the device lock password. It is sent to devices as an
	// MD5 hex digest, never in plaintext.
	Password string `gorm:"size:100"`

	// UseDefaultDesignSettings selects the design source: true takes the
	// whole design from the customer Settings, false keeps the fields below.
	UseDefaultDesignSettings bool
	BackgroundColor          string `gorm:"size:20"`
	TextColor                string `gorm:"size:20"`
	BackgroundImageURL       string `gorm:"size:500"`
	IconSize                 string `gorm:"size:20"`
	DesktopHeader            string `gorm:"size:30"`
	// Title is the header text shown on the device desktop.
	Title string `gorm:"size:100"`

	// Feature toggles. Nil means "do not touch the device state".
	GPS        *bool
	Bluetooth  *bool
	WiFi       *bool
	USBStorage *bool

	// KioskMode locks the device to the main application.
	KioskMode bool
	// MainAppID references the ApplicationVersion acting as kiosk main app.
	MainAppID *uint64
	// MainApp is the kiosk main application version.
	MainApp *ApplicationVersion `gorm:"foreignKey:MainAppID"`
	// Kiosk sub-toggles, only meaningful while KioskMode is set.
	KioskHome          *bool
	KioskRecents       *bool
	KioskNotifications *bool
	KioskSystemInfo    *bool
	KioskKeyguard      *bool

	// EventReceivingComponent is the device-side receiver component of the
	// management agent, required by the provisioning payload.
	EventReceivingComponent string `gorm:"size:255"`

	// SystemUpdateType selects the update policy variant; From/To bound the
	// daily window and only apply to SystemUpdateScheduled.
	SystemUpdateType int
	SystemUpdateFrom string `gorm:"size:10"`
	SystemUpdateTo   string `gorm:"size:10"`

	// Restrictions is an opaque restriction string passed through to devices.
	Restrictions string `gorm:"size:500"`
	// Language is the locale pushed to devices, empty keeps the device locale.
	Language string `gorm:"size:20"`

	// Applications is the ordered application list of this configuration.
	Applications []ConfigurationApplication `gorm:"foreignKey:ConfigurationID"`
	// Files is the list of files pushed to devices.
	Files []ConfigurationFile `gorm:"foreignKey:ConfigurationID"`
	// ApplicationSettings is the configuration-level settings layer.
	ApplicationSettings []ApplicationSetting `gorm:"foreignKey:ConfigurationID"`
}
