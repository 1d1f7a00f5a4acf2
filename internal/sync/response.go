package sync

// DeviceConfig is the effective configuration handed to a polling device.
// It is assembled once by the Resolver and treated as a value afterwards;
// hooks return a (possibly new) value instead of mutating shared state.
type DeviceConfig struct {
	// Design settings. Sourced either from the configuration or, when the
	// configuration opts into default design, entirely from the customer
	// settings. Never a blend of both.
	BackgroundColor    string `json:"backgroundColor,omitempty"`
	TextColor          string `json:"textColor,omitempty"`
	BackgroundImageURL string `json:"backgroundImageUrl,omitempty"`
	IconSize           string `json:"iconSize,omitempty"`
	DesktopHeader      string `json:"desktopHeader,omitempty"`
	Title              string `json:"title,omitempty"`

	// Password is the MD5 hex digest of the device lock password.
	Password string `json:"password,omitempty"`

	// Feature toggles; omitted entries leave the device state untouched.
	GPS        *bool `json:"gps,omitempty"`
	Bluetooth  *bool `json:"bluetooth,omitempty"`
	WiFi       *bool `json:"wifi,omitempty"`
	USBStorage *bool `json:"usbStorage,omitempty"`

	// Kiosk mode. MainApp is the package identifier of the kiosk main
	// application, resolved from the internal version reference.
	KioskMode          bool   `json:"kioskMode"`
	MainApp            string `json:"mainApp,omitempty"`
	KioskHome          *bool  `json:"kioskHome,omitempty"`
	KioskRecents       *bool  `json:"kioskRecents,omitempty"`
	KioskNotifications *bool  `json:"kioskNotifications,omitempty"`
	KioskSystemInfo    *bool  `json:"kioskSystemInfo,omitempty"`
	KioskKeyguard      *bool  `json:"kioskKeyguard,omitempty"`

	// System update policy. The window bounds are only present for the
	// scheduled variant, they are omitted rather than zeroed otherwise.
	SystemUpdateType int     `json:"systemUpdateType"`
	SystemUpdateFrom *string `json:"systemUpdateFrom,omitempty"`
	SystemUpdateTo   *string `json:"systemUpdateTo,omitempty"`

	Restrictions string `json:"restrictions,omitempty"`
	Language     string `json:"language,omitempty"`

	Applications        []Application        `json:"applications"`
	ApplicationSettings []ApplicationSetting `json:"applicationSettings"`
	Files               []File               `json:"files"`

	// ServerTime is stamped by the server-time hook, unix milliseconds.
	ServerTime *int64 `json:"serverTime,omitempty"`
}

// Application is one entry of the resolved application list.
type Application struct {
	Pkg        string `json:"pkg"`
	Name       string `json:"name,omitempty"`
	Version    string `json:"version,omitempty"`
	URL        string `json:"url,omitempty"`
	ArmeabiURL string `json:"urlArmeabi,omitempty"`
	Arm64URL   string `json:"urlArm64,omitempty"`
	// Icon is the absolute URL of the launcher icon.
	Icon     string `json:"icon,omitempty"`
	ShowIcon bool   `json:"showIcon"`
	UseKiosk bool   `json:"useKiosk"`
	// Action is the install policy code: 0 hide, 1 install, 2 remove.
	Action      int  `json:"action"`
	ScreenOrder *int `json:"screenOrder,omitempty"`
	KeyCode     *int `json:"keyCode,omitempty"`
	Bottom      bool `json:"bottom"`
}

// ApplicationSetting is one merged, device-templated setting entry.
type ApplicationSetting struct {
	Pkg        string `json:"packageId"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	ReadOnly   bool   `json:"readonly"`
	Value      string `json:"value,omitempty"`
	LastUpdate int64  `json:"lastUpdate"`
}

// File is one resolved file entry.
type File struct {
	// URL is the absolute download location; empty for removals.
	URL string `json:"url,omitempty"`
	// Path is the target path on the device.
	Path       string `json:"path"`
	Remove     bool   `json:"remove"`
	VarContent bool   `json:"varContent"`
	LastUpdate int64  `json:"lastUpdate"`
}
