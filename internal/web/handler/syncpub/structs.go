package syncpub

// DeviceInfo is the self-reported state blob of a device. The raw document
// is persisted as-is; only the fields below are interpreted by the server.
// Checksum optionally carries the digest of the installed agent APK.
type DeviceInfo struct {
	DeviceID        string                `json:"deviceId" validate:"required"`
	Model           string                `json:"model"`
	Permissions     []int                 `json:"permissions"`
	Applications    []ReportedApplication `json:"applications"`
	Files           []ReportedFile        `json:"files"`
	IMEI            string                `json:"imei"`
	Phone           string                `json:"phone"`
	BatteryLevel    *int                  `json:"batteryLevel"`
	BatteryCharging string                `json:"batteryCharging"`
	AndroidVersion  string                `json:"androidVersion"`
	MDMMode         bool                  `json:"mdmMode"`
	Checksum        string                `json:"checksum"`
	Location        *ReportedLocation     `json:"location"`
	LauncherType    string                `json:"launcherType"`
	LauncherPackage string                `json:"launcherPackage"`
}

// ReportedApplication is one installed application of an info report.
type ReportedApplication struct {
	Pkg     string `json:"pkg"`
	Version string `json:"version"`
}

// ReportedFile is one device-side file of an info report.
type ReportedFile struct {
	Path       string `json:"path"`
	LastUpdate int64  `json:"lastUpdate"`
}

// ReportedLocation is the location fix of an info report.
type ReportedLocation struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Ts  int64   `json:"ts"`
}

// ReportedSetting is one entry of an application-settings report.
type ReportedSetting struct {
	PackageID  string `json:"packageId" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Type       string `json:"type"`
	ReadOnly   bool   `json:"readonly"`
	Value      string `json:"value"`
	LastUpdate int64  `json:"lastUpdate"`
}
