package sync

import (
	"crypto/md5" //nolint:gosec // protocol requires md5 for the lock password
	"encoding/hex"

	"gorm.io/gorm"

	"github.com/h-mdm/hmdm-server-sub000/internal/db/controller/configuration"
	"github.com/h-mdm/hmdm-server-sub000/internal/db/controller/customer"
	"github.com/h-mdm/hmdm-server-sub000/internal/db/controller/device"
	"github.com/h-mdm/hmdm-server-sub000/internal/db/models"
	"github.com/h-mdm/hmdm-server-sub000/internal/files"
)

// ErrConfigurationNotFound is returned when the device's assigned
// configuration can not be loaded. No partial response is ever produced.
var ErrConfigurationNotFound = configuration.ErrConfigurationNotFound

// Resolver assembles the effective configuration for a device.
type Resolver struct {
	db      *gorm.DB
	baseURL string
}

// NewResolver creates a Resolver reading from db and building absolute URLs
// on top of baseURL.
func NewResolver(db *gorm.DB, baseURL string) *Resolver {
	return &Resolver{db: db, baseURL: baseURL}
}

// Resolve produces the full device-facing configuration: design settings
// (with customer-default substitution), feature toggles, the kiosk main app
// package, resolved file and application lists and the merged, templated
// application settings.
func (r *Resolver) Resolve(d *models.Device) (*DeviceConfig, error) {
	cfg, err := configuration.GetFull(r.db, d.ConfigurationID)
	if err != nil {
		return nil, err
	}

	out := &DeviceConfig{}

	if err := r.applyDesign(cfg, out); err != nil {
		return nil, err
	}

	out.GPS = cfg.GPS
	out.Bluetooth = cfg.Bluetooth
	out.WiFi = cfg.WiFi
	out.USBStorage = cfg.USBStorage
	out.Restrictions = cfg.Restrictions
	out.Language = cfg.Language

	r.applyKiosk(cfg, out)
	r.applyFiles(cfg, out)
	r.applyApplications(cfg, out)

	if err := r.applySettings(cfg, d, out); err != nil {
		return nil, err
	}

	out.SystemUpdateType = cfg.SystemUpdateType
	if cfg.SystemUpdateType == models.SystemUpdateScheduled {
		from, to := cfg.SystemUpdateFrom, cfg.SystemUpdateTo
		out.SystemUpdateFrom = &from
		out.SystemUpdateTo = &to
	}

	return out, nil
}

// applyDesign selects the design source. The whole block comes either from
// the customer settings or from the configuration, never a partial blend.
func (r *Resolver) applyDesign(cfg *models.Configuration, out *DeviceConfig) error {
	if cfg.UseDefaultDesignSettings {
		s, err := customer.GetSettings(r.db, cfg.CustomerID)
		if err != nil {
			return err
		}

		out.BackgroundColor = s.BackgroundColor
		out.TextColor = s.TextColor
		out.BackgroundImageURL = s.BackgroundImageURL
		out.IconSize = s.IconSize
		out.DesktopHeader = s.DesktopHeader

		return nil
	}

	out.BackgroundColor = cfg.BackgroundColor
	out.TextColor = cfg.TextColor
	out.BackgroundImageURL = cfg.BackgroundImageURL
	out.IconSize = cfg.IconSize
	out.DesktopHeader = cfg.DesktopHeader
	out.Title = cfg.Title

	if cfg.Password != "" {
		sum := md5.Sum([]byte(cfg.Password)) //nolint:gosec
		out.Password = hex.EncodeToString(sum[:])
	}

	return nil
}

func (r *Resolver) applyKiosk(cfg *models.Configuration, out *DeviceConfig) {
	out.KioskMode = cfg.KioskMode

	if !cfg.KioskMode {
		return
	}

	// the on-device protocol speaks package identifiers, not internal ids
	if cfg.MainApp != nil {
		out.MainApp = cfg.MainApp.Application.Pkg
	}

	out.KioskHome = cfg.KioskHome
	out.KioskRecents = cfg.KioskRecents
	out.KioskNotifications = cfg.KioskNotifications
	out.KioskSystemInfo = cfg.KioskSystemInfo
	out.KioskKeyguard = cfg.KioskKeyguard
}

func (r *Resolver) applyFiles(cfg *models.Configuration, out *DeviceConfig) {
	out.Files = make([]File, 0, len(cfg.Files))

	for _, f := range cfg.Files {
		entry := File{
			Path:       f.DevicePath,
			Remove:     f.Remove,
			VarContent: f.VarContent,
			LastUpdate: f.LastUpdate,
		}

		if !f.Remove {
			entry.URL = files.Resolve(f.ExternalURL, f.FilePath, r.baseURL, cfg.Customer.FilesDir)
		}

		out.Files = append(out.Files, entry)
	}
}

func (r *Resolver) applyApplications(cfg *models.Configuration, out *DeviceConfig) {
	out.Applications = make([]Application, 0, len(cfg.Applications))

	for _, ca := range cfg.Applications {
		v := ca.ApplicationVersion
		a := v.Application

		out.Applications = append(out.Applications, Application{
			Pkg:         a.Pkg,
			Name:        a.Name,
			Version:     v.Version,
			URL:         files.ResolveURL(r.baseURL, cfg.Customer.FilesDir, v.URL),
			ArmeabiURL:  files.ResolveURL(r.baseURL, cfg.Customer.FilesDir, v.ArmeabiURL),
			Arm64URL:    files.ResolveURL(r.baseURL, cfg.Customer.FilesDir, v.Arm64URL),
			Icon:        files.ResolveURL(r.baseURL, cfg.Customer.FilesDir, a.IconPath),
			ShowIcon:    ca.ShowIcon,
			UseKiosk:    cfg.KioskMode && cfg.MainAppID != nil && *cfg.MainAppID == v.ID,
			Action:      ca.Action,
			ScreenOrder: ca.ScreenOrder,
			KeyCode:     ca.KeyCode,
			Bottom:      ca.Bottom,
		})
	}
}

// applySettings merges the configuration-level layer with the device-level
// layer (device wins per key) and substitutes the device placeholders.
func (r *Resolver) applySettings(cfg *models.Configuration, d *models.Device, out *DeviceConfig) error {
	deviceSettings, err := device.GetSettings(r.db, d.ID)
	if err != nil {
		return err
	}

	merged := MergeSettings(cfg.ApplicationSettings, deviceSettings)

	out.ApplicationSettings = make([]ApplicationSetting, 0, len(merged))
	for _, s := range merged {
		out.ApplicationSettings = append(out.ApplicationSettings, ApplicationSetting{
			Pkg:        s.Application.Pkg,
			Name:       s.Name,
			Type:       models.NormalizeSettingType(s.Type),
			ReadOnly:   s.ReadOnly,
			Value:      SubstituteDeviceVars(s.Value, d),
			LastUpdate: s.LastUpdate,
		})
	}

	return nil
}
