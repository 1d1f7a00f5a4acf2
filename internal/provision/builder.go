// Package provision builds the enrollment payload consumed by the Android
// managed-provisioning flow and renders it as a scannable QR code.
package provision

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/h-mdm/hmdm-server-sub000/internal/config"
	"github.com/h-mdm/hmdm-server-sub000/internal/db/models"
	"github.com/h-mdm/hmdm-server-sub000/internal/files"
	"github.com/h-mdm/hmdm-server-sub000/internal/integrity"
)

// Keys of the Android managed-provisioning payload.
const (
	keyAdminComponent   = "android.app.extra.PROVISIONING_DEVICE_ADMIN_COMPONENT_NAME"
	keyDownloadLocation = "android.app.extra.PROVISIONING_DEVICE_ADMIN_PACKAGE_DOWNLOAD_LOCATION"
	keyPackageChecksum  = "android.app.extra.PROVISIONING_DEVICE_ADMIN_PACKAGE_CHECKSUM"
	keyWifiSSID         = "android.app.extra.PROVISIONING_WIFI_SSID"
	keyWifiSecurityType = "android.app.extra.PROVISIONING_WIFI_SECURITY_TYPE"
	keyWifiPassword     = "android.app.extra.PROVISIONING_WIFI_PASSWORD"
	keyAdminExtras      = "android.app.extra.PROVISIONING_ADMIN_EXTRAS_BUNDLE"
)

// Keys of the admin extras bundle read by the management agent on first boot.
const (
	extraBaseURL  = "com.hmdm.BASE_URL"
	extraDeviceID = "com.hmdm.DEVICE_ID"
	extraCustomer = "com.hmdm.CUSTOMER"
)

// Payload is the provisioning JSON document. A nil Payload means the
// configuration can not be provisioned and the caller should respond with an
// empty body instead of an error.
type Payload map[string]any

// Builder assembles provisioning payloads for configurations.
type Builder struct {
	cache   *integrity.Cache
	baseURL string
	cfg     config.Provision
}

// NewBuilder creates a provisioning Builder.
func NewBuilder(cache *integrity.Cache, baseURL string, cfg config.Provision) *Builder {
	return &Builder{cache: cache, baseURL: baseURL, cfg: cfg}
}

// Build assembles the provisioning payload for a configuration. deviceID
// optionally pre-assigns the enrolling device's identifier.
//
// A configuration without a main application, download location or receiver
// component yields (nil, nil): provisioning degrades to a no-op rather than
// failing the request. A failed digest computation omits the checksum only.
func (b *Builder) Build(ctx context.Context, cfg *models.Configuration, deviceID string) (Payload, error) {
	if cfg.MainApp == nil || cfg.EventReceivingComponent == "" {
		return nil, nil
	}

	apkURL := files.ResolveURL(b.baseURL, cfg.Customer.FilesDir, mainAppURL(cfg.MainApp))
	if apkURL == "" {
		return nil, nil
	}

	p := Payload{
		keyAdminComponent:   cfg.MainApp.Application.Pkg + "/" + cfg.EventReceivingComponent,
		keyDownloadLocation: apkURL,
	}

	hash, err := b.cache.GetOrCompute(ctx, cfg.MainApp)
	if err != nil {
		// transient upstream failure, provision without the checksum
		log.Warn().Err(err).
			Str("pkg", cfg.MainApp.Application.Pkg).
			Msg("apk digest unavailable, omitting provisioning checksum")
	} else {
		p[keyPackageChecksum] = hash
	}

	if b.cfg.WifiSSID != "" {
		p[keyWifiSSID] = b.cfg.WifiSSID
		p[keyWifiSecurityType] = b.wifiSecurityType()

		if b.cfg.WifiPassword != "" {
			p[keyWifiPassword] = b.cfg.WifiPassword
		}
	}

	extras := map[string]string{
		extraBaseURL:  b.baseURL,
		extraCustomer: cfg.Customer.Name,
	}
	if deviceID != "" {
		extras[extraDeviceID] = deviceID
	}
	p[keyAdminExtras] = extras

	return p, nil
}

func (b *Builder) wifiSecurityType() string {
	if b.cfg.WifiSecurityType == "" {
		return "WPA"
	}

	return b.cfg.WifiSecurityType
}

func mainAppURL(v *models.ApplicationVersion) string {
	switch {
	case v.URL != "":
		return v.URL
	case v.Arm64URL != "":
		return v.Arm64URL
	default:
		return v.ArmeabiURL
	}
}

// RenderQR renders the payload as a PNG QR image of size pixels. A zero or
// negative size falls back to the configured default.
func (b *Builder) RenderQR(p Payload, size int) ([]byte, error) {
	if size <= 0 {
		size = b.cfg.QRCodeSize
	}

	doc, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(string(doc), qrcode.Medium, size)
}
