package config

import (
	"github.com/h-mdm/hmdm-server-sub000/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	MQTT      MQTT
	Provision Provision
}

// Webserver implement webserver settings.
type Webserver struct {
	Domain       string // domain name for the webserver
	Port         int    // listening port for the webserver
	ShutDownTime int    // wait time for shutdown
	URL          string // externally visible base url, used to build file/icon/apk links
	FilesDir     string // local directory served under /files
}

// MQTT implements the event broker settings. When disabled, domain events
// are logged but not published anywhere.
type MQTT struct {
	Enabled   bool
	BrokerURL string // e.g. tcp://localhost:1883
	ClientID  string
	Username  string
	Password  string
}

// Provision holds defaults for the device provisioning (QR enrollment) flow.
type Provision struct {
	QRCodeSize       int    // rendered QR image size in pixels
	WifiSSID         string // optional wifi credentials embedded into the payload
	WifiPassword     string
	WifiSecurityType string // defaults to WPA
}
