// Package main provides the entry point for the device-management fleet
// server. It runs a web server using the Fiber framework that unattended
// Android endpoints poll to learn their authoritative configuration
// (restrictions, application set, files, per-application settings) and to
// enroll via a provisioning QR code. The application uses gorm for data
// persistence and publishes device telemetry events over MQTT.
package main
