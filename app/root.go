// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hmdm-server",
	Short: "hmdm-server is a mobile device management server",
	Long: `hmdm-server is a mobile device management server. Managed devices
poll it over HTTP to receive their configuration (applications, files,
restrictions, per-application settings) and enroll via a provisioning QR code.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
