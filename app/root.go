// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sso-portal",
	Short: "sso-portal serves the single-sign-on demo portals",
	Long: `sso-portal serves one of three portals: the internal and external
single-page portals, or the server-rendered admin dashboard protected by
OpenID Connect single sign-on against the enterprise identity provider.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
