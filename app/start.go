package app

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/enterprise-sso/sso-portal/internal/config"
	"github.com/enterprise-sso/sso-portal/internal/daemon"
	"github.com/enterprise-sso/sso-portal/internal/logger"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration directory (default ./etc/)")
	startCmd.Flags().StringVar(&portalType, "portal", "", "Which portal to serve: internal, external or admin")
	startCmd.Flags().IntVar(&port, "port", 0, "Port to run the server on (overrides the config)")
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	startCmd.Flags().BoolVar(
		&browseStatic,
		"browse",
		false,
		"Enable static file browsing (for development purposes only)",
	)

	rootCmd.AddCommand(startCmd)
}

var (
	cfg config.Config
	err error

	configPath   string // Path to the configuration directory
	portalType   string
	port         int
	devMode      bool
	browseStatic bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the portal web service",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			// optional .env for local development; ignore a missing file
			_ = godotenv.Load()

			if cfg, err = config.ReadConfig(configPath); err != nil {
				return err
			}

			if portalType != "" {
				cfg.Portal.Type = portalType
			}

			switch cfg.Portal.Type {
			case "internal", "external", "admin":
			default:
				return config.ErrUnknownPortalType
			}

			if port != 0 {
				cfg.Webserver.Port = port
			}

			if devMode {
				cfg.DevMode = true
			}

			if browseStatic {
				cfg.Webserver.BrowseStatic = true
			}

			if cfg.Log.AppName == "" {
				cfg.Log.AppName = "sso-portal"
			}

			if cfg.Log.ServiceName == "" {
				cfg.Log.ServiceName = "sso-portal-" + cfg.Portal.Type
			}

			return logger.Init(cfg.Log)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			daemon := daemon.New(&cfg)
			if err := daemon.Start(); err != nil {
				return err
			}

			return nil
		},
	}
)
