// Package daemon assembles the portal server: session storage backend,
// invalidation registry and the web service.
package daemon

import (
	"fmt"

	"github.com/gofiber/storage"
	memorystorage "github.com/gofiber/storage/memory/v2"
	redisstorage "github.com/gofiber/storage/redis/v3"
	"github.com/rs/zerolog/log"

	"github.com/enterprise-sso/sso-portal/internal/auth"
	"github.com/enterprise-sso/sso-portal/internal/config"
	"github.com/enterprise-sso/sso-portal/internal/web"
	"github.com/enterprise-sso/sso-portal/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start runs the web service and blocks until a shutdown signal arrives.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	go func() {
		if err := d.webService.Start(addr); err != nil {
			log.Error().Err(err).Msg("web service stopped")
		}
	}()

	d.webService.WaitShutdown()

	return nil
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	// The invalidation registry is created once here and shared by
	// reference with every request path; there is deliberately no
	// persistence across restarts.
	invalidated := auth.NewInvalidationSet()

	session.Init(newSessionStorage(cfg))

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, invalidated),
	}
}

// newSessionStorage builds the configured session storage backend. Memory is
// the default; redis is an opt-in convenience for deployments that want
// sessions to survive a restart.
func newSessionStorage(cfg *config.Config) storage.Storage {
	switch cfg.Storage.Backend {
	case "redis":
		log.Info().Str("host", cfg.Storage.Redis.Host).Msg("using redis session storage")

		return redisstorage.New(redisstorage.Config{
			Host:     cfg.Storage.Redis.Host,
			Port:     cfg.Storage.Redis.Port,
			Username: cfg.Storage.Redis.Username,
			Password: cfg.Storage.Redis.Password,
			Database: cfg.Storage.Redis.Database,
		})
	default:
		return memorystorage.New()
	}
}
