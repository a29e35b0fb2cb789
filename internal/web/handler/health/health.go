// Package health provides the liveness endpoint.
package health

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/enterprise-sso/sso-portal/internal/auth"
	"github.com/enterprise-sso/sso-portal/internal/config"
	"github.com/enterprise-sso/sso-portal/internal/portal"
	"github.com/enterprise-sso/sso-portal/internal/web/handler"
)

// Path is the path to the health endpoint.
const Path = handler.RootPath + "health"

// Service is the health handler service.
type Service struct {
	handler.Service
	cfg            *config.Config
	info           portal.Info
	invalidated    *auth.InvalidationSet
	staticDir      string
	oidcConfigured func() bool
	alive          func() bool
}

// Handler is the health handler.
var Handler = Service{}

// Init initializes the health handler. The alive callback turns false while
// the server drains before shutdown so the LB stops routing to it.
func (s *Service) Init(app *fiber.App, cfg *config.Config, info portal.Info, invalidated *auth.InvalidationSet, staticDir string, oidcConfigured, alive func() bool) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.info = info
	s.invalidated = invalidated
	s.staticDir = staticDir
	s.oidcConfigured = oidcConfigured
	s.alive = alive

	app.Get(Path, s.Get)
}

// Get reports process liveness and portal wiring state.
func (s *Service) Get(c *fiber.Ctx) error {
	if s.alive != nil && !s.alive() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "shutting down",
			"portal": s.info.Type,
		})
	}

	report := fiber.Map{
		"status":     "healthy",
		"portal":     s.info.Type,
		"name":       s.info.Name,
		"static_dir": s.staticDir,
	}

	if s.info.Type.IsAdmin() {
		report["files_exist"] = true
		report["admin_status"] = fiber.Map{
			"session_active":      c.Cookies("session") != "",
			"oidc_configured":     s.oidcConfigured != nil && s.oidcConfigured(),
			"invalidated_markers": s.invalidated.Len(),
		}
	} else {
		_, err := os.Stat(filepath.Join(s.staticDir, "index.html"))
		report["files_exist"] = err == nil
	}

	return c.JSON(report)
}
