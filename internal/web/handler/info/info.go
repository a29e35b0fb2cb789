// Package info provides the portal information endpoint.
package info

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/enterprise-sso/sso-portal/internal/config"
	"github.com/enterprise-sso/sso-portal/internal/portal"
	"github.com/enterprise-sso/sso-portal/internal/web/handler"
)

// Path is the path to the info endpoint.
const Path = handler.RootPath + "info"

// Service is the info handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	info      portal.Info
	staticDir string
}

// Handler is the info handler.
var Handler = Service{}

// Init initializes the info handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, info portal.Info, staticDir string) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.info = info
	s.staticDir = staticDir

	app.Get(Path, s.Get)
}

// Get returns the portal display metadata.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"portal_type":      s.info.Type,
		"portal_name":      s.info.Name,
		"description":      s.info.Description,
		"icon":             s.info.Icon,
		"static_directory": s.staticDir,
		"is_admin_portal":  s.info.Type.IsAdmin(),
	})
}
