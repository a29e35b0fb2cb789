package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/enterprise-sso/sso-portal/internal/config"
	"github.com/enterprise-sso/sso-portal/internal/portal"
	"github.com/enterprise-sso/sso-portal/internal/web/handler"
)

const (
	// Path is the path to the login page.
	Path = handler.LoginPath
)

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	info portal.Info
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, info portal.Info) error {
	if app == nil || cfg == nil {
		return errors.New("app or cfg is nil")
	}

	s.cfg = cfg
	s.info = info

	// register routes
	app.Get(Path, handler.RequireAdminPortal(info.Type), s.Get)

	return nil
}

// Get handles the login page rendering. The auth middleware already
// redirects authenticated callers to the dashboard before this runs.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Title":      s.cfg.Title,
		"PortalInfo": s.info,
		"SSOPath":    handler.OIDCLoginPath,
	}, handler.BaseLayout)
}
