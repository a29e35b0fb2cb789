// Package dashboard provides the admin dashboard handler.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/enterprise-sso/sso-portal/internal/auth"
	"github.com/enterprise-sso/sso-portal/internal/config"
	"github.com/enterprise-sso/sso-portal/internal/portal"
	"github.com/enterprise-sso/sso-portal/internal/web/handler"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.DashboardPath

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard"
)

// Stats holds the dashboard statistics. Demo data; a real deployment would
// read these from the connected systems.
type Stats struct {
	PendingApprovals int
	ActiveUsers      int
	ConnectedSystems int
	SystemUptime     string
}

// PendingItem is one approval workflow entry.
type PendingItem struct {
	Type        string
	Description string
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	info portal.Info
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, info portal.Info) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.info = info

	// The guard middleware runs before this route; it only renders for
	// validated sessions.
	app.Get(Path, handler.RequireAdminPortal(info.Type), s.Get)
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	identity, ok := c.Locals("CurrentUser").(*auth.Identity)
	if !ok || identity == nil {
		return c.Redirect(handler.LoginPath)
	}

	isAdmin := identity.HasAnyRole("admin", "approver")

	stats := Stats{
		PendingApprovals: 23,
		ActiveUsers:      156,
		ConnectedSystems: 8,
		SystemUptime:     "99.8%",
	}

	pendingItems := []PendingItem{
		{Type: "Leave Request", Description: "John Doe - Annual Leave (3 days)"},
		{Type: "Purchase Order", Description: "IT Equipment - ฿125,000"},
		{Type: "Vendor Registration", Description: "ABC Consulting Co."},
		{Type: "Project Budget", Description: "Digital Transformation Phase 2"},
	}

	log.Debug().Str("username", identity.Username).Bool("is_admin", isAdmin).
		Msg("rendering dashboard")

	return c.Render(TemplateName, fiber.Map{
		"Title":        s.cfg.Title,
		"PortalInfo":   s.info,
		"User":         identity,
		"IsAdmin":      isAdmin,
		"Stats":        stats,
		"PendingItems": pendingItems,
	}, handler.BaseLayout)
}
