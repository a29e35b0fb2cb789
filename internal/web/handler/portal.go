package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/enterprise-sso/sso-portal/internal/portal"
)

// RequireAdminPortal creates Fiber middleware answering 404 when the
// process doesn't serve the admin portal. Admin-only operations invoked
// against a non-admin deployment are a not-found condition, not an
// authentication failure.
func RequireAdminPortal(portalType portal.Type) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !portalType.IsAdmin() {
			return c.Status(fiber.StatusNotFound).SendString(NotOnThisPortalMsg)
		}

		return c.Next()
	}
}
