package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	coreauth "github.com/enterprise-sso/sso-portal/internal/auth"
	"github.com/enterprise-sso/sso-portal/internal/web/handler"
	"github.com/enterprise-sso/sso-portal/internal/web/session"
)

// Validate runs the guard check for the request's browser session:
//
//  1. No session record for this context: not authenticated.
//  2. The session's subject carries an invalidation marker (or the wildcard
//     is set): the session is cleared and the caller is not authenticated.
//  3. Otherwise the session's Identity is returned; no side effects.
//
// Invalidation is enforced lazily here, not pushed into live sessions when
// the registry is written.
func Validate(c *fiber.Ctx, invalidated *coreauth.InvalidationSet) (*coreauth.Identity, bool) {
	sessionID := c.Cookies("session")
	if sessionID == "" {
		return nil, false
	}

	sessData := new(session.Data)
	if err := sessData.Read(sessionID); err != nil {
		return nil, false
	}

	if sessData.User.Subject == "" {
		return nil, false
	}

	if invalidated.IsInvalidated(sessData.User.Subject) {
		log.Info().Str("subject", sessData.User.Subject).
			Msg("session subject is globally invalidated, clearing session")

		if err := session.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete invalidated session")
		}

		c.ClearCookie("session")

		return nil, false
	}

	return &sessData.User, true
}

// Middleware returns a Fiber middleware enforcing the guard check on every
// protected route. Static assets, the logout endpoints and the login surface
// are reachable without authentication; everything else redirects to the
// login page when the check fails.
func Middleware(invalidated *coreauth.InvalidationSet) fiber.Handler {
	return func(c *fiber.Ctx) error {
		originalURL := strings.ToLower(c.OriginalURL())
		if strings.HasPrefix(originalURL, "/static") {
			return c.Next()
		}

		// Logout must always be reachable: front-channel logout with no
		// active session is a valid call, and back-channel calls carry no
		// browser session at all.
		if IsLogoutPage(c) {
			return c.Next()
		}

		// Health, info and the OIDC login/callback endpoints are public.
		if strings.HasPrefix(originalURL, "/health") ||
			strings.HasPrefix(originalURL, "/info") ||
			strings.HasPrefix(originalURL, "/auth/oidc/") {
			return c.Next()
		}

		isLoginPage := IsLoginPage(c)

		identity, ok := Validate(c, invalidated)
		if !ok {
			// Don't redirect on the login page itself (would cause a loop).
			if isLoginPage {
				return c.Next()
			}

			return c.Redirect(handler.LoginPath)
		}

		// Add the current user to locals for handler and template access.
		c.Locals("CurrentUser", identity)

		if isLoginPage {
			return c.Redirect(handler.DashboardPath)
		}

		return c.Next()
	}
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	originalURL := strings.ToLower(c.OriginalURL())
	return strings.HasPrefix(originalURL, handler.LoginPath)
}

// IsLogoutPage checks if the current request is for the logout endpoints.
func IsLogoutPage(c *fiber.Ctx) bool {
	originalURL := strings.ToLower(c.OriginalURL())
	return strings.HasPrefix(originalURL, "/logout")
}
