// Package logout reconciles the two provider logout channels.
//
// Front-channel logout arrives as a browser GET and only ever affects the
// calling browser's own session. Back-channel logout arrives as a direct
// server-to-server POST from the provider, carries no trustworthy browser
// session, and therefore mutates the global invalidation registry instead;
// live sessions are caught lazily by the next guard check.
//
// The back-channel logout_token is not cryptographically verified. It is
// parsed only to extract the targeted subject best-effort, and any parse
// failure degrades to the conservative wildcard invalidation. A dropped
// notification is worse than an over-broad one.
package logout

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/enterprise-sso/sso-portal/internal/auth"
	"github.com/enterprise-sso/sso-portal/internal/config"
	"github.com/enterprise-sso/sso-portal/internal/portal"
	"github.com/enterprise-sso/sso-portal/internal/web/handler"
	"github.com/enterprise-sso/sso-portal/internal/web/session"
)

const (
	// Path is the logical logout path shared by both channels.
	Path = handler.RootPath + "logout"

	// HTMLPath is the legacy alias some provider configurations call.
	HTMLPath = handler.RootPath + "logout.html"

	acknowledged = "Logout acknowledged"
)

// Service is the logout handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	info        portal.Info
	invalidated *auth.InvalidationSet
	staticDir   string
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler. Both routes live outside the auth
// middleware protection: front-channel logout with no session is valid, and
// back-channel calls never carry one.
func (s *Service) Init(app *fiber.App, cfg *config.Config, info portal.Info, invalidated *auth.InvalidationSet, staticDir string) {
	if app == nil || cfg == nil || invalidated == nil {
		log.Fatal().Msg(handler.ErrNilACFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.info = info
	s.invalidated = invalidated
	s.staticDir = staticDir

	app.Get(Path, s.FrontChannel)
	app.Post(Path, s.BackChannel)
	app.Get(HTMLPath, s.FrontChannel)
	app.Post(HTMLPath, s.BackChannel)
}

// FrontChannel handles browser-initiated logout (GET). It clears the calling
// browser's own session unconditionally and redirects to the login surface.
// The global invalidation registry is never touched here. Idempotent: an
// already-empty session yields the same redirect.
func (s *Service) FrontChannel(c *fiber.Ctx) error {
	log.Info().Str("ip", c.IP()).Str("portal", s.info.Name).Msg("front-channel logout received")

	if !s.info.Type.IsAdmin() {
		// SPA portals serve the page so client-side JS handles logout.
		return s.serveSPAIndex(c, false)
	}

	sessionID := c.Cookies("session")
	if sessionID != "" {
		// Record the subject for logging purposes only.
		sessData := new(session.Data)
		if err := sessData.Read(sessionID); err == nil && sessData.User.Subject != "" {
			log.Info().Str("username", sessData.User.Username).Msg("clearing session via front-channel logout")
		}

		if err := session.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete session")
		}
	}

	c.ClearCookie("session")

	return c.Redirect(handler.LoginPath)
}

// BackChannel handles provider-initiated logout (POST). No browser session
// context is trustworthy here, so the handler mutates the global
// invalidation registry and answers with a bare acknowledgment.
func (s *Service) BackChannel(c *fiber.Ctx) error {
	log.Info().
		Str("ip", c.IP()).
		Str("portal", s.info.Name).
		Str("user_agent", c.Get(fiber.HeaderUserAgent)).
		Str("content_type", c.Get(fiber.HeaderContentType)).
		Msg("back-channel logout received")

	if !s.info.Type.IsAdmin() {
		return s.serveSPAIndex(c, true)
	}

	// Best-effort: extract the targeted subject from the logout token. The
	// token is not verified; extraction failure means provider-wide logout.
	subject, extracted := auth.SubjectFromLogoutToken(c.FormValue("logout_token"))
	if extracted {
		log.Info().Str("subject", subject).Msg("back-channel logout targets subject")
		s.invalidated.Invalidate(subject)
	}

	// Best-effort: the back-channel call and a live session are otherwise
	// uncorrelated, but if this process context holds one, mark its subject.
	sessionID := c.Cookies("session")
	if sessionID != "" {
		sessData := new(session.Data)
		if err := sessData.Read(sessionID); err == nil && sessData.User.Subject != "" {
			s.invalidated.Invalidate(sessData.User.Subject)
			log.Info().Str("subject", sessData.User.Subject).Msg("added session subject to global logout registry")
		}
	}

	// Conservative fallback: invalidate everyone so any live session is
	// caught by the next guard check, even though this over-invalidates
	// unrelated users. Strict mode narrows this to the extracted subject.
	if !s.cfg.Auth.OIDC.StrictBackchannel || !extracted {
		s.invalidated.InvalidateAll()
	}

	// Defensive clear; normally a no-op since back-channel calls carry no
	// browser session.
	if sessionID != "" {
		if err := session.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete session")
		}
	}

	c.ClearCookie("session")

	return c.SendString(acknowledged)
}

// serveSPAIndex serves the portal index page with caching disabled so the
// SPA's own JavaScript can process the logout. Back-channel callers get a
// bare acknowledgment when the page is missing; front-channel callers get an
// error.
func (s *Service) serveSPAIndex(c *fiber.Ctx, backChannel bool) error {
	c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	c.Set("Pragma", "no-cache")
	c.Set("Expires", "0")

	if err := c.SendFile(filepath.Join(s.staticDir, "index.html")); err != nil {
		if backChannel {
			log.Warn().Str("portal", s.info.Name).Msg("index page not found, returning simple acknowledgment")
			return c.Status(fiber.StatusOK).SendString(acknowledged)
		}

		log.Error().Str("portal", s.info.Name).Str("static_dir", s.staticDir).Msg("portal not configured")

		return c.Status(fiber.StatusInternalServerError).
			SendString("Portal not configured - " + s.info.Name + " HTML files not found")
	}

	return nil
}
