package oidc

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/enterprise-sso/sso-portal/internal/auth"
	"github.com/enterprise-sso/sso-portal/internal/config"
	"github.com/enterprise-sso/sso-portal/internal/portal"
	"github.com/enterprise-sso/sso-portal/internal/web/handler"
	"github.com/enterprise-sso/sso-portal/internal/web/session"
)

const (
	// LoginPath is the path to initiate OIDC login.
	LoginPath = handler.OIDCLoginPath

	// CallbackPath is the path for OIDC callback.
	CallbackPath = handler.RootPath + "auth/oidc/callback"

	// LogoutPath is the path for OIDC logout.
	LogoutPath = handler.RootPath + "auth/oidc/logout"

	stateTTL = 5 * time.Minute
)

// Service is the OIDC handler service.
type Service struct {
	handler.Service
	cfg          *config.Config
	info         portal.Info
	oidcProvider *auth.OIDCProvider
	invalidated  *auth.InvalidationSet

	stateMu    sync.Mutex
	stateStore map[string]time.Time // in-memory state store, swept by cleanupStates
	sweepStop  chan struct{}        // closed on app shutdown to end the sweep
}

// Handler is the OIDC handler.
var Handler = Service{
	stateStore: make(map[string]time.Time),
}

// Init initializes the OIDC handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, info portal.Info, invalidated *auth.InvalidationSet) {
	if app == nil || cfg == nil || invalidated == nil {
		log.Fatal().Msg(handler.ErrNilACFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.info = info
	s.invalidated = invalidated

	// Initialize OIDC provider if enabled
	if cfg.Auth.OIDC.Enabled {
		oidcConfig := auth.OIDCConfig{
			Enabled:           cfg.Auth.OIDC.Enabled,
			IssuerURL:         cfg.Auth.OIDC.IssuerURL,
			ClientID:          cfg.Auth.OIDC.ClientID,
			RedirectURL:       cfg.Auth.OIDC.RedirectURL,
			Scopes:            cfg.Auth.OIDC.Scopes,
			HTTPTimeout:       cfg.Auth.OIDC.HTTPTimeout,
			StrictBackchannel: cfg.Auth.OIDC.StrictBackchannel,
		}

		ctx := context.Background()

		oidcProvider, err := auth.NewOIDCProvider(ctx, &oidcConfig)
		if err != nil {
			if errors.Is(err, auth.ErrOIDCDisabled) {
				log.Info().Msg("OIDC authentication is disabled by configuration")
			} else {
				log.Warn().Err(err).Msg("Failed to initialize OIDC provider - OIDC authentication will be disabled")
			}

			return // Don't fail, just disable OIDC
		}

		s.oidcProvider = oidcProvider

		log.Info().Str("issuer", cfg.Auth.OIDC.IssuerURL).Msg("OIDC authentication provider initialized")

		// Register routes
		adminOnly := handler.RequireAdminPortal(info.Type)
		app.Get(LoginPath, adminOnly, s.Login)
		app.Get(CallbackPath, adminOnly, s.Callback)
		app.Get(LogoutPath, adminOnly, s.Logout)

		// Start the state cleanup goroutine; it runs until the app shuts down.
		s.sweepStop = make(chan struct{})
		app.Hooks().OnShutdown(func() error {
			close(s.sweepStop)
			return nil
		})

		go s.cleanupStates()
	}
}

// Configured reports whether the OIDC provider was initialized.
func (s *Service) Configured() bool {
	return s.oidcProvider != nil
}

// Login initiates the OIDC login flow.
func (s *Service) Login(c *fiber.Ctx) error {
	if s.oidcProvider == nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("OIDC authentication is not available")
	}

	// Generate state token for CSRF protection
	state, err := auth.GenerateStateToken()
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate state token")
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}

	s.storeState(state)

	// Redirect to OIDC provider
	return c.Redirect(s.oidcProvider.GetAuthURL(state))
}

// Callback handles the OIDC callback: it verifies the state token, runs the
// code exchange, creates the browser session and clears the caller's entry
// (and the wildcard) from the invalidation registry.
func (s *Service) Callback(c *fiber.Ctx) error {
	if s.oidcProvider == nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("OIDC authentication is not available")
	}

	// Get code and state from query parameters
	code := c.Query("code")
	state := c.Query("state")

	if code == "" || state == "" {
		log.Error().Msg("Missing code or state in OIDC callback")
		return c.Status(fiber.StatusBadRequest).SendString("Invalid callback parameters")
	}

	if !s.consumeState(state) {
		log.Error().Msg("Invalid or expired state token in OIDC callback")
		return c.Status(fiber.StatusBadRequest).SendString("Invalid state token")
	}

	// Exchange the code; a failed exchange is never retried, the user has to
	// restart the login flow.
	identity, accessToken, err := s.oidcProvider.HandleCallback(c.UserContext(), code)
	if err != nil {
		log.Error().Err(err).Msg("OIDC authentication failed")

		return s.renderAuthError(c, err)
	}

	// Create session
	sessionID, errSession := session.GenerateSessionID()
	if errSession != nil {
		log.Error().Err(errSession).Msg("Failed to generate session ID")
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}

	userSession := &session.Data{
		User:        *identity,
		AccessToken: accessToken,
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("Failed to write session")
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}

	// Set login cookie
	cookieSettings := &fiber.Cookie{
		Name:     "session",
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	// Re-login lifts the subject's global invalidation marker (and any
	// wildcard) as part of the Anonymous -> Authenticated transition.
	s.invalidated.Clear(identity.Subject)

	log.Info().Str("username", identity.Username).Str("subject", identity.Subject).
		Msg("User logged in successfully via OIDC")

	return c.Redirect(handler.DashboardPath)
}

// renderAuthError renders the generic authentication-failure page. Provider
// error detail stays in the logs; the page only carries a summary.
func (s *Service) renderAuthError(c *fiber.Ctx, err error) error {
	message := "Authentication failed"
	if errors.Is(err, auth.ErrNoClaims) {
		message = "Authentication failed - no user information received"
	}

	return c.Status(fiber.StatusUnauthorized).Render("error", fiber.Map{
		"Title":      s.cfg.Title,
		"PortalInfo": s.info,
		"Error":      message,
	}, handler.BaseLayout)
}

// Logout clears the browser session and sends the user to the provider's
// end-session endpoint, which redirects back to the login page afterwards.
func (s *Service) Logout(c *fiber.Ctx) error {
	sessionID := c.Cookies("session")
	if sessionID != "" {
		if err := session.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete session")
		}
	}

	c.ClearCookie("session")

	if s.oidcProvider != nil {
		postLogoutRedirectURI := s.cfg.Auth.OIDC.PostLogoutRedirectURL
		if postLogoutRedirectURI == "" {
			postLogoutRedirectURI = s.cfg.Webserver.URL + handler.LoginPath
		}

		if logoutURL := s.oidcProvider.EndSessionURL(postLogoutRedirectURI); logoutURL != "" {
			return c.Redirect(logoutURL)
		}
	}

	// Redirect to login page
	return c.Redirect(handler.LoginPath)
}

// storeState records a state token with its expiry.
func (s *Service) storeState(state string) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	s.stateStore[state] = time.Now().Add(stateTTL)
}

// consumeState removes the state token and reports whether it was present
// and unexpired. Each token is single-use.
func (s *Service) consumeState(state string) bool {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	expiration, exists := s.stateStore[state]
	if !exists {
		return false
	}

	delete(s.stateStore, state)

	return time.Now().Before(expiration)
}

// cleanupStates periodically removes expired state tokens until the app
// shuts down.
func (s *Service) cleanupStates() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.sweepStop:
			return
		case <-ticker.C:
			now := time.Now()

			s.stateMu.Lock()
			for state, expiration := range s.stateStore {
				if now.After(expiration) {
					delete(s.stateStore, state)
				}
			}
			s.stateMu.Unlock()
		}
	}
}
