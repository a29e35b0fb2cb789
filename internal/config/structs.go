package config

import (
	"time"

	"github.com/enterprise-sso/sso-portal/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Title     string
	Portal    Portal
	Auth      Auth
	Log       logger.Log
	Storage   Storage
	Webserver Webserver
}

// Portal selects which portal this process serves.
type Portal struct {
	Type      string `validate:"omitempty,oneof=internal external admin"` // internal, external or admin
	StaticDir string // explicit static dir override, empty = auto-resolve
}

// Auth groups the authentication sources.
type Auth struct {
	OIDC OIDCAuth
}

// OIDCAuth implements the OIDC provider settings. The portal is a public
// client, so there is no client secret to configure.
type OIDCAuth struct {
	Enabled               bool
	IssuerURL             string `validate:"required_if=Enabled true"` // realm issuer URL used for discovery
	ClientID              string `validate:"required_if=Enabled true"`
	RedirectURL           string `validate:"required_if=Enabled true"` // callback URL registered at the provider
	Scopes                []string
	PostLogoutRedirectURL string        // where the provider sends the browser after end-session
	HTTPTimeout           time.Duration // per-request timeout for provider calls
	StrictBackchannel     bool          // narrow back-channel invalidation to the extracted subject
}

// Storage selects the session storage backend.
type Storage struct {
	Backend string `validate:"omitempty,oneof=memory redis"` // memory (default) or redis
	Redis   Redis
}

// Redis connection settings for the redis session backend.
type Redis struct {
	Host     string
	Port     int
	Username string
	Password string
	Database int
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic bool    // enable static file browsing (for development purposes only)
	Domain       string  // domain name for the webserver
	Port         int     `validate:"required"` // listening port for the webserver
	ShutDownTime int     // wait time for shutdown
	URL          string  `validate:"required"` // base url for the webserver
	Session      Session // session settings
}
