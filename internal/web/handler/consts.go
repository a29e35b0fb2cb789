package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// ErrNilACFatalLogMsg is used if app or cfg var pointer is nil.
	ErrNilACFatalLogMsg = "app or cfg is nil"

	// NotOnThisPortalMsg is the body returned when an admin-only route is
	// requested on a non-admin portal. Surfaced as not-found, not as an
	// authentication error.
	NotOnThisPortalMsg = "Not available on this portal"

	// LoginPath is the path to the login page. The handlers redirect to each
	// other's pages, so the paths live here instead of their own packages.
	LoginPath = RootPath + "login"

	// DashboardPath is the path to the dashboard page.
	DashboardPath = RootPath + "dashboard"

	// OIDCLoginPath is the path that initiates the OIDC login flow.
	OIDCLoginPath = RootPath + "auth/oidc/login"
)
