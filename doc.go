// Package main provides the entry point for the SSO portal application.
// It initializes and runs a web server using the Fiber framework that fronts
// three browser portals (internal, external and admin) behind a Keycloak
// OpenID Connect realm, handling login, session management and both
// front-channel and back-channel single logout.
package main
