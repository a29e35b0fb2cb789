// Package oidc provides handlers for the OpenID Connect (OIDC)
// authentication flow of the admin portal.
//
// The flow includes:
//   - Login initiation with CSRF protection via single-use state tokens
//   - Authorization callback handling with code exchange and claims mapping
//   - Session creation and cookie management
//   - Clearing the caller's global invalidation marker on successful re-login
//   - Logout with provider end-session support
//
// The portal is a public client: the authorization redirect carries the
// client identifier, response type "code" and the requested scopes, never a
// client secret.
//
// Routes (admin portal only, 404 elsewhere):
//
//	GET  /auth/oidc/login    - Initiate OIDC login flow
//	GET  /auth/oidc/callback - Handle provider callback
//	GET  /auth/oidc/logout   - Logout and end the provider session
package oidc
