// Package auth provides the authentication guard middleware for the web
// application.
//
// The guard wraps every protected route and runs before any handler reads
// or renders session-derived data. It validates session presence, checks
// the session's subject against the global invalidation registry (clearing
// the session when a marker is found) and redirects unauthenticated
// requests to the login page. On success it adds the current Identity to
// fiber.Locals and has no other side effects.
//
// Calling the check twice in a row with no intervening mutation yields the
// same result both times.
//
// Usage:
//
//	app.Use(authmiddleware.Middleware(invalidated))
//
// The middleware expects sessions to be managed by the session package and
// will redirect unauthenticated users to the login handler path.
package auth
