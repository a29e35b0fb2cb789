// Package auth implements the authentication core of the portal server.
//
// The package contains three pieces:
//
//   - OIDCProvider performs the OpenID Connect authorization-code flow
//     against the identity provider as a public client (no client secret):
//     it builds the authorization redirect, exchanges the returned code for
//     tokens and maps the provider claims to an Identity.
//
//   - InvalidationSet is the process-wide registry of invalidated subjects.
//     Back-channel logout notifications write to it, every guard check reads
//     from it, and a successful re-login clears the caller's marker. A
//     wildcard marker invalidates every session at once.
//
//   - SubjectFromLogoutToken extracts the targeted subject from a
//     back-channel logout token. The token is parsed WITHOUT signature
//     verification; the back-channel endpoint treats it as trusted. This is
//     a documented shortcut of the reference behavior, not an oversight.
//
// # Identity lifecycle
//
// An Identity is created once per successful code exchange and is immutable
// afterwards. It is attached to exactly one browser session by the web
// layer. The state machine for a session is:
//
//	Anonymous --(successful exchange)--> Authenticated
//	Authenticated --(guard check with invalidation marker |
//	                 front-channel logout |
//	                 back-channel wildcard)--> Anonymous
//
// Re-entering Authenticated for a subject clears that subject's marker and
// the wildcard from the InvalidationSet as part of the transition.
//
// Example usage:
//
//	provider, err := auth.NewOIDCProvider(ctx, &auth.OIDCConfig{
//	    Enabled:     true,
//	    IssuerURL:   "http://localhost:8080/realms/enterprise-sso",
//	    ClientID:    "admin-dashboard",
//	    RedirectURL: "http://localhost:5000/auth/oidc/callback",
//	})
//
//	identity, token, err := provider.HandleCallback(ctx, code)
//	invalidated.Clear(identity.Subject)
package auth
