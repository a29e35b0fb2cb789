package auth

import "errors"

var (
	// ErrOIDCDisabled is returned when OIDC is disabled via configuration.
	ErrOIDCDisabled = errors.New("oidc authentication is disabled")

	// ErrProviderRejected is returned when the identity provider rejects the
	// code exchange (bad or expired authorization code, state mismatch).
	// The user has to restart the login flow; the exchange is never retried.
	ErrProviderRejected = errors.New("identity provider rejected the token exchange")

	// ErrNoClaims is returned when the code exchange succeeds but neither the
	// ID token nor the userinfo endpoint yields a user-claims payload.
	ErrNoClaims = errors.New("no user claims received from identity provider")

	// ErrNoIDToken is returned when the OAuth2 token response doesn't contain
	// an ID token. The provider is then asked via the userinfo endpoint
	// before the callback gives up with ErrNoClaims.
	ErrNoIDToken = errors.New("no id_token in token response")
)
