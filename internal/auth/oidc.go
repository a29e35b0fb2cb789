package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/oauth2"
)

// defaultHTTPTimeout bounds every provider round trip when the config
// doesn't set one. The exchange path must never hang indefinitely.
const defaultHTTPTimeout = 10 * time.Second

// OIDCConfig holds OpenID Connect (OIDC) configuration for authentication.
type OIDCConfig struct {
	// Enabled indicates if OIDC authentication is enabled.
	Enabled bool
	// IssuerURL is the provider's realm issuer used for discovery
	// (e.g., "http://localhost:8080/realms/enterprise-sso").
	IssuerURL string
	// ClientID is the OAuth2 client identifier. The portal is a public
	// client; there is no client secret.
	ClientID string
	// RedirectURL is the OAuth2 callback URL where the provider redirects
	// after authentication.
	RedirectURL string
	// Scopes are the OAuth2 scopes to request (default: ["openid", "profile", "email"]).
	Scopes []string
	// HTTPTimeout bounds each HTTP round trip to the provider (discovery,
	// token exchange, userinfo). Defaults to 10s.
	HTTPTimeout time.Duration
	// StrictBackchannel narrows back-channel invalidation to the subject
	// extracted from the logout token instead of the wildcard fallback.
	// Off by default for parity with the reference behavior.
	StrictBackchannel bool
}

// OIDCProvider handles OIDC authentication against the identity provider.
type OIDCProvider struct {
	config   *OIDCConfig
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
	oauth2   oauth2.Config
	client   *http.Client
}

// NewOIDCProvider creates a new OIDC provider using discovery on the
// configured issuer.
func NewOIDCProvider(ctx context.Context, config *OIDCConfig) (*OIDCProvider, error) {
	if !config.Enabled {
		return nil, ErrOIDCDisabled
	}

	timeout := config.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	client := cleanhttp.DefaultPooledClient()
	client.Timeout = timeout

	provider, err := oidc.NewProvider(oidc.ClientContext(ctx, client), config.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID: config.ClientID,
	})

	scopes := config.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}

	oauth2Config := oauth2.Config{
		ClientID:    config.ClientID,
		RedirectURL: config.RedirectURL,
		Endpoint:    provider.Endpoint(),
		Scopes:      scopes,
	}

	return &OIDCProvider{
		config:   config,
		provider: provider,
		verifier: verifier,
		oauth2:   oauth2Config,
		client:   client,
	}, nil
}

// GenerateStateToken generates a random state token for CSRF protection.
func GenerateStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(b), nil
}

// GetAuthURL returns the OIDC authorization URL with state token.
func (p *OIDCProvider) GetAuthURL(state string) string {
	return p.oauth2.AuthCodeURL(state)
}

// claimSet covers the claims consumed from the ID token and the userinfo
// endpoint.
type claimSet struct {
	Sub               string `json:"sub"`
	PreferredUsername string `json:"preferred_username"`
	Email             string `json:"email"`
	Name              string `json:"name"`
	RealmAccess       struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
}

// HandleCallback exchanges the authorization code for tokens and returns the
// authenticated identity together with the opaque access token.
//
// Claims are read from the verified ID token when the provider sends one;
// otherwise the userinfo endpoint is asked with the access token. A rejected
// exchange yields ErrProviderRejected, a successful exchange without any
// claims payload yields ErrNoClaims.
func (p *OIDCProvider) HandleCallback(ctx context.Context, code string) (*Identity, string, error) {
	ctx = oidc.ClientContext(ctx, p.client)

	oauth2Token, err := p.oauth2.Exchange(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrProviderRejected, err)
	}

	claims, err := p.claimsFromToken(ctx, oauth2Token)
	if err != nil {
		return nil, "", err
	}

	if claims.Sub == "" {
		return nil, "", ErrNoClaims
	}

	return identityFromClaims(claims), oauth2Token.AccessToken, nil
}

// claimsFromToken extracts user claims from the token response, preferring
// the verified ID token and falling back to the userinfo endpoint.
func (p *OIDCProvider) claimsFromToken(ctx context.Context, oauth2Token *oauth2.Token) (*claimSet, error) {
	claims := new(claimSet)

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if ok && rawIDToken != "" {
		idToken, err := p.verifier.Verify(ctx, rawIDToken)
		if err != nil {
			return nil, fmt.Errorf("failed to verify ID token: %w", err)
		}

		if err = idToken.Claims(claims); err != nil {
			return nil, fmt.Errorf("failed to parse claims: %w", err)
		}

		return claims, nil
	}

	// No ID token in the response; ask the userinfo endpoint instead.
	userInfo, err := p.provider.UserInfo(ctx, oauth2.StaticTokenSource(oauth2Token))
	if err != nil {
		return nil, fmt.Errorf("%w: userinfo request failed: %v", ErrNoClaims, err)
	}

	if err = userInfo.Claims(claims); err != nil {
		return nil, fmt.Errorf("failed to parse user info claims: %w", err)
	}

	if claims.Sub == "" {
		claims.Sub = userInfo.Subject
	}

	return claims, nil
}

// identityFromClaims maps provider claims to the Identity shape.
func identityFromClaims(claims *claimSet) *Identity {
	name := claims.Name
	if name == "" {
		name = claims.PreferredUsername
	}

	return &Identity{
		Subject:  claims.Sub,
		Username: claims.PreferredUsername,
		Email:    claims.Email,
		Name:     name,
		Roles:    claims.RealmAccess.Roles,
	}
}

// EndSessionURL constructs the provider's logout URL if supported. It points
// the provider back to postLogoutRedirectURI after the provider session was
// ended. Returns an empty string if the provider doesn't advertise an
// end-session endpoint.
func (p *OIDCProvider) EndSessionURL(postLogoutRedirectURI string) string {
	var claims struct {
		EndSessionEndpoint string `json:"end_session_endpoint"`
	}

	if err := p.provider.Claims(&claims); err != nil || claims.EndSessionEndpoint == "" {
		return ""
	}

	params := url.Values{}
	params.Set("client_id", p.config.ClientID)
	params.Set("post_logout_redirect_uri", postLogoutRedirectURI)

	return claims.EndSessionEndpoint + "?" + params.Encode()
}

// StrictBackchannel reports whether back-channel invalidation should be
// narrowed to the extracted subject.
func (p *OIDCProvider) StrictBackchannel() bool {
	return p.config.StrictBackchannel
}
