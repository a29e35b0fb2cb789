package auth

import (
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

func signedLogoutToken(t *testing.T, subject string) string {
	t.Helper()

	builder := jwt.NewBuilder().
		Issuer("http://localhost:8080/realms/enterprise-sso").
		Audience([]string{"admin-dashboard"}).
		IssuedAt(time.Now()).
		Claim("events", map[string]any{
			"http://schemas.openid.net/event/backchannel-logout": map[string]any{},
		})

	if subject != "" {
		builder = builder.Subject(subject)
	}

	token, err := builder.Build()
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte("not-checked")))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	return string(signed)
}

func TestSubjectFromLogoutToken(t *testing.T) {
	subject, ok := SubjectFromLogoutToken(signedLogoutToken(t, "f47ac10b-58cc"))
	if !ok || subject != "f47ac10b-58cc" {
		t.Fatalf("expected subject f47ac10b-58cc, got %q ok=%v", subject, ok)
	}
}

func TestSubjectFromLogoutToken_NoSubjectClaim(t *testing.T) {
	// A logout token may carry a sid instead of a sub; extraction then fails
	// and the caller falls back to the wildcard.
	if subject, ok := SubjectFromLogoutToken(signedLogoutToken(t, "")); ok {
		t.Fatalf("expected extraction failure, got %q", subject)
	}
}

func TestSubjectFromLogoutToken_Malformed(t *testing.T) {
	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		if subject, ok := SubjectFromLogoutToken(raw); ok {
			t.Fatalf("expected extraction failure for %q, got %q", raw, subject)
		}
	}
}

func TestSubjectFromLogoutToken_IgnoresExpiry(t *testing.T) {
	// The token is parsed without validation, so an expired notification is
	// still honored.
	token, err := jwt.NewBuilder().
		Subject("expired-user").
		Expiration(time.Now().Add(-time.Hour)).
		Build()
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte("not-checked")))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	subject, ok := SubjectFromLogoutToken(string(signed))
	if !ok || subject != "expired-user" {
		t.Fatalf("expected expired-user, got %q ok=%v", subject, ok)
	}
}
