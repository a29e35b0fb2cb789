package auth

import (
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// SubjectFromLogoutToken extracts the "sub" claim from a back-channel logout
// token. The token is parsed without signature verification and without
// claim validation: the back-channel endpoint treats the notification as
// trusted, and a malformed token degrades to the wildcard fallback rather
// than failing the request.
func SubjectFromLogoutToken(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	token, err := jwt.ParseInsecure([]byte(raw))
	if err != nil {
		return "", false
	}

	sub := token.Subject()

	return sub, sub != ""
}
