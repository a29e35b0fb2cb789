// Package session holds the authenticated-identity record of a single
// browser session. The record lives in a pluggable storage backend keyed by
// an opaque session ID carried in a cookie; the web layer owns the cookie,
// this package owns the get/set/clear contract.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage"

	"github.com/enterprise-sso/sso-portal/internal/auth"
)

// Store is the global session store instance.
var Store *session.Store

// Data represents the session data structure: at most one Identity plus the
// opaque provider access token. It is overwritten unconditionally on login
// and destroyed entirely on logout or failed re-validation.
type Data struct {
	User        auth.Identity
	AccessToken string
}

// Write installs the session data for the given session ID with an
// expiration duration, replacing any prior record.
func (s *Data) Write(sessionID string, exp time.Duration) error {
	out, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, exp)
}

// Read reads the session data for the given session ID.
func (s *Data) Read(sessionID string) error {
	byteData, err := Store.Storage.Get(sessionID)
	if err != nil {
		return err
	}

	return json.Unmarshal(byteData, s)
}

// Delete removes all state for the given session ID. Deleting an absent
// session is a no-op, never an error.
func Delete(sessionID string) error {
	if sessionID == "" {
		return nil
	}

	return Store.Storage.Delete(sessionID)
}

// Init initializes the session store with the provided storage backend.
func Init(storage storage.Storage) {
	if storage == nil {
		panic("storage is nil")
	}

	Store = session.New(session.Config{
		Storage: storage,
	})
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
