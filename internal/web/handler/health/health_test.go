package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enterprise-sso/sso-portal/internal/auth"
	"github.com/enterprise-sso/sso-portal/internal/config"
	"github.com/enterprise-sso/sso-portal/internal/portal"
)

func alwaysAlive() bool { return true }

func healthReport(t *testing.T, app *fiber.App, sessionID string) map[string]any {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, Path, nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: sessionID})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))

	return report
}

func TestGet_AdminPortal(t *testing.T) {
	app := fiber.New()
	invalidated := auth.NewInvalidationSet()
	invalidated.Invalidate("sub-1")
	invalidated.InvalidateAll()

	var s Service
	s.Init(app, &config.Config{}, portal.InfoFor(portal.TypeAdmin), invalidated,
		"/app/admin-dashboard", func() bool { return true }, alwaysAlive)

	report := healthReport(t, app, "sid-1")

	assert.Equal(t, "healthy", report["status"])
	assert.Equal(t, "admin", report["portal"])
	assert.Equal(t, "Admin Dashboard", report["name"])

	adminStatus, ok := report["admin_status"].(map[string]any)
	require.True(t, ok, "admin portal must report admin_status")

	assert.Equal(t, true, adminStatus["session_active"])
	assert.Equal(t, true, adminStatus["oidc_configured"])
	assert.Equal(t, float64(2), adminStatus["invalidated_markers"])
}

func TestGet_AdminPortalWithoutSession(t *testing.T) {
	app := fiber.New()

	var s Service
	s.Init(app, &config.Config{}, portal.InfoFor(portal.TypeAdmin), auth.NewInvalidationSet(),
		"/app/admin-dashboard", func() bool { return false }, alwaysAlive)

	report := healthReport(t, app, "")

	adminStatus, ok := report["admin_status"].(map[string]any)
	require.True(t, ok)

	assert.Equal(t, false, adminStatus["session_active"])
	assert.Equal(t, false, adminStatus["oidc_configured"])
	assert.Equal(t, float64(0), adminStatus["invalidated_markers"])
}

func TestGet_SPAPortalReportsFiles(t *testing.T) {
	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html/>"), 0o600))

	app := fiber.New()

	var s Service
	s.Init(app, &config.Config{}, portal.InfoFor(portal.TypeInternal), auth.NewInvalidationSet(),
		staticDir, nil, alwaysAlive)

	report := healthReport(t, app, "")

	assert.Equal(t, "internal", report["portal"])
	assert.Equal(t, true, report["files_exist"])
	assert.Nil(t, report["admin_status"])
}

func TestGet_Draining(t *testing.T) {
	app := fiber.New()

	var s Service
	s.Init(app, &config.Config{}, portal.InfoFor(portal.TypeAdmin), auth.NewInvalidationSet(),
		"/app/admin-dashboard", nil, func() bool { return false })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, Path, nil), -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestGet_SPAPortalMissingFiles(t *testing.T) {
	app := fiber.New()

	var s Service
	s.Init(app, &config.Config{}, portal.InfoFor(portal.TypeExternal), auth.NewInvalidationSet(),
		t.TempDir(), nil, alwaysAlive)

	report := healthReport(t, app, "")

	assert.Equal(t, false, report["files_exist"])
}
