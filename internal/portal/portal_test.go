package portal

import "testing"

func TestTypeValid(t *testing.T) {
	for _, pt := range []Type{TypeInternal, TypeExternal, TypeAdmin} {
		if !pt.Valid() {
			t.Errorf("expected %q to be valid", pt)
		}
	}

	for _, pt := range []Type{"", "kiosk", "Admin"} {
		if pt.Valid() {
			t.Errorf("expected %q to be invalid", pt)
		}
	}
}

func TestTypeIsAdmin(t *testing.T) {
	if !TypeAdmin.IsAdmin() {
		t.Error("admin type must report IsAdmin")
	}

	if TypeInternal.IsAdmin() || TypeExternal.IsAdmin() {
		t.Error("SPA portal types must not report IsAdmin")
	}
}

func TestInfoFor(t *testing.T) {
	info := InfoFor(TypeAdmin)
	if info.Type != TypeAdmin || info.Name != "Admin Dashboard" {
		t.Errorf("unexpected admin info: %+v", info)
	}

	// Unknown types fall back to the internal portal.
	if got := InfoFor("kiosk"); got.Type != TypeInternal {
		t.Errorf("expected internal fallback, got %+v", got)
	}
}

func TestStaticDir_OverrideWins(t *testing.T) {
	if got := StaticDir(TypeAdmin, "/custom/dir"); got != "/custom/dir" {
		t.Errorf("expected override to win, got %q", got)
	}
}

func TestStaticDir_PerPortalDefaults(t *testing.T) {
	// The dev mount doesn't exist in the test environment, so the baked-in
	// per-portal directories apply.
	cases := map[Type]string{
		TypeInternal: "/app/internal-portal",
		TypeExternal: "/app/external-portal",
		TypeAdmin:    "/app/admin-dashboard",
	}

	for pt, want := range cases {
		if got := StaticDir(pt, ""); got != want {
			t.Errorf("StaticDir(%q) = %q, want %q", pt, got, want)
		}
	}

	if got := StaticDir("kiosk", ""); got != "/app/internal-portal" {
		t.Errorf("expected internal fallback, got %q", got)
	}
}
