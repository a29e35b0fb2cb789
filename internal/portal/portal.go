// Package portal describes the portal variants the server can run as and
// their display metadata.
package portal

import "os"

// Type identifies which portal this process serves.
type Type string

const (
	// TypeInternal is the employee-facing SPA portal.
	TypeInternal Type = "internal"

	// TypeExternal is the partner-facing SPA portal.
	TypeExternal Type = "external"

	// TypeAdmin is the server-rendered admin dashboard protected by OIDC.
	TypeAdmin Type = "admin"
)

// Valid reports whether t names a known portal type.
func (t Type) Valid() bool {
	return t == TypeInternal || t == TypeExternal || t == TypeAdmin
}

// IsAdmin reports whether this portal serves the server-rendered admin
// dashboard.
func (t Type) IsAdmin() bool {
	return t == TypeAdmin
}

// Info is the display metadata of a portal, handed to templates and the
// /info endpoint.
type Info struct {
	Type        Type
	Name        string
	Description string
	Icon        string
}

var infoByType = map[Type]Info{
	TypeInternal: {
		Type:        TypeInternal,
		Name:        "Internal Portal",
		Description: "Employee Systems & Employee Services",
		Icon:        "🏢",
	},
	TypeExternal: {
		Type:        TypeExternal,
		Name:        "External Portal",
		Description: "Partner Organizations & Bank Interface",
		Icon:        "🌐",
	},
	TypeAdmin: {
		Type:        TypeAdmin,
		Name:        "Admin Dashboard",
		Description: "Management & Approval Workflows",
		Icon:        "⚙️",
	},
}

// InfoFor returns the display metadata for the given portal type. Unknown
// types fall back to the internal portal.
func InfoFor(t Type) Info {
	if info, ok := infoByType[t]; ok {
		return info
	}

	return infoByType[TypeInternal]
}

var staticDirByType = map[Type]string{
	TypeInternal: "/app/internal-portal",
	TypeExternal: "/app/external-portal",
	TypeAdmin:    "/app/admin-dashboard",
}

// devMountDir is checked first so a volume-mounted static dir wins during
// development.
const devMountDir = "/app/static"

// StaticDir resolves the static file directory for the given portal type.
// An explicit override from the configuration wins; otherwise the dev mount
// is used when present, falling back to the baked-in per-portal directory.
func StaticDir(t Type, override string) string {
	if override != "" {
		return override
	}

	if _, err := os.Stat(devMountDir + "/index.html"); err == nil {
		return devMountDir
	}

	if dir, ok := staticDirByType[t]; ok {
		return dir
	}

	return staticDirByType[TypeInternal]
}
