package auth

// Identity is the result of a successful provider exchange. It contains
// identity facts only; no session or authorization decisions are made here.
// An Identity is immutable after creation and belongs to exactly one
// browser session.
type Identity struct {
	// Subject is the provider's stable unique identifier (the "sub" claim).
	Subject string
	// Username is the provider's "preferred_username" claim.
	Username string
	// Email is the user's email address.
	Email string
	// Name is the display name; falls back to Username if the provider
	// doesn't send a "name" claim.
	Name string
	// Roles holds the realm roles flattened from the nested
	// "realm_access.roles" claim. Possibly empty.
	Roles []string
}

// HasRole reports whether the identity carries the given realm role.
func (i *Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}

	return false
}

// HasAnyRole reports whether the identity carries at least one of the given
// realm roles.
func (i *Identity) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if i.HasRole(r) {
			return true
		}
	}

	return false
}
