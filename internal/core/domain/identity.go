package domain

// Identity is the resolved result of verifying a bearer token and loading the
// matching user. It is constructed once per request, carried through the echo
// context, and discarded when the request ends. Never cache it.
type Identity struct {
	User *User
	Role string
}

// IsAdmin reports whether the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// Authorize checks the identity against a required role. An empty required
// role accepts any authenticated identity. A mismatch is ErrForbidden, which
// is distinct from the unauthenticated case: the caller is known, just not
// permitted.
func Authorize(identity *Identity, required string) error {
	if identity == nil || identity.User == nil {
		return ErrUnauthorized
	}
	if required == "" {
		return nil
	}
	if identity.Role != required {
		return ErrForbidden
	}
	return nil
}
