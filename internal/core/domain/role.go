package domain

// Role is the authorization level carried by a credential's `role` claim.
type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a claim value onto a known Role. Matching is exact: the
// second result is false unless the value is "guest", "user" or "admin".
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleGuest:
		return RoleGuest, true
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

func (r Role) String() string { return string(r) }

// Label is the short badge text shown next to the session in navigation.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleUser:
		return "User"
	default:
		return "Guest"
	}
}
