package auth

// Package auth contains domain-level types for portal sessions and roles.
// It is pure and free of framework/adapter concerns.

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of portal roles. Wire values are the upper-case
// strings exchanged with the Learnix backend; casing is normalized at the
// parsing boundary.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTeacher Role = "TEACHER"
	RoleAdmin   Role = "ADMIN"
)

// Roles lists every valid role in a stable order.
func Roles() []Role {
	return []Role{RoleStudent, RoleTeacher, RoleAdmin}
}

// ParseRole maps a wire value onto the closed enumeration. It accepts any
// casing and surrounding whitespace; anything outside the enumeration is an
// error rather than a silent fall-through.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleTeacher:
		return RoleTeacher, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether r is a member of the closed enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	default:
		return false
	}
}

// Identity is the stored representation of the logged-in user, either
// received from the backend at login or decoded from the bearer token's
// claims. A decoded identity is provisional: the backend remains the
// authorization authority and will reject the token if it is stale.
type Identity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Session pairs an identity with the bearer credential proving it to the
// backend. A session is either fully authenticated (both set) or fully
// anonymous (both empty); no partial state exists.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Identity  *Identity `json:"identity,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Anonymous returns the empty, unauthenticated session.
func Anonymous() Session { return Session{} }

// IsAnonymous reports whether the session carries no authenticated identity.
func (s Session) IsAnonymous() bool { return s.Identity == nil }

// HasRole reports whether the session is authenticated with the given role.
func (s Session) HasRole(r Role) bool {
	return s.Identity != nil && s.Identity.Role == r
}

// CheckInvariant verifies that identity and credential are set together.
// Adapters call it after reconstructing a session from storage.
func (s Session) CheckInvariant() error {
	if (s.Identity == nil) != (s.Token == "") {
		return fmt.Errorf("session %q violates identity/credential pairing", s.ID)
	}
	return nil
}
