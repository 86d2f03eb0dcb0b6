package identity

import (
	"fmt"
	"strings"
	"time"
)

// Role is the access level attached to an identity. Exactly three roles
// exist; anything else is rejected at the boundary.
type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleReceptionist Role = "Receptionist"
	RoleGuest        Role = "Guest"
)

// ParseRole normalizes and validates a role string.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "receptionist":
		return RoleReceptionist, nil
	case "guest":
		return RoleGuest, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
	}
}

// Valid reports whether the role is one of the three known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleReceptionist || r == RoleGuest
}

func (r Role) String() string { return string(r) }

// Identity is a registered actor. PasswordHash is empty for identities
// created through federated login only.
type Identity struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Reset challenge, set by a forgot-password request and cleared by a
	// successful reset. Zero values mean no challenge outstanding.
	ResetCode      string    `json:"-"`
	ResetExpiresAt time.Time `json:"-"`
}

// Federated reports whether the identity can only sign in through an
// external provider.
func (i *Identity) Federated() bool { return i.PasswordHash == "" }

// AccessLogEntry is one immutable audit record: who did what, when.
type AccessLogEntry struct {
	ID         string    `json:"id"`
	IdentityID string    `json:"identity_id"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AccessLogView is an AccessLogEntry joined with the acting identity's
// name and email for display on the system-logs screen.
type AccessLogView struct {
	AccessLogEntry
	ActorName  string `json:"actor_name"`
	ActorEmail string `json:"actor_email"`
}
