package identity

import (
	"context"
	"time"
)

// Store is the persistence collaborator the access gate reads identities
// from and appends access-log entries to. It does not own schema setup;
// migrations do.
type Store interface {
	Create(ctx context.Context, ident *Identity) error
	Find(ctx context.Context, id string) (*Identity, error)
	FindByEmail(ctx context.Context, email string) (*Identity, error)
	UpdateRole(ctx context.Context, id string, role Role) error

	// UpdatePassword replaces the password hash and clears any
	// outstanding reset challenge in the same statement.
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// SetResetChallenge replaces the identity's reset challenge; a newer
	// forgot-password request overwrites the previous code.
	SetResetChallenge(ctx context.Context, id, code string, expiresAt time.Time) error

	AppendAccessLog(ctx context.Context, entry *AccessLogEntry) error
	ListAccessLog(ctx context.Context, limit int) ([]AccessLogView, error)
}
