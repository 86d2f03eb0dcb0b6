package identity

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"harborview.org/internal/ids"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store on PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

const identityColumns = `id, name, email, password_hash, role, reset_code, reset_expires_at, created_at, updated_at`

func (s *PGStore) Create(ctx context.Context, ident *Identity) error {
	if !ident.Role.Valid() {
		return ErrInvalidInput
	}
	if ident.ID == "" {
		ident.ID = ids.New()
	}
	ident.Email = strings.ToLower(strings.TrimSpace(ident.Email))
	_, err := s.db.ExecContext(ctx,
		`insert into identities(id, name, email, password_hash, role) values($1,$2,$3,$4,$5)`,
		ident.ID, ident.Name, ident.Email, ident.PasswordHash, string(ident.Role),
	)
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrAlreadyExists
	}
	return err
}

func (s *PGStore) Find(ctx context.Context, id string) (*Identity, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+identityColumns+` from identities where id=$1`, id)
	return scanIdentity(row)
}

func (s *PGStore) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+identityColumns+` from identities where email=$1`,
		strings.ToLower(strings.TrimSpace(email)))
	return scanIdentity(row)
}

func (s *PGStore) UpdateRole(ctx context.Context, id string, role Role) error {
	if !role.Valid() {
		return ErrInvalidInput
	}
	return s.execOne(ctx,
		`update identities set role=$1, updated_at=now() where id=$2`,
		string(role), id)
}

func (s *PGStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return s.execOne(ctx,
		`update identities set password_hash=$1, reset_code='', reset_expires_at=null, updated_at=now() where id=$2`,
		passwordHash, id)
}

func (s *PGStore) SetResetChallenge(ctx context.Context, id, code string, expiresAt time.Time) error {
	return s.execOne(ctx,
		`update identities set reset_code=$1, reset_expires_at=$2, updated_at=now() where id=$3`,
		code, expiresAt, id)
}

func (s *PGStore) AppendAccessLog(ctx context.Context, entry *AccessLogEntry) error {
	if entry.ID == "" {
		entry.ID = ids.New()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`insert into access_log(id, identity_id, action, occurred_at) values($1,$2,$3,$4)`,
		entry.ID, entry.IdentityID, entry.Action, entry.OccurredAt,
	)
	return err
}

func (s *PGStore) ListAccessLog(ctx context.Context, limit int) ([]AccessLogView, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := s.db.QueryContext(ctx,
		`select l.id, l.identity_id, l.action, l.occurred_at, coalesce(i.name, ''), coalesce(i.email, '')
		 from access_log l left join identities i on i.id = l.identity_id
		 order by l.occurred_at desc limit $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AccessLogView
	for rows.Next() {
		var v AccessLogView
		if err := rows.Scan(&v.ID, &v.IdentityID, &v.Action, &v.OccurredAt, &v.ActorName, &v.ActorEmail); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *PGStore) execOne(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanIdentity(row *sql.Row) (*Identity, error) {
	var (
		ident    Identity
		role     string
		resetExp sql.NullTime
	)
	err := row.Scan(&ident.ID, &ident.Name, &ident.Email, &ident.PasswordHash,
		&role, &ident.ResetCode, &resetExp, &ident.CreatedAt, &ident.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	ident.Role = Role(role)
	if resetExp.Valid {
		ident.ResetExpiresAt = resetExp.Time
	}
	return &ident, nil
}
