package hotel

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

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

// Staff ---------------------------------------------------------------

const staffColumns = `id, name, email, phone_number, position, performance, created_at, updated_at`

func (s *PGStore) CreateStaff(ctx context.Context, st *Staff) error {
	if st.ID == "" {
		st.ID = ids.New()
	}
	perf, _ := json.Marshal(st.Performance)
	_, err := s.db.ExecContext(ctx,
		`insert into staff(id, name, email, phone_number, position, performance) values($1,$2,$3,$4,$5,$6)`,
		st.ID, st.Name, st.Email, st.PhoneNumber, st.Position, perf,
	)
	return err
}

func (s *PGStore) UpdateStaff(ctx context.Context, id string, upd StaffUpdate) (*Staff, error) {
	sets, args := []string{}, []any{}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.PhoneNumber != nil {
		add("phone_number", *upd.PhoneNumber)
	}
	if upd.Position != nil {
		add("position", *upd.Position)
	}
	if len(sets) == 0 {
		return nil, ErrInvalidInput
	}
	args = append(args, id)
	query := fmt.Sprintf(`update staff set %s, updated_at=now() where id=$%d`,
		strings.Join(sets, ", "), len(args))
	if err := s.execOne(ctx, query, args...); err != nil {
		return nil, err
	}
	return s.FindStaff(ctx, id)
}

func (s *PGStore) DeleteStaff(ctx context.Context, id string) error {
	return s.execOne(ctx, `delete from staff where id=$1`, id)
}

func (s *PGStore) FindStaff(ctx context.Context, id string) (*Staff, error) {
	row := s.db.QueryRowContext(ctx, `select `+staffColumns+` from staff where id=$1`, id)
	return scanStaff(row.Scan)
}

func (s *PGStore) ListStaff(ctx context.Context) ([]*Staff, error) {
	rows, err := s.db.QueryContext(ctx, `select `+staffColumns+` from staff order by created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Staff
	for rows.Next() {
		st, err := scanStaff(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func scanStaff(scan func(...any) error) (*Staff, error) {
	var (
		st   Staff
		perf []byte
	)
	if err := scan(&st.ID, &st.Name, &st.Email, &st.PhoneNumber, &st.Position, &perf, &st.CreatedAt, &st.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	_ = json.Unmarshal(perf, &st.Performance)
	return &st, nil
}

// Rooms ---------------------------------------------------------------

const roomColumns = `id, number, type, rate_cents, status, description, created_at, updated_at`

func (s *PGStore) CreateRoom(ctx context.Context, r *Room) error {
	if r.ID == "" {
		r.ID = ids.New()
	}
	if r.Status == "" {
		r.Status = RoomAvailable
	}
	_, err := s.db.ExecContext(ctx,
		`insert into rooms(id, number, type, rate_cents, status, description) values($1,$2,$3,$4,$5,$6)`,
		r.ID, r.Number, r.Type, r.RateCents, r.Status, r.Description,
	)
	return err
}

func (s *PGStore) UpdateRoom(ctx context.Context, id string, upd RoomUpdate) (*Room, error) {
	sets, args := []string{}, []any{}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if upd.Number != nil {
		add("number", *upd.Number)
	}
	if upd.Type != nil {
		add("type", *upd.Type)
	}
	if upd.RateCents != nil {
		add("rate_cents", *upd.RateCents)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if len(sets) == 0 {
		return nil, ErrInvalidInput
	}
	args = append(args, id)
	query := fmt.Sprintf(`update rooms set %s, updated_at=now() where id=$%d`,
		strings.Join(sets, ", "), len(args))
	if err := s.execOne(ctx, query, args...); err != nil {
		return nil, err
	}
	return s.FindRoom(ctx, id)
}

func (s *PGStore) DeleteRoom(ctx context.Context, id string) error {
	return s.execOne(ctx, `delete from rooms where id=$1`, id)
}

func (s *PGStore) FindRoom(ctx context.Context, id string) (*Room, error) {
	row := s.db.QueryRowContext(ctx, `select `+roomColumns+` from rooms where id=$1`, id)
	var r Room
	if err := row.Scan(&r.ID, &r.Number, &r.Type, &r.RateCents, &r.Status, &r.Description, &r.CreatedAt, &r.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *PGStore) ListRooms(ctx context.Context) ([]*Room, error) {
	rows, err := s.db.QueryContext(ctx, `select `+roomColumns+` from rooms order by number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Room
	for rows.Next() {
		var r Room
		if err := rows.Scan(&r.ID, &r.Number, &r.Type, &r.RateCents, &r.Status, &r.Description, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

// Services ------------------------------------------------------------

const serviceColumns = `id, name, description, price_cents, available, created_at, updated_at`

func (s *PGStore) CreateService(ctx context.Context, sv *Service) error {
	if sv.ID == "" {
		sv.ID = ids.New()
	}
	_, err := s.db.ExecContext(ctx,
		`insert into services(id, name, description, price_cents, available) values($1,$2,$3,$4,$5)`,
		sv.ID, sv.Name, sv.Description, sv.PriceCents, sv.Available,
	)
	return err
}

func (s *PGStore) UpdateService(ctx context.Context, id string, upd ServiceUpdate) (*Service, error) {
	sets, args := []string{}, []any{}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.PriceCents != nil {
		add("price_cents", *upd.PriceCents)
	}
	if upd.Available != nil {
		add("available", *upd.Available)
	}
	if len(sets) == 0 {
		return nil, ErrInvalidInput
	}
	args = append(args, id)
	query := fmt.Sprintf(`update services set %s, updated_at=now() where id=$%d`,
		strings.Join(sets, ", "), len(args))
	if err := s.execOne(ctx, query, args...); err != nil {
		return nil, err
	}
	return s.FindService(ctx, id)
}

func (s *PGStore) DeleteService(ctx context.Context, id string) error {
	return s.execOne(ctx, `delete from services where id=$1`, id)
}

func (s *PGStore) FindService(ctx context.Context, id string) (*Service, error) {
	row := s.db.QueryRowContext(ctx, `select `+serviceColumns+` from services where id=$1`, id)
	var sv Service
	if err := row.Scan(&sv.ID, &sv.Name, &sv.Description, &sv.PriceCents, &sv.Available, &sv.CreatedAt, &sv.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sv, nil
}

func (s *PGStore) ListServices(ctx context.Context) ([]*Service, error) {
	rows, err := s.db.QueryContext(ctx, `select `+serviceColumns+` from services order by name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Service
	for rows.Next() {
		var sv Service
		if err := rows.Scan(&sv.ID, &sv.Name, &sv.Description, &sv.PriceCents, &sv.Available, &sv.CreatedAt, &sv.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &sv)
	}
	return out, rows.Err()
}

// Guests --------------------------------------------------------------

const guestColumns = `id, name, email, phone_number, created_at, updated_at`

func (s *PGStore) CreateGuest(ctx context.Context, g *Guest) error {
	if g.ID == "" {
		g.ID = ids.New()
	}
	_, err := s.db.ExecContext(ctx,
		`insert into guests(id, name, email, phone_number) values($1,$2,$3,$4)`,
		g.ID, g.Name, strings.ToLower(strings.TrimSpace(g.Email)), g.PhoneNumber,
	)
	return err
}

func (s *PGStore) FindGuest(ctx context.Context, id string) (*Guest, error) {
	row := s.db.QueryRowContext(ctx, `select `+guestColumns+` from guests where id=$1`, id)
	var g Guest
	if err := row.Scan(&g.ID, &g.Name, &g.Email, &g.PhoneNumber, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (s *PGStore) ListGuests(ctx context.Context) ([]*Guest, error) {
	rows, err := s.db.QueryContext(ctx, `select `+guestColumns+` from guests order by created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Guest
	for rows.Next() {
		var g Guest
		if err := rows.Scan(&g.ID, &g.Name, &g.Email, &g.PhoneNumber, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &g)
	}
	return out, rows.Err()
}

func (s *PGStore) DeleteGuest(ctx context.Context, id string) error {
	return s.execOne(ctx, `delete from guests where id=$1`, id)
}

// Bookings ------------------------------------------------------------

const bookingColumns = `id, guest_id, room_id, check_in, check_out, status, created_at, updated_at`

func (s *PGStore) CreateBooking(ctx context.Context, b *Booking) error {
	if b.ID == "" {
		b.ID = ids.New()
	}
	if b.Status == "" {
		b.Status = BookingBooked
	}
	_, err := s.db.ExecContext(ctx,
		`insert into bookings(id, guest_id, room_id, check_in, check_out, status) values($1,$2,$3,$4,$5,$6)`,
		b.ID, b.GuestID, b.RoomID, b.CheckIn, b.CheckOut, b.Status,
	)
	return err
}

func (s *PGStore) UpdateBookingStatus(ctx context.Context, id, status string) (*Booking, error) {
	if err := s.execOne(ctx,
		`update bookings set status=$1, updated_at=now() where id=$2`, status, id); err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `select `+bookingColumns+` from bookings where id=$1`, id)
	var b Booking
	if err := row.Scan(&b.ID, &b.GuestID, &b.RoomID, &b.CheckIn, &b.CheckOut, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *PGStore) ListBookings(ctx context.Context) ([]*Booking, error) {
	rows, err := s.db.QueryContext(ctx, `select `+bookingColumns+` from bookings order by check_in desc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.GuestID, &b.RoomID, &b.CheckIn, &b.CheckOut, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

func (s *PGStore) BookingsForGuest(ctx context.Context, guestID string) ([]BookingSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`select b.id, coalesce(r.number, ''), b.check_in, b.check_out
		 from bookings b left join rooms r on r.id = b.room_id
		 where b.guest_id=$1 order by b.check_in desc`, guestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BookingSummary
	for rows.Next() {
		var sum BookingSummary
		if err := rows.Scan(&sum.BookingID, &sum.RoomNumber, &sum.CheckIn, &sum.CheckOut); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Settings ------------------------------------------------------------

func (s *PGStore) GetSettings(ctx context.Context) (Settings, error) {
	row := s.db.QueryRowContext(ctx,
		`select policy, notify_email, notify_sms, updated_at from settings where id=1`)
	var st Settings
	err := row.Scan(&st.Policy, &st.NotifyEmail, &st.NotifySMS, &st.UpdatedAt)
	if err == sql.ErrNoRows {
		def := DefaultSettings()
		if _, err := s.db.ExecContext(ctx,
			`insert into settings(id, policy, notify_email, notify_sms) values(1,$1,$2,$3)`,
			def.Policy, def.NotifyEmail, def.NotifySMS); err != nil {
			return Settings{}, err
		}
		return def, nil
	}
	if err != nil {
		return Settings{}, err
	}
	return st, nil
}

func (s *PGStore) UpdateSettings(ctx context.Context, st Settings) (Settings, error) {
	if _, err := s.db.ExecContext(ctx,
		`insert into settings(id, policy, notify_email, notify_sms) values(1,$1,$2,$3)
		 on conflict (id) do update set policy=$1, notify_email=$2, notify_sms=$3, updated_at=now()`,
		st.Policy, st.NotifyEmail, st.NotifySMS); err != nil {
		return Settings{}, err
	}
	return s.GetSettings(ctx)
}

func (s *PGStore) ResetSettings(ctx context.Context) (Settings, error) {
	return s.UpdateSettings(ctx, DefaultSettings())
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
