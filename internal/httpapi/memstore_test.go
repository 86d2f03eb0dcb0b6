package httpapi

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"harborview.org/internal/hotel"
	"harborview.org/internal/identity"
	"harborview.org/internal/ids"
	"harborview.org/internal/mailer"
	"harborview.org/internal/provider"
)

// memIdentityStore is an in-memory identity.Store for handler tests.
type memIdentityStore struct {
	mu      sync.Mutex
	byID    map[string]*identity.Identity
	entries []identity.AccessLogEntry

	// failAppend makes AppendAccessLog fail, for best-effort tests.
	failAppend bool
}

func newMemIdentityStore() *memIdentityStore {
	return &memIdentityStore{byID: map[string]*identity.Identity{}}
}

func (m *memIdentityStore) Create(_ context.Context, ident *identity.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == ident.Email {
			return identity.ErrAlreadyExists
		}
	}
	if ident.ID == "" {
		ident.ID = ids.New()
	}
	now := time.Now().UTC()
	ident.CreatedAt, ident.UpdatedAt = now, now
	cp := *ident
	m.byID[ident.ID] = &cp
	return nil
}

func (m *memIdentityStore) Find(_ context.Context, id string) (*identity.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ident, ok := m.byID[id]
	if !ok {
		return nil, identity.ErrNotFound
	}
	cp := *ident
	return &cp, nil
}

func (m *memIdentityStore) FindByEmail(_ context.Context, email string) (*identity.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ident := range m.byID {
		if ident.Email == strings.ToLower(email) {
			cp := *ident
			return &cp, nil
		}
	}
	return nil, identity.ErrNotFound
}

func (m *memIdentityStore) UpdateRole(_ context.Context, id string, role identity.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ident, ok := m.byID[id]
	if !ok {
		return identity.ErrNotFound
	}
	ident.Role = role
	ident.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *memIdentityStore) UpdatePassword(_ context.Context, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ident, ok := m.byID[id]
	if !ok {
		return identity.ErrNotFound
	}
	ident.PasswordHash = passwordHash
	ident.ResetCode = ""
	ident.ResetExpiresAt = time.Time{}
	ident.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *memIdentityStore) SetResetChallenge(_ context.Context, id, code string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ident, ok := m.byID[id]
	if !ok {
		return identity.ErrNotFound
	}
	ident.ResetCode = code
	ident.ResetExpiresAt = expiresAt
	return nil
}

func (m *memIdentityStore) AppendAccessLog(_ context.Context, entry *identity.AccessLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAppend {
		return errors.New("append failed")
	}
	if entry.ID == "" {
		entry.ID = ids.New()
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memIdentityStore) ListAccessLog(_ context.Context, limit int) ([]identity.AccessLogView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	views := make([]identity.AccessLogView, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0 && len(views) < limit; i-- {
		e := m.entries[i]
		v := identity.AccessLogView{AccessLogEntry: e}
		if ident, ok := m.byID[e.IdentityID]; ok {
			v.ActorName, v.ActorEmail = ident.Name, ident.Email
		}
		views = append(views, v)
	}
	return views, nil
}

func (m *memIdentityStore) logEntries() []identity.AccessLogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]identity.AccessLogEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// memHotelStore is an in-memory hotel.Store for handler tests.
type memHotelStore struct {
	mu       sync.Mutex
	staff    map[string]*hotel.Staff
	rooms    map[string]*hotel.Room
	services map[string]*hotel.Service
	guests   map[string]*hotel.Guest
	bookings map[string]*hotel.Booking
	settings *hotel.Settings
}

func newMemHotelStore() *memHotelStore {
	return &memHotelStore{
		staff:    map[string]*hotel.Staff{},
		rooms:    map[string]*hotel.Room{},
		services: map[string]*hotel.Service{},
		guests:   map[string]*hotel.Guest{},
		bookings: map[string]*hotel.Booking{},
	}
}

func (m *memHotelStore) CreateStaff(_ context.Context, s *hotel.Staff) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = ids.New()
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	cp := *s
	m.staff[s.ID] = &cp
	return nil
}

func (m *memHotelStore) UpdateStaff(_ context.Context, id string, upd hotel.StaffUpdate) (*hotel.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.staff[id]
	if !ok {
		return nil, hotel.ErrNotFound
	}
	if upd.Name == nil && upd.Email == nil && upd.PhoneNumber == nil && upd.Position == nil {
		return nil, hotel.ErrInvalidInput
	}
	if upd.Name != nil {
		st.Name = *upd.Name
	}
	if upd.Email != nil {
		st.Email = *upd.Email
	}
	if upd.PhoneNumber != nil {
		st.PhoneNumber = *upd.PhoneNumber
	}
	if upd.Position != nil {
		st.Position = *upd.Position
	}
	st.UpdatedAt = time.Now().UTC()
	cp := *st
	return &cp, nil
}

func (m *memHotelStore) DeleteStaff(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.staff[id]; !ok {
		return hotel.ErrNotFound
	}
	delete(m.staff, id)
	return nil
}

func (m *memHotelStore) FindStaff(_ context.Context, id string) (*hotel.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.staff[id]
	if !ok {
		return nil, hotel.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (m *memHotelStore) ListStaff(_ context.Context) ([]*hotel.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*hotel.Staff, 0, len(m.staff))
	for _, st := range m.staff {
		cp := *st
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memHotelStore) CreateRoom(_ context.Context, r *hotel.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = ids.New()
	if r.Status == "" {
		r.Status = hotel.RoomAvailable
	}
	now := time.Now().UTC()
	r.CreatedAt, r.UpdatedAt = now, now
	cp := *r
	m.rooms[r.ID] = &cp
	return nil
}

func (m *memHotelStore) UpdateRoom(_ context.Context, id string, upd hotel.RoomUpdate) (*hotel.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, hotel.ErrNotFound
	}
	if upd.Number == nil && upd.Type == nil && upd.RateCents == nil && upd.Status == nil && upd.Description == nil {
		return nil, hotel.ErrInvalidInput
	}
	if upd.Number != nil {
		r.Number = *upd.Number
	}
	if upd.Type != nil {
		r.Type = *upd.Type
	}
	if upd.RateCents != nil {
		r.RateCents = *upd.RateCents
	}
	if upd.Status != nil {
		r.Status = *upd.Status
	}
	if upd.Description != nil {
		r.Description = *upd.Description
	}
	r.UpdatedAt = time.Now().UTC()
	cp := *r
	return &cp, nil
}

func (m *memHotelStore) DeleteRoom(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[id]; !ok {
		return hotel.ErrNotFound
	}
	delete(m.rooms, id)
	return nil
}

func (m *memHotelStore) FindRoom(_ context.Context, id string) (*hotel.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, hotel.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memHotelStore) ListRooms(_ context.Context) ([]*hotel.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*hotel.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memHotelStore) CreateService(_ context.Context, sv *hotel.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sv.ID = ids.New()
	now := time.Now().UTC()
	sv.CreatedAt, sv.UpdatedAt = now, now
	cp := *sv
	m.services[sv.ID] = &cp
	return nil
}

func (m *memHotelStore) UpdateService(_ context.Context, id string, upd hotel.ServiceUpdate) (*hotel.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sv, ok := m.services[id]
	if !ok {
		return nil, hotel.ErrNotFound
	}
	if upd.Name == nil && upd.Description == nil && upd.PriceCents == nil && upd.Available == nil {
		return nil, hotel.ErrInvalidInput
	}
	if upd.Name != nil {
		sv.Name = *upd.Name
	}
	if upd.Description != nil {
		sv.Description = *upd.Description
	}
	if upd.PriceCents != nil {
		sv.PriceCents = *upd.PriceCents
	}
	if upd.Available != nil {
		sv.Available = *upd.Available
	}
	sv.UpdatedAt = time.Now().UTC()
	cp := *sv
	return &cp, nil
}

func (m *memHotelStore) DeleteService(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[id]; !ok {
		return hotel.ErrNotFound
	}
	delete(m.services, id)
	return nil
}

func (m *memHotelStore) FindService(_ context.Context, id string) (*hotel.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sv, ok := m.services[id]
	if !ok {
		return nil, hotel.ErrNotFound
	}
	cp := *sv
	return &cp, nil
}

func (m *memHotelStore) ListServices(_ context.Context) ([]*hotel.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*hotel.Service, 0, len(m.services))
	for _, sv := range m.services {
		cp := *sv
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memHotelStore) CreateGuest(_ context.Context, g *hotel.Guest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g.ID = ids.New()
	now := time.Now().UTC()
	g.CreatedAt, g.UpdatedAt = now, now
	cp := *g
	m.guests[g.ID] = &cp
	return nil
}

func (m *memHotelStore) FindGuest(_ context.Context, id string) (*hotel.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.guests[id]
	if !ok {
		return nil, hotel.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *memHotelStore) ListGuests(_ context.Context) ([]*hotel.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*hotel.Guest, 0, len(m.guests))
	for _, g := range m.guests {
		cp := *g
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memHotelStore) DeleteGuest(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.guests[id]; !ok {
		return hotel.ErrNotFound
	}
	delete(m.guests, id)
	return nil
}

func (m *memHotelStore) CreateBooking(_ context.Context, b *hotel.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = ids.New()
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *memHotelStore) UpdateBookingStatus(_ context.Context, id, status string) (*hotel.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, hotel.ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now().UTC()
	cp := *b
	return &cp, nil
}

func (m *memHotelStore) ListBookings(_ context.Context) ([]*hotel.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*hotel.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memHotelStore) BookingsForGuest(_ context.Context, guestID string) ([]hotel.BookingSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []hotel.BookingSummary
	for _, b := range m.bookings {
		if b.GuestID != guestID {
			continue
		}
		number := ""
		if r, ok := m.rooms[b.RoomID]; ok {
			number = r.Number
		}
		out = append(out, hotel.BookingSummary{
			BookingID:  b.ID,
			RoomNumber: number,
			CheckIn:    b.CheckIn,
			CheckOut:   b.CheckOut,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookingID < out[j].BookingID })
	return out, nil
}

func (m *memHotelStore) GetSettings(_ context.Context) (hotel.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil {
		s := hotel.DefaultSettings()
		s.UpdatedAt = time.Now().UTC()
		m.settings = &s
	}
	return *m.settings, nil
}

func (m *memHotelStore) UpdateSettings(_ context.Context, s hotel.Settings) (hotel.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.UpdatedAt = time.Now().UTC()
	m.settings = &s
	return s, nil
}

func (m *memHotelStore) ResetSettings(_ context.Context) (hotel.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := hotel.DefaultSettings()
	s.UpdatedAt = time.Now().UTC()
	m.settings = &s
	return s, nil
}

// capturingMailer records outbound email instead of sending it.
type capturingMailer struct {
	mu   sync.Mutex
	sent []mailer.Email
	fail bool
}

func (c *capturingMailer) Send(email mailer.Email) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("smtp unavailable")
	}
	c.sent = append(c.sent, email)
	return nil
}

func (c *capturingMailer) lastSent() (mailer.Email, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sent) == 0 {
		return mailer.Email{}, false
	}
	return c.sent[len(c.sent)-1], true
}

// stubGoogle resolves every token to a fixed profile.
type stubGoogle struct {
	profile provider.GoogleProfile
	err     error
}

func (s stubGoogle) Verify(context.Context, string) (provider.GoogleProfile, error) {
	if s.err != nil {
		return provider.GoogleProfile{}, s.err
	}
	return s.profile, nil
}
