package hotel

import "context"

// StaffUpdate carries optional staff fields; nil fields are untouched.
type StaffUpdate struct {
	Name        *string
	Email       *string
	PhoneNumber *string
	Position    *string
}

// RoomUpdate carries optional room fields; nil fields are untouched.
type RoomUpdate struct {
	Number      *string
	Type        *string
	RateCents   *int64
	Status      *string
	Description *string
}

// ServiceUpdate carries optional service fields; nil fields are untouched.
type ServiceUpdate struct {
	Name        *string
	Description *string
	PriceCents  *int64
	Available   *bool
}

// Store is the persistence collaborator for hotel records.
type Store interface {
	CreateStaff(ctx context.Context, s *Staff) error
	UpdateStaff(ctx context.Context, id string, upd StaffUpdate) (*Staff, error)
	DeleteStaff(ctx context.Context, id string) error
	FindStaff(ctx context.Context, id string) (*Staff, error)
	ListStaff(ctx context.Context) ([]*Staff, error)

	CreateRoom(ctx context.Context, r *Room) error
	UpdateRoom(ctx context.Context, id string, upd RoomUpdate) (*Room, error)
	DeleteRoom(ctx context.Context, id string) error
	FindRoom(ctx context.Context, id string) (*Room, error)
	ListRooms(ctx context.Context) ([]*Room, error)

	CreateService(ctx context.Context, sv *Service) error
	UpdateService(ctx context.Context, id string, upd ServiceUpdate) (*Service, error)
	DeleteService(ctx context.Context, id string) error
	FindService(ctx context.Context, id string) (*Service, error)
	ListServices(ctx context.Context) ([]*Service, error)

	CreateGuest(ctx context.Context, g *Guest) error
	FindGuest(ctx context.Context, id string) (*Guest, error)
	ListGuests(ctx context.Context) ([]*Guest, error)
	DeleteGuest(ctx context.Context, id string) error

	CreateBooking(ctx context.Context, b *Booking) error
	UpdateBookingStatus(ctx context.Context, id, status string) (*Booking, error)
	ListBookings(ctx context.Context) ([]*Booking, error)
	BookingsForGuest(ctx context.Context, guestID string) ([]BookingSummary, error)

	// GetSettings creates and returns the default record when none exists.
	GetSettings(ctx context.Context) (Settings, error)
	UpdateSettings(ctx context.Context, s Settings) (Settings, error)
	ResetSettings(ctx context.Context) (Settings, error)
}
