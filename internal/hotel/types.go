// Package hotel holds the operational records behind the staff, room,
// service, guest and booking screens.
package hotel

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("hotel: not found")
	ErrInvalidInput = errors.New("hotel: invalid input")
)

// Staff is an employee record. Position is a free-form job title; it is
// unrelated to the access-control role on an Identity.
type Staff struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phone_number"`
	Position    string         `json:"position"`
	Performance map[string]any `json:"performance,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Room statuses move between these three values; there is no state
// machine beyond what the desk staff sets.
const (
	RoomAvailable   = "Available"
	RoomOccupied    = "Occupied"
	RoomMaintenance = "Maintenance"
)

type Room struct {
	ID          string    `json:"id"`
	Number      string    `json:"number"`
	Type        string    `json:"type"`
	RateCents   int64     `json:"rate_cents"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Guest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	BookingBooked     = "Booked"
	BookingCheckedIn  = "CheckedIn"
	BookingCheckedOut = "CheckedOut"
	BookingCancelled  = "Cancelled"
)

type Booking struct {
	ID        string    `json:"id"`
	GuestID   string    `json:"guest_id"`
	RoomID    string    `json:"room_id"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingSummary joins a booking with its room number for guest-facing
// notification emails.
type BookingSummary struct {
	BookingID  string    `json:"booking_id"`
	RoomNumber string    `json:"room_number"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
}

// Settings is the single hotel-wide settings record.
type Settings struct {
	Policy      string    `json:"policy"`
	NotifyEmail bool      `json:"notify_email"`
	NotifySMS   bool      `json:"notify_sms"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DefaultSettings mirrors the record created on first read and restored
// by a settings reset.
func DefaultSettings() Settings {
	return Settings{Policy: "", NotifyEmail: true, NotifySMS: true}
}
