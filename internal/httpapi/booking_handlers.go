package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"harborview.org/internal/hotel"
)

type addBookingRequest struct {
	GuestID  string    `json:"guest_id" validate:"required"`
	RoomID   string    `json:"room_id" validate:"required"`
	CheckIn  time.Time `json:"check_in" validate:"required"`
	CheckOut time.Time `json:"check_out" validate:"required,gtfield=CheckIn"`
}

func (a *API) handleAddBooking(w http.ResponseWriter, r *http.Request) {
	var req addBookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid booking details")
		return
	}
	if _, err := a.hotel.FindGuest(r.Context(), req.GuestID); err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Guest not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	room, err := a.hotel.FindRoom(r.Context(), req.RoomID)
	if err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Room not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if room.Status != hotel.RoomAvailable {
		writeError(w, http.StatusConflict, "Room is not available")
		return
	}
	b := &hotel.Booking{
		GuestID:  req.GuestID,
		RoomID:   req.RoomID,
		CheckIn:  req.CheckIn.UTC(),
		CheckOut: req.CheckOut.UTC(),
		Status:   hotel.BookingBooked,
	}
	if err := a.hotel.CreateBooking(r.Context(), b); err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	occupied := hotel.RoomOccupied
	if _, err := a.hotel.UpdateRoom(r.Context(), room.ID, hotel.RoomUpdate{Status: &occupied}); err != nil {
		a.log.Error().Err(err).Str("room_id", room.ID).Msg("room status update failed after booking")
	}
	writeJSON(w, http.StatusCreated, b)
}

type updateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Booked CheckedIn CheckedOut Cancelled"`
}

func (a *API) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	var req updateBookingStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid booking status")
		return
	}
	b, err := a.hotel.UpdateBookingStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Booking not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	// A finished or cancelled stay frees the room for the next booking.
	if req.Status == hotel.BookingCheckedOut || req.Status == hotel.BookingCancelled {
		available := hotel.RoomAvailable
		if _, err := a.hotel.UpdateRoom(r.Context(), b.RoomID, hotel.RoomUpdate{Status: &available}); err != nil {
			a.log.Error().Err(err).Str("room_id", b.RoomID).Msg("room status update failed after booking change")
		}
	}
	writeJSON(w, http.StatusOK, b)
}

func (a *API) handleListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := a.hotel.ListBookings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}
