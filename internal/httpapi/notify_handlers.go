package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"harborview.org/internal/hotel"
	"harborview.org/internal/mailer"
)

type sendNotificationRequest struct {
	To      []string `json:"to" validate:"required,min=1,dive,email"`
	Subject string   `json:"subject" validate:"required,max=200"`
	Body    string   `json:"body" validate:"required,max=5000"`
}

func (a *API) handleSendNotification(w http.ResponseWriter, r *http.Request) {
	var req sendNotificationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Recipients, subject and body are required")
		return
	}
	if a.mail == nil {
		writeError(w, http.StatusInternalServerError, "Error sending email")
		return
	}
	err := a.mail.Send(mailer.Email{
		To:      req.To,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		a.log.Error().Err(err).Int("recipients", len(req.To)).Msg("notification delivery failed")
		writeError(w, http.StatusInternalServerError, "Error sending email")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Notification sent"})
}

type notifyGuestRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// handleNotifyGuest emails a guest directly and appends a summary of
// their current bookings to the message body.
func (a *API) handleNotifyGuest(w http.ResponseWriter, r *http.Request) {
	var req notifyGuestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Subject and message are required")
		return
	}
	guestID := chi.URLParam(r, "guestID")
	g, err := a.hotel.FindGuest(r.Context(), guestID)
	if err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Guest not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	bookings, err := a.hotel.BookingsForGuest(r.Context(), guestID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if a.mail == nil {
		writeError(w, http.StatusInternalServerError, "Error sending email")
		return
	}
	err = a.mail.Send(mailer.Email{
		To:      []string{g.Email},
		Subject: req.Subject,
		Body:    req.Message + bookingDigest(bookings),
	})
	if err != nil {
		a.log.Error().Err(err).Str("guest_id", guestID).Msg("guest notification failed")
		writeError(w, http.StatusInternalServerError, "Error sending email")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Notification sent"})
}

func bookingDigest(bookings []hotel.BookingSummary) string {
	if len(bookings) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\nYour bookings:\n")
	for _, bk := range bookings {
		fmt.Fprintf(&b, "- Booking %s, Room %s: %s to %s\n",
			bk.BookingID,
			bk.RoomNumber,
			bk.CheckIn.Format("2006-01-02"),
			bk.CheckOut.Format("2006-01-02"))
	}
	return b.String()
}
