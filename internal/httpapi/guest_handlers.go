package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"harborview.org/internal/hotel"
)

type addGuestRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=32"`
}

func (a *API) handleAddGuest(w http.ResponseWriter, r *http.Request) {
	var req addGuestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid guest details")
		return
	}
	g := &hotel.Guest{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	if err := a.hotel.CreateGuest(r.Context(), g); err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (a *API) handleDeleteGuest(w http.ResponseWriter, r *http.Request) {
	if err := a.hotel.DeleteGuest(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Guest not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Guest deleted successfully"})
}

func (a *API) handleListGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := a.hotel.ListGuests(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"guests": guests})
}
