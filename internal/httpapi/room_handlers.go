package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"harborview.org/internal/hotel"
)

type addRoomRequest struct {
	Number      string `json:"number" validate:"required,max=16"`
	Type        string `json:"type" validate:"required,max=64"`
	RateCents   int64  `json:"rate_cents" validate:"required,gt=0"`
	Status      string `json:"status" validate:"omitempty,oneof=Available Occupied Maintenance"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

func (a *API) handleAddRoom(w http.ResponseWriter, r *http.Request) {
	var req addRoomRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid room details")
		return
	}
	room := &hotel.Room{
		Number:      req.Number,
		Type:        req.Type,
		RateCents:   req.RateCents,
		Status:      req.Status,
		Description: req.Description,
	}
	if err := a.hotel.CreateRoom(r.Context(), room); err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

type editRoomRequest struct {
	Number      *string `json:"number" validate:"omitempty,max=16"`
	Type        *string `json:"type" validate:"omitempty,max=64"`
	RateCents   *int64  `json:"rate_cents" validate:"omitempty,gt=0"`
	Status      *string `json:"status" validate:"omitempty,oneof=Available Occupied Maintenance"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

func (a *API) handleEditRoom(w http.ResponseWriter, r *http.Request) {
	var req editRoomRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid room details")
		return
	}
	upd := hotel.RoomUpdate{
		Number:      req.Number,
		Type:        req.Type,
		RateCents:   req.RateCents,
		Status:      req.Status,
		Description: req.Description,
	}
	room, err := a.hotel.UpdateRoom(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		switch {
		case errors.Is(err, hotel.ErrNotFound):
			writeError(w, http.StatusNotFound, "Room not found")
		case errors.Is(err, hotel.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "No fields to update")
		default:
			writeError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (a *API) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := a.hotel.DeleteRoom(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Room not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Room deleted successfully"})
}

func (a *API) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := a.hotel.FindRoom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Room not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (a *API) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := a.hotel.ListRooms(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}
