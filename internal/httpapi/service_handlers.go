package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"harborview.org/internal/hotel"
)

type addServiceRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	PriceCents  int64  `json:"price_cents" validate:"required,gt=0"`
	Available   *bool  `json:"available"`
}

func (a *API) handleAddService(w http.ResponseWriter, r *http.Request) {
	var req addServiceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid service details")
		return
	}
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	sv := &hotel.Service{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Available:   available,
	}
	if err := a.hotel.CreateService(r.Context(), sv); err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusCreated, sv)
}

type editServiceRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	PriceCents  *int64  `json:"price_cents" validate:"omitempty,gt=0"`
	Available   *bool   `json:"available"`
}

func (a *API) handleEditService(w http.ResponseWriter, r *http.Request) {
	var req editServiceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid service details")
		return
	}
	upd := hotel.ServiceUpdate{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Available:   req.Available,
	}
	sv, err := a.hotel.UpdateService(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		switch {
		case errors.Is(err, hotel.ErrNotFound):
			writeError(w, http.StatusNotFound, "Service not found")
		case errors.Is(err, hotel.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "No fields to update")
		default:
			writeError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}
	writeJSON(w, http.StatusOK, sv)
}

func (a *API) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	if err := a.hotel.DeleteService(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Service not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Service deleted successfully"})
}

func (a *API) handleGetService(w http.ResponseWriter, r *http.Request) {
	sv, err := a.hotel.FindService(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Service not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, sv)
}

func (a *API) handleListServices(w http.ResponseWriter, r *http.Request) {
	services, err := a.hotel.ListServices(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": services})
}
