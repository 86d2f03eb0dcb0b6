package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"harborview.org/internal/hotel"
)

type addStaffRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=32"`
	Position    string `json:"position" validate:"required,max=100"`
}

func (a *API) handleAddStaff(w http.ResponseWriter, r *http.Request) {
	var req addStaffRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid staff details")
		return
	}
	st := &hotel.Staff{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Position:    req.Position,
	}
	if err := a.hotel.CreateStaff(r.Context(), st); err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

type editStaffRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=32"`
	Position    *string `json:"position" validate:"omitempty,max=100"`
}

func (a *API) handleEditStaff(w http.ResponseWriter, r *http.Request) {
	var req editStaffRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid staff details")
		return
	}
	upd := hotel.StaffUpdate{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Position:    req.Position,
	}
	st, err := a.hotel.UpdateStaff(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		switch {
		case errors.Is(err, hotel.ErrNotFound):
			writeError(w, http.StatusNotFound, "Staff member not found")
		case errors.Is(err, hotel.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "No fields to update")
		default:
			writeError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (a *API) handleDeleteStaff(w http.ResponseWriter, r *http.Request) {
	if err := a.hotel.DeleteStaff(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Staff member not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Staff member deleted successfully"})
}

// The staff "role" is a free-form job title (Manager, Concierge). It is
// stored as Position and has nothing to do with access-control roles.
type assignPositionRequest struct {
	Role string `json:"role" validate:"required,max=100"`
}

func (a *API) handleAssignStaffPosition(w http.ResponseWriter, r *http.Request) {
	var req assignPositionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "role is required")
		return
	}
	st, err := a.hotel.UpdateStaff(r.Context(), chi.URLParam(r, "id"), hotel.StaffUpdate{Position: &req.Role})
	if err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Staff member not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Role assigned successfully",
		"staff":   st,
	})
}

func (a *API) handleStaffPerformance(w http.ResponseWriter, r *http.Request) {
	st, err := a.hotel.FindStaff(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Staff member not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	perf := st.Performance
	if perf == nil {
		perf = map[string]any{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"staff_id":    st.ID,
		"name":        st.Name,
		"performance": perf,
	})
}

func (a *API) handleListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := a.hotel.ListStaff(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"staff": staff})
}
