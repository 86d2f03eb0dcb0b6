package httpapi

import (
	"net/http"

	"harborview.org/internal/hotel"
)

func (a *API) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := a.hotel.GetSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

type updateSettingsRequest struct {
	Policy      string `json:"policy" validate:"max=2000"`
	NotifyEmail bool   `json:"notify_email"`
	NotifySMS   bool   `json:"notify_sms"`
}

func (a *API) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid settings")
		return
	}
	s, err := a.hotel.UpdateSettings(r.Context(), hotel.Settings{
		Policy:      req.Policy,
		NotifyEmail: req.NotifyEmail,
		NotifySMS:   req.NotifySMS,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (a *API) handleResetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := a.hotel.ResetSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Settings restored to defaults",
		"settings": s,
	})
}
