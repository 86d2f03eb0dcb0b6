package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// errorResponse is the uniform rejection body. UserRole is set only on
// role failures so the client can show what the caller actually is.
type errorResponse struct {
	Message  string `json:"message"`
	UserRole string `json:"userRole,omitempty"`
	Expired  bool   `json:"expired,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, errorResponse{Message: message})
}

// decodeJSON parses the request body into v; on failure it writes the
// 400 response itself and returns the error so the handler can bail.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("request body is required")
		} else {
			err = fmt.Errorf("malformed JSON body: %w", err)
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}
