package httpapi

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"harborview.org/internal/auth"
	"harborview.org/internal/identity"
	"harborview.org/internal/mailer"
)

type signupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      userView  `json:"user"`
}

type userView struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
	Role  identity.Role `json:"role"`
}

func viewOf(id *identity.Identity) userView {
	return userView{ID: id.ID, Name: id.Name, Email: id.Email, Role: id.Role}
}

func (a *API) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid signup details")
		return
	}
	hash, err := identity.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	// Self-service signups always start as guests. Elevation is a
	// separate admin operation.
	id := &identity.Identity{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Role:         identity.RoleGuest,
	}
	if err := a.idents.Create(r.Context(), id); err != nil {
		if errors.Is(err, identity.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, "An account with this email already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	a.issueSession(w, id)
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	id, err := a.idents.FindByEmail(r.Context(), strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if id.Federated() {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := identity.VerifyPassword(id.PasswordHash, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	a.issueSession(w, id)
}

type googleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

func (a *API) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "idToken is required")
		return
	}
	if a.google == nil {
		writeError(w, http.StatusNotImplemented, "Federated login is not configured")
		return
	}
	profile, err := a.google.Verify(r.Context(), req.IDToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid Google credential")
		return
	}
	id, err := a.idents.FindByEmail(r.Context(), strings.ToLower(profile.Email))
	if errors.Is(err, identity.ErrNotFound) {
		id = &identity.Identity{
			Name:  profile.Name,
			Email: strings.ToLower(profile.Email),
			Role:  identity.RoleGuest,
		}
		err = a.idents.Create(r.Context(), id)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	a.issueSession(w, id)
}

func (a *API) issueSession(w http.ResponseWriter, id *identity.Identity) {
	token, expiresAt, err := a.signer.Issue(id.ID, id.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      viewOf(id),
	})
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := a.idents.Find(r.Context(), actor.ID)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, viewOf(id))
}

type assignRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

func (a *API) handleAssignRole(w http.ResponseWriter, r *http.Request) {
	var req assignRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	role, err := identity.ParseRole(req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid role")
		return
	}
	targetID := chi.URLParam(r, "id")
	if err := a.idents.UpdateRole(r.Context(), targetID, role); err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Role updated successfully",
		"role":    role,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (a *API) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "A valid email is required")
		return
	}
	id, err := a.idents.FindByEmail(r.Context(), strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	code, err := resetCode()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	expires := time.Now().UTC().Add(a.cfg.ResetCodeTTL)
	if err := a.idents.SetResetChallenge(r.Context(), id.ID, code, expires); err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if a.mail == nil {
		writeError(w, http.StatusInternalServerError, "Error sending email")
		return
	}
	err = a.mail.Send(mailer.Email{
		To:      []string{id.Email},
		Subject: "Your password reset code",
		Body:    fmt.Sprintf("Your password reset code is %s. It expires in %s.", code, a.cfg.ResetCodeTTL),
	})
	if err != nil {
		a.log.Error().Err(err).Str("email", id.Email).Msg("reset code delivery failed")
		writeError(w, http.StatusInternalServerError, "Error sending email")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Password reset code sent to your email",
	})
}

type resetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required,len=5,numeric"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (a *API) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Email, code and a new password are required")
		return
	}
	id, err := a.idents.FindByEmail(r.Context(), strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "Invalid or expired code")
			return
		}
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if id.ResetCode == "" || id.ResetCode != req.Code ||
		id.ResetExpiresAt.IsZero() || time.Now().UTC().After(id.ResetExpiresAt) {
		writeError(w, http.StatusBadRequest, "Invalid or expired code")
		return
	}
	hash, err := identity.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if err := a.idents.UpdatePassword(r.Context(), id.ID, hash); err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Password has been reset successfully",
	})
}

// resetCode draws a uniform 5-digit code from crypto/rand.
func resetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%05d", n.Int64()), nil
}
