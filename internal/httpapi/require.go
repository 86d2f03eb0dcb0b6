package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"harborview.org/internal/auth"
	"harborview.org/internal/identity"
)

// requireRole is the role authorizer: it loads the live identity record
// and checks its current role against the route requirement. The role is
// read from storage on every request, never trusted from the token, so a
// demotion takes effect on the identity's very next request.
func (a *API) requireRole(allowed ...identity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := auth.ActorFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			ident, err := a.idents.Find(r.Context(), actor.ID)
			if err != nil {
				if errors.Is(err, identity.ErrNotFound) {
					writeError(w, http.StatusUnauthorized, "User not found")
					return
				}
				writeError(w, http.StatusInternalServerError, "Server error during role verification")
				return
			}

			if !roleAllowed(ident.Role, allowed) {
				writeJSON(w, http.StatusForbidden, errorResponse{
					Message:  accessDeniedMessage(allowed),
					UserRole: ident.Role.String(),
				})
				return
			}

			actor.Role = ident.Role
			actor.Name = ident.Name
			ctx := auth.ContextWithActor(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func roleAllowed(role identity.Role, allowed []identity.Role) bool {
	if len(allowed) == 0 {
		// No specific requirement: any live identity passes.
		return role.Valid()
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

func accessDeniedMessage(allowed []identity.Role) string {
	if len(allowed) == 0 {
		return "Access denied."
	}
	names := make([]string, len(allowed))
	for i, r := range allowed {
		names[i] = r.String()
	}
	return "Access denied. " + strings.Join(names, " or ") + " privileges required."
}
