package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"harborview.org/internal/auth"
)

const (
	authHeader   = "Authorization"
	bearerPrefix = "Bearer "
)

// withAuth is the identity resolver: it verifies the bearer credential
// and attaches the resolved actor (id and display name, no role yet) to
// the request context. Verification is pure; the identity store is not
// consulted until the role authorizer runs.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := a.signer.Verify(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				// Expired tells the client to drop its stored credential.
				writeJSON(w, http.StatusUnauthorized, errorResponse{
					Message: "Session expired, please log in again",
					Expired: true,
				})
				return
			}
			writeError(w, http.StatusUnauthorized, "Invalid authentication token")
			return
		}

		ctx := auth.ContextWithActor(r.Context(), auth.Actor{
			ID:   claims.Subject,
			Name: claims.Name,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("Authentication required")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearerPrefix)) {
		return "", errors.New("Invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", errors.New("Authentication required")
	}
	return token, nil
}
