package httpapi

import (
	"net/http"

	"harborview.org/internal/auth"
)

// recordActivity is the activity recorder: once a request has cleared
// the role authorizer, it appends one access-log entry attributing the
// action to the resolved identity. The append is best-effort and runs
// before the handler; a storage failure never stops the request.
func (a *API) recordActivity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actor, ok := auth.ActorFromContext(r.Context()); ok {
			a.recorder.Record(r.Context(), actor.ID, r.Method+" "+r.URL.Path)
		}
		next.ServeHTTP(w, r)
	})
}
