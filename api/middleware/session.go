package middleware

import (
	"net/http"

	"github.com/angelmondragon/storefront/internal/session"
)

// SessionViewer exposes the in-memory session view.
type SessionViewer interface {
	Session() session.State
}

// Session attaches the logged-in user id to the request context. It never
// rejects a request; collection handlers gate on the stored identity themselves.
func Session(viewer SessionViewer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if viewer == nil {
				next.ServeHTTP(w, r)
				return
			}
			state := viewer.Session()
			if !state.LoggedIn || state.User == nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), state.User.ID)))
		})
	}
}
