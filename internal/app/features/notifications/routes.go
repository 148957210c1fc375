// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/go-chi/chi/v5"
	"github.com/nolanmercer/taskforge/internal/app/system/auth"
)

// Routes returns the notifications subrouter.
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()
	r.Use(tm.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Put("/{notificationID}/read", h.ServeMarkRead)
	r.Delete("/{notificationID}", h.ServeDelete)

	return r
}
