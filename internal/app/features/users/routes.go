// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"
	"github.com/nolanmercer/taskforge/internal/app/system/auth"
)

// Routes returns the users subrouter. Profile endpoints are self-service;
// everything else is admin-only.
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()
	r.Use(tm.RequireSignedIn)

	r.Get("/profile", h.ServeProfile)
	r.Put("/profile", h.ServeUpdateProfile)

	r.Group(func(rr chi.Router) {
		rr.Use(auth.RequireAdmin)
		rr.Get("/", h.ServeList)
		rr.Get("/{userID}", h.ServeGet)
		rr.Put("/{userID}", h.ServeUpdate)
		rr.Delete("/{userID}", h.ServeDelete)
	})

	return r
}
