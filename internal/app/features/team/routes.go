// internal/app/features/team/routes.go
package team

import (
	"github.com/go-chi/chi/v5"
	"github.com/nolanmercer/taskforge/internal/app/system/auth"
)

// Routes returns the team subrouter. The whole surface is admin-only.
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()
	r.Use(tm.RequireSignedIn)
	r.Use(auth.RequireAdmin)

	r.Get("/", h.ServeList)
	r.Post("/", h.ServeCreate)
	r.Get("/status", h.ServeStatus)
	r.Get("/{memberID}", h.ServeGet)
	r.Put("/{memberID}", h.ServeUpdate)
	r.Delete("/{memberID}", h.ServeDelete)

	return r
}
