// internal/app/features/tasks/routes.go
package tasks

import (
	"github.com/go-chi/chi/v5"
	"github.com/nolanmercer/taskforge/internal/app/system/auth"
)

// Routes returns the tasks subrouter. Everything requires a signed-in user;
// the summary, recent feed, per-member listing, create, and delete are
// admin-gated on top.
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()
	r.Use(tm.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Get("/{taskID}", h.ServeGet)
	r.Put("/{taskID}", h.ServeUpdate)

	r.Group(func(rr chi.Router) {
		rr.Use(auth.RequireAdmin)
		rr.Post("/", h.ServeCreate)
		rr.Delete("/{taskID}", h.ServeDelete)
		rr.Get("/summary", h.ServeSummary)
		rr.Get("/recent", h.ServeRecent)
		rr.Get("/team/{memberID}", h.ServeByMember)
	})

	return r
}
