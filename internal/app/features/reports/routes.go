// internal/app/features/reports/routes.go
package reports

import (
	"github.com/nolanmercer/taskforge/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the reports subrouter. All reports are admin-only; the
// engine itself never checks roles, it trusts the gate in front of it.
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(rr chi.Router) {
		rr.Use(tm.RequireSignedIn)
		rr.Use(auth.RequireAdmin)
		rr.Get("/tasks", h.ServeTaskReport)
		rr.Get("/team-members", h.ServeTeamPerformance)
		rr.Get("/productivity", h.ServeProductivity)
		rr.Get("/export", h.ServeExport)
	})

	return r
}
