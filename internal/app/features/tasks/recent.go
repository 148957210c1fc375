// internal/app/features/tasks/recent.go
package tasks

import (
	"net/http"

	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	"github.com/nolanmercer/taskforge/internal/app/system/timeouts"
	"github.com/nolanmercer/taskforge/internal/domain/models"
)

const recentLimit = 5

// ServeRecent handles GET /api/tasks/recent, the dashboard's latest-activity
// strip.
func (h *Handler) ServeRecent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "recent tasks")
	defer cancel()

	found, err := h.Tasks.Recent(ctx, recentLimit)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "recent tasks failed", err, "A database error occurred.")
		return
	}
	if found == nil {
		found = []models.Task{}
	}
	uierrors.WriteJSON(w, http.StatusOK, found)
}
