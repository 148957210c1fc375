// internal/app/features/reports/taskreport.go
package reports

import (
	"net/http"
	"time"

	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	taskstore "github.com/nolanmercer/taskforge/internal/app/store/tasks"
	"github.com/nolanmercer/taskforge/internal/app/system/timeouts"
)

// ServeTaskReport handles GET /api/reports/tasks.
//
// It snapshots the full task collection once and folds it into the status &
// category summary. A single point-in-time read keeps the status scalars
// consistent with each other (the scalars always partition the total).
func (h *Handler) ServeTaskReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "task report")
	defer cancel()

	tasks, err := h.Tasks.Find(ctx, taskstore.Filter{})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "task report query failed", err, "A database error occurred.")
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, BuildTaskReport(tasks, time.Now()))
}
