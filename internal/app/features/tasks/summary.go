// internal/app/features/tasks/summary.go
package tasks

import (
	"net/http"
	"time"

	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	taskstore "github.com/nolanmercer/taskforge/internal/app/store/tasks"
	"github.com/nolanmercer/taskforge/internal/app/system/timeouts"
	"github.com/nolanmercer/taskforge/internal/domain/models"
)

// ServeSummary handles GET /api/tasks/summary. The status counts come from
// a single aggregation; overdue is a separate count because an overdue task
// keeps its status.
func (h *Handler) ServeSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "task summary")
	defer cancel()

	byStatus, err := h.Tasks.GroupByField(ctx, "status")
	if err != nil {
		h.ErrLog.LogServerError(w, r, "status aggregation failed", err, "A database error occurred.")
		return
	}
	for _, s := range models.AllStatuses() {
		if _, ok := byStatus[s]; !ok {
			byStatus[s] = 0
		}
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}

	now := time.Now()
	overdue, err := h.Tasks.Count(ctx, taskstore.Filter{
		StatusNot: models.StatusCompleted,
		DueBefore: &now,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "overdue count failed", err, "A database error occurred.")
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, TaskSummary{
		TotalTasks:   total,
		ByStatus:     byStatus,
		OverdueTasks: overdue,
	})
}
