// internal/app/features/reports/productivity.go
package reports

import (
	"net/http"
	"strings"
	"time"

	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	taskstore "github.com/nolanmercer/taskforge/internal/app/store/tasks"
	"github.com/nolanmercer/taskforge/internal/app/system/timeouts"
)

// ServeProductivity handles GET /api/reports/productivity?start=&end=.
//
// Both dates are required and interpreted as inclusive local calendar
// bounds; a missing or unparseable date is a validation error, never a
// silent default.
func (h *Handler) ServeProductivity(w http.ResponseWriter, r *http.Request) {
	startRaw := strings.TrimSpace(r.URL.Query().Get("start"))
	endRaw := strings.TrimSpace(r.URL.Query().Get("end"))
	if startRaw == "" || endRaw == "" {
		uierrors.WriteValidation(w, "start and end dates are required (YYYY-MM-DD)")
		return
	}

	start, err := time.ParseInLocation(dayFormat, startRaw, time.Local)
	if err != nil {
		uierrors.WriteValidation(w, "invalid start date: expected YYYY-MM-DD")
		return
	}
	end, err := time.ParseInLocation(dayFormat, endRaw, time.Local)
	if err != nil {
		uierrors.WriteValidation(w, "invalid end date: expected YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		uierrors.WriteValidation(w, "end date must not be before start date")
		return
	}
	endOfDay := end.Add(24*time.Hour - time.Second)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "productivity report")
	defer cancel()

	tasks, err := h.Tasks.Find(ctx, taskstore.Filter{
		CreatedFrom: &start,
		CreatedTo:   &endOfDay,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "productivity query failed", err, "A database error occurred.")
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, ProductivityReport{
		StartDate: startRaw,
		EndDate:   endRaw,
		Buckets:   ProductivityBuckets(tasks),
	})
}
