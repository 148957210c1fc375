// internal/app/features/tasks/list.go
package tasks

import (
	"net/http"

	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	taskstore "github.com/nolanmercer/taskforge/internal/app/store/tasks"
	"github.com/nolanmercer/taskforge/internal/app/system/auth"
	"github.com/nolanmercer/taskforge/internal/app/system/authz"
	"github.com/nolanmercer/taskforge/internal/app/system/timeouts"
	"github.com/nolanmercer/taskforge/internal/domain/models"
)

// ServeList handles GET /api/tasks. Admins see every task; team members
// see only the tasks assigned to them. An optional ?status= query narrows
// the result to one status.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.WriteUnauthorized(w)
		return
	}

	f := taskstore.Filter{}
	if !authz.IsAdmin(r) {
		f.AssignedTo = &cu.ID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.IsValidStatus(status) {
			uierrors.WriteValidation(w, "unknown status")
			return
		}
		f.Status = status
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "list tasks")
	defer cancel()

	found, err := h.Tasks.Find(ctx, f)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list tasks failed", err, "A database error occurred.")
		return
	}
	if found == nil {
		found = []models.Task{}
	}
	uierrors.WriteJSON(w, http.StatusOK, found)
}
