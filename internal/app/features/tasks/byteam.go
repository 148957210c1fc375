// internal/app/features/tasks/byteam.go
package tasks

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	taskstore "github.com/nolanmercer/taskforge/internal/app/store/tasks"
	"github.com/nolanmercer/taskforge/internal/app/system/timeouts"
	"github.com/nolanmercer/taskforge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeByMember handles GET /api/tasks/team/{memberID}: every task
// assigned to the given team member. A member with no tasks yields an
// empty list, not a 404.
func (h *Handler) ServeByMember(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "memberID"))
	if err != nil {
		uierrors.WriteValidation(w, "Invalid team member ID")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "list tasks by member")
	defer cancel()

	found, err := h.Tasks.Find(ctx, taskstore.Filter{AssignedTo: &id})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list tasks by member failed", err, "A database error occurred.")
		return
	}
	if found == nil {
		found = []models.Task{}
	}
	uierrors.WriteJSON(w, http.StatusOK, found)
}
