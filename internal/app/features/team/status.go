// internal/app/features/team/status.go
package team

import (
	"net/http"

	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	taskstore "github.com/nolanmercer/taskforge/internal/app/store/tasks"
	"github.com/nolanmercer/taskforge/internal/app/system/timeouts"
	"github.com/nolanmercer/taskforge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberStatus is one row of the workload view: who, and how much of
// their plate is cleared.
type MemberStatus struct {
	MemberID       primitive.ObjectID `json:"memberId"`
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Status         string             `json:"status"`
	TasksAssigned  int64              `json:"tasksAssigned"`
	TasksCompleted int64              `json:"tasksCompleted"`
}

// ServeStatus handles GET /api/team/status: every member with their
// assigned and completed task counts.
func (h *Handler) ServeStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long, h.Log, "team status")
	defer cancel()

	members, err := h.Users.FindByRole(ctx, models.RoleTeamMember)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list team failed", err, "A database error occurred.")
		return
	}

	rows := make([]MemberStatus, 0, len(members))
	for _, m := range members {
		id := m.ID
		assigned, err := h.Tasks.Count(ctx, taskstore.Filter{AssignedTo: &id})
		if err != nil {
			h.ErrLog.LogServerError(w, r, "assigned count failed", err, "A database error occurred.")
			return
		}
		completed, err := h.Tasks.Count(ctx, taskstore.Filter{AssignedTo: &id, Status: models.StatusCompleted})
		if err != nil {
			h.ErrLog.LogServerError(w, r, "completed count failed", err, "A database error occurred.")
			return
		}
		rows = append(rows, MemberStatus{
			MemberID:       m.ID,
			Name:           m.Name,
			Email:          m.Email,
			Status:         m.Status,
			TasksAssigned:  assigned,
			TasksCompleted: completed,
		})
	}
	uierrors.WriteJSON(w, http.StatusOK, rows)
}
