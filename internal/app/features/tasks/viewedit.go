// internal/app/features/tasks/viewedit.go
package tasks

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	taskstore "github.com/nolanmercer/taskforge/internal/app/store/tasks"
	"github.com/nolanmercer/taskforge/internal/app/system/auth"
	"github.com/nolanmercer/taskforge/internal/app/system/authz"
	"github.com/nolanmercer/taskforge/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func taskID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "taskID"))
	if err != nil {
		uierrors.WriteValidation(w, "Invalid task ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// ServeGet handles GET /api/tasks/{taskID}. Team members can only read
// tasks assigned to them.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.WriteUnauthorized(w)
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "get task")
	defer cancel()

	t, err := h.Tasks.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			uierrors.WriteNotFound(w, "Task not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "get task failed", err, "A database error occurred.")
		return
	}
	if !authz.IsAdmin(r) && (t.AssignedTo == nil || *t.AssignedTo != cu.ID) {
		uierrors.WriteForbidden(w)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, t)
}

// ServeUpdate handles PUT /api/tasks/{taskID}. Admins can change anything;
// team members can only move their own tasks through status and progress.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.WriteUnauthorized(w)
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.WriteValidation(w, "invalid request body")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "update task")
	defer cancel()

	existing, err := h.Tasks.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			uierrors.WriteNotFound(w, "Task not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "get task failed", err, "A database error occurred.")
		return
	}

	admin := authz.IsAdmin(r)
	if !admin {
		if existing.AssignedTo == nil || *existing.AssignedTo != cu.ID {
			uierrors.WriteForbidden(w)
			return
		}
		if req.Title != nil || req.Description != nil || req.Category != nil ||
			req.DueDate != nil || req.AssignedTo != nil || req.Priority != nil {
			uierrors.WriteForbidden(w)
			return
		}
	}

	upd := taskstore.Update{
		Status:   req.Status,
		Priority: req.Priority,
		DueDate:  req.DueDate,
		Progress: req.Progress,
	}
	if req.Title != nil {
		title := strings.TrimSpace(h.clean(*req.Title))
		if title == "" {
			uierrors.WriteValidation(w, "title is required")
			return
		}
		upd.Title = &title
	}
	if req.Description != nil {
		desc := strings.TrimSpace(h.clean(*req.Description))
		upd.Description = &desc
	}
	if req.Category != nil {
		cat := strings.TrimSpace(h.clean(*req.Category))
		upd.Category = &cat
	}

	var newAssignee *primitive.ObjectID
	if req.AssignedTo != nil && *req.AssignedTo != "" {
		aid, err := primitive.ObjectIDFromHex(*req.AssignedTo)
		if err != nil {
			uierrors.WriteValidation(w, "invalid assignee ID")
			return
		}
		if _, err := h.Users.GetByID(ctx, aid); err != nil {
			if err == mongo.ErrNoDocuments {
				uierrors.WriteNotFound(w, "Assigned user not found")
				return
			}
			h.ErrLog.LogServerError(w, r, "assignee lookup failed", err, "A database error occurred.")
			return
		}
		upd.AssignedTo = &aid
		if existing.AssignedTo == nil || *existing.AssignedTo != aid {
			newAssignee = &aid
		}
	}

	updated, err := h.Tasks.Apply(ctx, id, upd)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			uierrors.WriteNotFound(w, "Task not found")
			return
		}
		if taskstore.IsValidation(err) {
			uierrors.WriteValidation(w, err.Error())
			return
		}
		h.ErrLog.LogServerError(w, r, "update task failed", err, "A database error occurred.")
		return
	}

	if newAssignee != nil {
		h.notifyAssignment(ctx, *newAssignee, *updated)
	}

	h.Log.Info("task updated",
		zap.String("task_id", id.Hex()),
		zap.String("updated_by", cu.ID.Hex()))
	uierrors.WriteJSON(w, http.StatusOK, updated)
}

// ServeDelete handles DELETE /api/tasks/{taskID}. Admin only, enforced by
// the route gate.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "delete task")
	defer cancel()

	n, err := h.Tasks.Delete(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete task failed", err, "A database error occurred.")
		return
	}
	if n == 0 {
		uierrors.WriteNotFound(w, "Task not found")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}
