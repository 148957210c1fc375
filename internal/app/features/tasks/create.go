// internal/app/features/tasks/create.go
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	taskstore "github.com/nolanmercer/taskforge/internal/app/store/tasks"
	"github.com/nolanmercer/taskforge/internal/app/system/auth"
	"github.com/nolanmercer/taskforge/internal/app/system/timeouts"
	"github.com/nolanmercer/taskforge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeCreate handles POST /api/tasks.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.WriteUnauthorized(w)
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.WriteValidation(w, "invalid request body")
		return
	}

	title := ""
	if req.Title != nil {
		title = strings.TrimSpace(h.clean(*req.Title))
	}
	if title == "" {
		uierrors.WriteValidation(w, "title is required")
		return
	}

	t := models.Task{
		Title:     title,
		CreatedBy: cu.ID,
		DueDate:   req.DueDate,
	}
	if req.Description != nil {
		t.Description = strings.TrimSpace(h.clean(*req.Description))
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.Category != nil {
		t.Category = strings.TrimSpace(h.clean(*req.Category))
	}
	if req.Progress != nil {
		t.Progress = *req.Progress
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "create task")
	defer cancel()

	var assignee *models.User
	if req.AssignedTo != nil && *req.AssignedTo != "" {
		id, err := primitive.ObjectIDFromHex(*req.AssignedTo)
		if err != nil {
			uierrors.WriteValidation(w, "invalid assignee ID")
			return
		}
		assignee, err = h.Users.GetByID(ctx, id)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				uierrors.WriteNotFound(w, "Assigned user not found")
				return
			}
			h.ErrLog.LogServerError(w, r, "assignee lookup failed", err, "A database error occurred.")
			return
		}
		t.AssignedTo = &assignee.ID
	}

	created, err := h.Tasks.Insert(ctx, t)
	if err != nil {
		if taskstore.IsValidation(err) {
			uierrors.WriteValidation(w, err.Error())
			return
		}
		h.ErrLog.LogServerError(w, r, "insert task failed", err, "A database error occurred.")
		return
	}

	if assignee != nil {
		h.notifyAssignment(ctx, assignee.ID, created)
	}

	h.Log.Info("task created",
		zap.String("task_id", created.ID.Hex()),
		zap.String("created_by", cu.ID.Hex()))
	uierrors.WriteJSON(w, http.StatusCreated, created)
}

// notifyAssignment records an in-app notification for the assignee. A
// failed notification never fails the task write; it is logged and dropped.
func (h *Handler) notifyAssignment(ctx context.Context, userID primitive.ObjectID, t models.Task) {
	msg := fmt.Sprintf("You have been assigned a new task: %s", t.Title)
	if _, err := h.Notifications.Create(ctx, userID, msg); err != nil {
		h.Log.Warn("notification create failed",
			zap.String("task_id", t.ID.Hex()),
			zap.Error(err))
	}
}
