// internal/app/features/notifications/feed.go
package notifications

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	"github.com/nolanmercer/taskforge/internal/app/system/auth"
	"github.com/nolanmercer/taskforge/internal/app/system/timeouts"
	"github.com/nolanmercer/taskforge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const feedLimit = 20

// ServeList handles GET /api/notifications, newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.WriteUnauthorized(w)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "list notifications")
	defer cancel()

	items, err := h.Notifications.ListForUser(ctx, cu.ID, feedLimit)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list notifications failed", err, "A database error occurred.")
		return
	}
	if items == nil {
		items = []models.Notification{}
	}
	uierrors.WriteJSON(w, http.StatusOK, items)
}

func notificationID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "notificationID"))
	if err != nil {
		uierrors.WriteValidation(w, "Invalid notification ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// ServeMarkRead handles PUT /api/notifications/{notificationID}/read. The
// store scopes the write to the owner, so one user can never touch
// another's feed.
func (h *Handler) ServeMarkRead(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.WriteUnauthorized(w)
		return
	}
	id, ok := notificationID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "mark notification read")
	defer cancel()

	n, err := h.Notifications.MarkRead(ctx, id, cu.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "mark read failed", err, "A database error occurred.")
		return
	}
	if n == 0 {
		uierrors.WriteNotFound(w, "Notification not found")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

// ServeDelete handles DELETE /api/notifications/{notificationID}.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.WriteUnauthorized(w)
		return
	}
	id, ok := notificationID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "delete notification")
	defer cancel()

	n, err := h.Notifications.Delete(ctx, id, cu.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete notification failed", err, "A database error occurred.")
		return
	}
	if n == 0 {
		uierrors.WriteNotFound(w, "Notification not found")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]string{"message": "Notification deleted"})
}
