// internal/app/features/tasks/handler.go
package tasks

import (
	"github.com/microcosm-cc/bluemonday"
	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	notificationstore "github.com/nolanmercer/taskforge/internal/app/store/notifications"
	taskstore "github.com/nolanmercer/taskforge/internal/app/store/tasks"
	userstore "github.com/nolanmercer/taskforge/internal/app/store/users"
	"go.uber.org/zap"
)

// Handler owns task CRUD, the status summary, and the recent-tasks feed.
type Handler struct {
	Tasks         *taskstore.Store
	Users         *userstore.Store
	Notifications *notificationstore.Store
	Sanitizer     *bluemonday.Policy
	Log           *zap.Logger
	ErrLog        *uierrors.ErrorLogger
}

// NewHandler constructs a tasks Handler. Free-text fields pass through a
// strict HTML sanitizer before they are stored.
func NewHandler(tasks *taskstore.Store, users *userstore.Store, notifications *notificationstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Tasks:         tasks,
		Users:         users,
		Notifications: notifications,
		Sanitizer:     bluemonday.StrictPolicy(),
		Log:           logger,
		ErrLog:        errLog,
	}
}

func (h *Handler) clean(s string) string {
	return h.Sanitizer.Sanitize(s)
}
