// internal/app/features/notifications/handler.go
package notifications

import (
	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	notificationstore "github.com/nolanmercer/taskforge/internal/app/store/notifications"
	"go.uber.org/zap"
)

// Handler owns the signed-in user's notification feed.
type Handler struct {
	Notifications *notificationstore.Store
	Log           *zap.Logger
	ErrLog        *uierrors.ErrorLogger
}

func NewHandler(notifications *notificationstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Notifications: notifications,
		Log:           logger,
		ErrLog:        errLog,
	}
}
