// internal/app/features/team/handler.go
package team

import (
	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	taskstore "github.com/nolanmercer/taskforge/internal/app/store/tasks"
	userstore "github.com/nolanmercer/taskforge/internal/app/store/users"
	"go.uber.org/zap"
)

// Handler owns team member management and the per-member workload view.
type Handler struct {
	Users  *userstore.Store
	Tasks  *taskstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(users *userstore.Store, tasks *taskstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  users,
		Tasks:  tasks,
		Log:    logger,
		ErrLog: errLog,
	}
}
