// internal/app/features/reports/handler.go
package reports

import (
	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	taskstore "github.com/nolanmercer/taskforge/internal/app/store/tasks"
	userstore "github.com/nolanmercer/taskforge/internal/app/store/users"
	"go.uber.org/zap"
)

// Handler owns all report handlers (JSON reports + tabular export).
//
// Reports are read-only: every figure is recomputed per request from the
// task and user stores, so there is no cached derived state to invalidate.
// The stores are external collaborators; the engine folds their rows into
// derived metrics with the pure functions in metrics.go.
type Handler struct {
	Tasks  *taskstore.Store
	Users  *userstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs a reports Handler bound to the given stores.
func NewHandler(tasks *taskstore.Store, users *userstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Tasks:  tasks,
		Users:  users,
		Log:    logger,
		ErrLog: errLog,
	}
}
