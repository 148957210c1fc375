// internal/app/features/auth/handler.go
package auth

import (
	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	userstore "github.com/nolanmercer/taskforge/internal/app/store/users"
	sysauth "github.com/nolanmercer/taskforge/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler owns login and registration.
type Handler struct {
	Users  *userstore.Store
	Tokens *sysauth.TokenManager
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs an auth Handler.
func NewHandler(users *userstore.Store, tokens *sysauth.TokenManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  users,
		Tokens: tokens,
		Log:    logger,
		ErrLog: errLog,
	}
}
