// internal/app/features/auth/login.go
package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	sysauth "github.com/nolanmercer/taskforge/internal/app/system/auth"
	"github.com/nolanmercer/taskforge/internal/app/system/timeouts"
	"github.com/nolanmercer/taskforge/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// ServeLogin handles POST /api/auth/login.
//
// A wrong email and a wrong password produce the same response, so the
// endpoint does not leak which accounts exist.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.WriteValidation(w, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		uierrors.WriteValidation(w, "email and password are required")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "login")
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			uierrors.WriteMessage(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.ErrLog.LogServerError(w, r, "login lookup failed", err, "A database error occurred.")
		return
	}
	if !sysauth.CheckPassword(u.Password, req.Password) {
		h.Log.Info("login failed", zap.String("email", req.Email))
		uierrors.WriteMessage(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if u.Status == models.UserDisabled {
		uierrors.WriteForbidden(w)
		return
	}

	token, err := h.Tokens.Issue(u)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "token issue failed", err, "Could not complete login.")
		return
	}

	h.Log.Info("login succeeded", zap.String("user_id", u.ID.Hex()))
	uierrors.WriteJSON(w, http.StatusOK, loginResponse{Token: token, User: *u})
}
