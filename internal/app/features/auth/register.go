// internal/app/features/auth/register.go
package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	userstore "github.com/nolanmercer/taskforge/internal/app/store/users"
	sysauth "github.com/nolanmercer/taskforge/internal/app/system/auth"
	"github.com/nolanmercer/taskforge/internal/app/system/timeouts"
	"github.com/nolanmercer/taskforge/internal/domain/models"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeRegister handles POST /api/auth/register.
//
// Self-registration always produces a team member; admins are created by
// promoting an existing user through the admin user endpoints.
func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.WriteValidation(w, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		uierrors.WriteValidation(w, "name and email are required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		uierrors.WriteValidation(w, "invalid email address")
		return
	}
	if len(req.Password) < 8 {
		uierrors.WriteValidation(w, "password must be at least 8 characters")
		return
	}

	hash, err := sysauth.HashPassword(req.Password)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "password hash failed", err, "Could not complete registration.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "register")
	defer cancel()

	created, err := h.Users.Create(ctx, models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleTeamMember,
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			uierrors.WriteValidation(w, err.Error())
			return
		}
		h.ErrLog.LogServerError(w, r, "create user failed", err, "A database error occurred.")
		return
	}

	token, err := h.Tokens.Issue(&created)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "token issue failed", err, "Could not complete registration.")
		return
	}

	uierrors.WriteJSON(w, http.StatusCreated, loginResponse{Token: token, User: created})
}
