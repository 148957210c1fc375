// internal/app/features/team/create.go
package team

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"

	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	userstore "github.com/nolanmercer/taskforge/internal/app/store/users"
	sysauth "github.com/nolanmercer/taskforge/internal/app/system/auth"
	"github.com/nolanmercer/taskforge/internal/app/system/timeouts"
	"github.com/nolanmercer/taskforge/internal/domain/models"
	"go.uber.org/zap"
)

type createMemberRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	MobileNumber string `json:"mobileNumber"`
}

// newEmployeeID picks a random EMP number. Uniqueness is not enforced; the
// ID is a human-friendly label, the ObjectID stays the real key.
func newEmployeeID() string {
	return fmt.Sprintf("EMP%04d", 1000+rand.IntN(9000))
}

// ServeCreate handles POST /api/team. New members are always created with
// the team member role.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.WriteValidation(w, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		uierrors.WriteValidation(w, "name, email, and password are required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		uierrors.WriteValidation(w, "invalid email address")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "create team member")
	defer cancel()

	exists, err := h.Users.EmailExists(ctx, req.Email)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "email check failed", err, "A database error occurred.")
		return
	}
	if exists {
		uierrors.WriteValidation(w, "User already exists")
		return
	}

	hash, err := sysauth.HashPassword(req.Password)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "password hash failed", err, "Could not create the team member.")
		return
	}

	created, err := h.Users.Create(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		Password:     hash,
		Role:         models.RoleTeamMember,
		EmployeeID:   newEmployeeID(),
		MobileNumber: strings.TrimSpace(req.MobileNumber),
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			uierrors.WriteValidation(w, "User already exists")
			return
		}
		h.ErrLog.LogServerError(w, r, "create team member failed", err, "A database error occurred.")
		return
	}

	h.Log.Info("team member created",
		zap.String("user_id", created.ID.Hex()),
		zap.String("employee_id", created.EmployeeID))
	uierrors.WriteJSON(w, http.StatusCreated, created)
}
