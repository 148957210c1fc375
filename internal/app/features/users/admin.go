// internal/app/features/users/admin.go
package users

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	userstore "github.com/nolanmercer/taskforge/internal/app/store/users"
	sysauth "github.com/nolanmercer/taskforge/internal/app/system/auth"
	"github.com/nolanmercer/taskforge/internal/app/system/timeouts"
	"github.com/nolanmercer/taskforge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func userID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		uierrors.WriteValidation(w, "Invalid user ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// ServeList handles GET /api/users: admins and team members together,
// admins first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "list users")
	defer cancel()

	all := []models.User{}
	for _, role := range []string{models.RoleAdmin, models.RoleTeamMember} {
		batch, err := h.Users.FindByRole(ctx, role)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "list users failed", err, "A database error occurred.")
			return
		}
		all = append(all, batch...)
	}
	uierrors.WriteJSON(w, http.StatusOK, all)
}

// ServeGet handles GET /api/users/{userID}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "get user")
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			uierrors.WriteNotFound(w, "User not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "get user failed", err, "A database error occurred.")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, u)
}

type adminUserRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Role         *string `json:"role"`
	Status       *string `json:"status"`
	MobileNumber *string `json:"mobileNumber"`
	Password     *string `json:"password"`
}

// ServeUpdate handles PUT /api/users/{userID}. This is the only place a
// user's role can change.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req adminUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.WriteValidation(w, "invalid request body")
		return
	}

	upd := userstore.Update{
		Role:         req.Role,
		Status:       req.Status,
		MobileNumber: req.MobileNumber,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			uierrors.WriteValidation(w, "name cannot be empty")
			return
		}
		upd.Name = &name
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if !strings.Contains(email, "@") {
			uierrors.WriteValidation(w, "invalid email address")
			return
		}
		upd.Email = &email
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			uierrors.WriteValidation(w, "password must be at least 8 characters")
			return
		}
		hash, err := sysauth.HashPassword(*req.Password)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "password hash failed", err, "Could not update the user.")
			return
		}
		upd.Password = &hash
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "update user")
	defer cancel()

	updated, err := h.Users.Apply(ctx, id, upd)
	if err != nil {
		switch {
		case err == mongo.ErrNoDocuments:
			uierrors.WriteNotFound(w, "User not found")
		case err == userstore.ErrDuplicateEmail:
			uierrors.WriteValidation(w, err.Error())
		case userstore.IsValidation(err):
			uierrors.WriteValidation(w, err.Error())
		default:
			h.ErrLog.LogServerError(w, r, "update user failed", err, "A database error occurred.")
		}
		return
	}

	h.Log.Info("user updated", zap.String("user_id", id.Hex()))
	uierrors.WriteJSON(w, http.StatusOK, updated)
}

// ServeDelete handles DELETE /api/users/{userID}. Admins cannot delete
// themselves; it is too easy to lock the whole install out.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	cu, ok := sysauth.CurrentUser(r)
	if !ok {
		uierrors.WriteUnauthorized(w)
		return
	}
	id, ok := userID(w, r)
	if !ok {
		return
	}
	if id == cu.ID {
		uierrors.WriteValidation(w, "you cannot delete your own account")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "delete user")
	defer cancel()

	n, err := h.Users.Delete(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete user failed", err, "A database error occurred.")
		return
	}
	if n == 0 {
		uierrors.WriteNotFound(w, "User not found")
		return
	}
	h.Log.Info("user deleted", zap.String("user_id", id.Hex()))
	uierrors.WriteJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
