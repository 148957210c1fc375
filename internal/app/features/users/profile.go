// internal/app/features/users/profile.go
package users

import (
	"encoding/json"
	"net/http"
	"strings"

	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	userstore "github.com/nolanmercer/taskforge/internal/app/store/users"
	sysauth "github.com/nolanmercer/taskforge/internal/app/system/auth"
	"github.com/nolanmercer/taskforge/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeProfile handles GET /api/users/profile, the signed-in user's own
// record.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	cu, ok := sysauth.CurrentUser(r)
	if !ok {
		uierrors.WriteUnauthorized(w)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "get profile")
	defer cancel()

	u, err := h.Users.GetByID(ctx, cu.ID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			uierrors.WriteNotFound(w, "User not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "get profile failed", err, "A database error occurred.")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, u)
}

type profileRequest struct {
	Name         *string `json:"name"`
	MobileNumber *string `json:"mobileNumber"`
	Password     *string `json:"password"`
}

// ServeUpdateProfile handles PUT /api/users/profile. Users can change their
// own name, mobile number, and password; role and status stay admin-only.
func (h *Handler) ServeUpdateProfile(w http.ResponseWriter, r *http.Request) {
	cu, ok := sysauth.CurrentUser(r)
	if !ok {
		uierrors.WriteUnauthorized(w)
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.WriteValidation(w, "invalid request body")
		return
	}

	upd := userstore.Update{MobileNumber: req.MobileNumber}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			uierrors.WriteValidation(w, "name cannot be empty")
			return
		}
		upd.Name = &name
	}
	if req.Password != nil {
		if len(*req.Password) < 8 {
			uierrors.WriteValidation(w, "password must be at least 8 characters")
			return
		}
		hash, err := sysauth.HashPassword(*req.Password)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "password hash failed", err, "Could not update the profile.")
			return
		}
		upd.Password = &hash
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "update profile")
	defer cancel()

	updated, err := h.Users.Apply(ctx, cu.ID, upd)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			uierrors.WriteNotFound(w, "User not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "update profile failed", err, "A database error occurred.")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, updated)
}
