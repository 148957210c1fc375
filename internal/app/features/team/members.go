// internal/app/features/team/members.go
package team

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	userstore "github.com/nolanmercer/taskforge/internal/app/store/users"
	"github.com/nolanmercer/taskforge/internal/app/system/timeouts"
	"github.com/nolanmercer/taskforge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func memberID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "memberID"))
	if err != nil {
		uierrors.WriteValidation(w, "Invalid member ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// ServeList handles GET /api/team, every team member sorted by name.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium, h.Log, "list team")
	defer cancel()

	members, err := h.Users.FindByRole(ctx, models.RoleTeamMember)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list team failed", err, "A database error occurred.")
		return
	}
	if members == nil {
		members = []models.User{}
	}
	uierrors.WriteJSON(w, http.StatusOK, members)
}

// ServeGet handles GET /api/team/{memberID}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "get team member")
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			uierrors.WriteNotFound(w, "Team member not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "get team member failed", err, "A database error occurred.")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, u)
}

type updateMemberRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Status       *string `json:"status"`
	MobileNumber *string `json:"mobileNumber"`
}

// ServeUpdate handles PUT /api/team/{memberID}.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}

	var req updateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.WriteValidation(w, "invalid request body")
		return
	}

	upd := userstore.Update{
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "update team member")
	defer cancel()

	updated, err := h.Users.Apply(ctx, id, upd)
	if err != nil {
		switch {
		case err == mongo.ErrNoDocuments:
			uierrors.WriteNotFound(w, "Team member not found")
		case err == userstore.ErrDuplicateEmail:
			uierrors.WriteValidation(w, err.Error())
		default:
			h.ErrLog.LogServerError(w, r, "update team member failed", err, "A database error occurred.")
		}
		return
	}

	h.Log.Info("team member updated", zap.String("user_id", id.Hex()))
	uierrors.WriteJSON(w, http.StatusOK, updated)
}

// ServeDelete handles DELETE /api/team/{memberID}. The member's tasks keep
// their assignment; reports label a missing assignee as unassigned.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short, h.Log, "delete team member")
	defer cancel()

	n, err := h.Users.Delete(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete team member failed", err, "A database error occurred.")
		return
	}
	if n == 0 {
		uierrors.WriteNotFound(w, "Team member not found")
		return
	}
	h.Log.Info("team member deleted", zap.String("user_id", id.Hex()))
	uierrors.WriteJSON(w, http.StatusOK, map[string]string{"message": "Team member removed successfully"})
}
