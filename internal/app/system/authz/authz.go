// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/nolanmercer/taskforge/internal/app/system/auth"
	"github.com/nolanmercer/taskforge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the caller's role (lowercased), name, ObjectID, and a
// found flag. ok=true means a valid, authenticated user is present; the
// identity is available for audit even on read-only report requests.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(u.Role), u.Name, u.ID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

// IsTeamMember reports whether the current request's user is a team member.
func IsTeamMember(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleTeamMember
}
