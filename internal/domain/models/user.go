// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleAdmin      = "admin"
	RoleTeamMember = "team_member"
)

// User statuses.
const (
	UserActive   = "active"
	UserDisabled = "disabled"
)

// User represents admins and team members.
//
// Password holds the bcrypt hash and is never serialized to JSON.
// NameCI is the case-folded form of Name used for sorting and lookup.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	NameCI       string             `bson:"name_ci" json:"-"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password" json:"-"`
	Role         string             `bson:"role" json:"role"` // admin | team_member
	Status       string             `bson:"status,omitempty" json:"status,omitempty"`
	EmployeeID   string             `bson:"employee_id,omitempty" json:"employee_id,omitempty"`
	MobileNumber string             `bson:"mobile_number,omitempty" json:"mobile_number,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
