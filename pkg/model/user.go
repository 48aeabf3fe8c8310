package model

import "time"

const RoleAdmin = "admin"

// User keys on the identity provider's uid, so _id is the uid itself
// rather than a generated ObjectID. Creation is insert-if-absent: a
// repeated POST for the same uid writes nothing.
type User struct {
	UID           string    `json:"uid" bson:"_id" validate:"required,min=1,max=128"`
	Email         string    `json:"email" bson:"email" validate:"required,email"`
	Name          string    `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Role          string    `json:"role,omitempty" bson:"role,omitempty" validate:"omitempty,oneof=admin"`
	RoleChangedBy string    `json:"role_changed_by,omitempty" bson:"role_changed_by,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
