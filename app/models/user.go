package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a registered account. The password hash is never serialised.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email"         json:"email"`
	Password string             `bson:"password"      json:"-"`
	Roles    []string           `bson:"roles"         json:"roles"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user carries the "admin" role.
func (u *User) IsAdmin() bool { return u.HasRole("admin") }
