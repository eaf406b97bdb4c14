package services

import "go.mongodb.org/mongo-driver/bson/primitive"

// Caller is the authenticated identity a request acts as, taken from the
// verified token claims.
type Caller struct {
	ID    string
	Roles []string
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	for _, r := range c.Roles {
		if r == "admin" {
			return true
		}
	}
	return false
}

// OwnerOrAdmin is the single authorization predicate shared by encounters
// and orders: access is granted when the caller owns the resource or holds
// the admin role.
func OwnerOrAdmin(owner primitive.ObjectID, caller Caller) bool {
	return owner.Hex() == caller.ID || caller.IsAdmin()
}
