package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Encounter is a user-owned, ordered roster of combatants. Combatants are
// stored as resolved snapshots, not references; duplicates are allowed and
// insertion order is the turn order.
type Encounter struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"  json:"id"`
	UserID     primitive.ObjectID `bson:"userId"         json:"userId"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	Combatants []Combatant        `bson:"combatants"     json:"combatants"`
}
