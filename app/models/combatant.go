package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Combatant is a reusable catalog entry; it has no owner.
type Combatant struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name"          json:"name"`
	Initiative float64            `bson:"initiative"    json:"initiative"`
	Hitpoints  float64            `bson:"hitpoints"     json:"hitpoints"`
}
