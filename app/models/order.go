package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Order is a user-owned list of item snapshots with a computed total.
// It mirrors Encounter's ownership shape but has no deletion guard.
type Order struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId"        json:"userId"`
	Items  []Item             `bson:"items"         json:"items"`
	Total  float64            `bson:"total"         json:"total"`
}
