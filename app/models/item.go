package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Item is a purchasable catalog entry; like Combatant it has no owner.
type Item struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title string             `bson:"title"         json:"title"`
	Price float64            `bson:"price"         json:"price"`
}
