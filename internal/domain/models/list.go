package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// List is an ordered column on a board. Position is a real-number ordering
// key: siblings sort ascending by position, ties broken by _id. The value
// itself carries no meaning beyond ordering.
type List struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	BoardID  primitive.ObjectID `bson:"board_id" json:"boardId"`
	Position float64            `bson:"position" json:"position"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
