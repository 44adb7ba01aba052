package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is an immutable note on a card, deletable only by its author.
type Comment struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text     string             `bson:"text" json:"text"`
	AuthorID primitive.ObjectID `bson:"author_id" json:"authorId"`
	CardID   primitive.ObjectID `bson:"card_id" json:"cardId"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
