package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Card is an ordered item within a list.
//
// Invariant: ListID always references a list on the same board the actor was
// authorized against; moving a card rewrites ListID and Position together.
// Assignees must be members of the owning board.
type Card struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	TitleCI     string               `bson:"title_ci" json:"-"`
	Description string               `bson:"description,omitempty" json:"description"`
	Labels      []string             `bson:"labels,omitempty" json:"labels"`
	Assignees   []primitive.ObjectID `bson:"assignees,omitempty" json:"assignees"`
	DueDate     *time.Time           `bson:"due_date,omitempty" json:"dueDate,omitempty"`
	ListID      primitive.ObjectID   `bson:"list_id" json:"listId"`
	Position    float64              `bson:"position" json:"position"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasAssignee reports whether id is currently assigned to the card.
func (c Card) HasAssignee(id primitive.ObjectID) bool {
	for _, a := range c.Assignees {
		if a == id {
			return true
		}
	}
	return false
}

// HasLabel reports whether the card carries the given label.
func (c Card) HasLabel(label string) bool {
	for _, l := range c.Labels {
		if l == label {
			return true
		}
	}
	return false
}
