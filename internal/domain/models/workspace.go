package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workspace visibility kinds.
const (
	WorkspacePrivate = "private"
	WorkspacePublic  = "public"
)

// Workspace is the top-level container: boards belong to exactly one
// workspace. The creator becomes owner and first member; membership grows
// via join and never shrinks.
type Workspace struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name    string               `bson:"name" json:"name"`
	Owner   primitive.ObjectID   `bson:"owner" json:"owner"`
	Members []primitive.ObjectID `bson:"members" json:"members"`

	// Visibility: "private" or "public".
	Visibility string `bson:"visibility" json:"visibility"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasMember reports whether id is in the workspace member set. The owner is
// always a member.
func (w Workspace) HasMember(id primitive.ObjectID) bool {
	for _, m := range w.Members {
		if m == id {
			return true
		}
	}
	return false
}

// IsValidWorkspaceVisibility reports whether v is a known workspace
// visibility kind.
func IsValidWorkspaceVisibility(v string) bool {
	return v == WorkspacePrivate || v == WorkspacePublic
}
