package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Board visibility kinds.
const (
	BoardPrivate   = "private"
	BoardWorkspace = "workspace"
	BoardPublic    = "public"
)

// DefaultBoardBackground is the background token assigned at creation when
// the caller does not provide one.
const DefaultBoardBackground = "#0079bf"

// Board is the authorization root for everything beneath it: the denormalized
// Members set is the single source of truth consulted for every list, card,
// and comment operation.
//
// Invariant: Owner is always present in Members.
type Board struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	Visibility  string               `bson:"visibility" json:"visibility"`
	WorkspaceID primitive.ObjectID   `bson:"workspace_id" json:"workspaceId"`
	Members     []primitive.ObjectID `bson:"members" json:"members"`
	Background  string               `bson:"background" json:"background"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasMember reports whether id is in the board member set.
func (b Board) HasMember(id primitive.ObjectID) bool {
	for _, m := range b.Members {
		if m == id {
			return true
		}
	}
	return false
}

// IsValidBoardVisibility reports whether v is a known board visibility kind.
func IsValidBoardVisibility(v string) bool {
	return v == BoardPrivate || v == BoardWorkspace || v == BoardPublic
}
