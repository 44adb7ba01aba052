// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultAvatarURL is used when a user registers without an avatar.
const DefaultAvatarURL = "https://boardhub.app/static/avatar-placeholder.png"

// User represents a registered account.
//
// NOTE:
//   - Password holds the bcrypt hash and is never serialized outward
//     (`json:"-"`). Stores that load users for display should project it
//     away as well.
//   - Board/workspace membership is not embedded on User; membership lives
//     on the boards and workspaces collections.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	NameCI   string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password,omitempty" json:"-"`
	Avatar   string             `bson:"avatar,omitempty" json:"avatar,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Profile is the public projection of a user, safe to embed in API
// responses, activity entries, and realtime payloads.
type Profile struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Email  string             `bson:"email,omitempty" json:"email,omitempty"`
	Avatar string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

// PublicProfile returns the outward-facing fields of a user.
func (u User) PublicProfile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
}
