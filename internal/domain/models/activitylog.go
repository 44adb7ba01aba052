package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity entry types. Only board-scoped actions are recorded; list, card,
// and comment mutations flow through the realtime broadcaster instead.
const (
	ActivityBoardCreate  = "BOARD_CREATE"
	ActivityBoardUpdate  = "BOARD_UPDATE"
	ActivityMemberInvite = "MEMBER_INVITE"
)

// ActivityMetadata is the per-type payload of an activity entry. Exactly the
// fields for the entry's Type are set; the rest stay zero and are omitted
// from the document.
//
// BOARD_CREATE / BOARD_UPDATE -> Title.
// MEMBER_INVITE               -> InvitedUserID, InvitedUserName.
type ActivityMetadata struct {
	Title           string              `bson:"title,omitempty" json:"title,omitempty"`
	InvitedUserID   *primitive.ObjectID `bson:"invited_user_id,omitempty" json:"invitedUserId,omitempty"`
	InvitedUserName string              `bson:"invited_user_name,omitempty" json:"invitedUserName,omitempty"`
}

// ActivityLogEntry is one append-only record in a board's activity feed.
// Entries are never mutated or deleted by users.
type ActivityLogEntry struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type     string             `bson:"type" json:"type"`
	ActorID  primitive.ObjectID `bson:"actor_id" json:"actorId"`
	BoardID  primitive.ObjectID `bson:"board_id" json:"boardId"`
	Metadata ActivityMetadata   `bson:"metadata" json:"metadata"`

	Timestamp time.Time `bson:"timestamp" json:"timestamp"`

	// Actor is the resolved public profile of ActorID; populated on query,
	// never stored.
	Actor *Profile `bson:"-" json:"actor,omitempty"`
}
