// internal/app/store/activity/activitystore.go
package activitystore

import (
	"context"
	"time"

	"github.com/dalemusser/boardhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the append-only board activity log. Entries are written by the
// board feature after its primary write succeeds and are never mutated.
type Store struct {
	c     *mongo.Collection
	users *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("activity_log"),
		users: db.Collection("users"),
	}
}

// Record appends one activity entry.
func (s *Store) Record(ctx context.Context, e models.ActivityLogEntry) error {
	e.ID = primitive.NewObjectID()
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, e)
	return err
}

// QueryByBoard returns the newest entries for the board, newest first, with
// each entry's Actor populated from the users collection. Entries whose
// actor no longer exists keep a nil Actor rather than being dropped.
func (s *Store) QueryByBoard(ctx context.Context, boardID primitive.ObjectID, limit int64) ([]models.ActivityLogEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{"board_id": boardID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []models.ActivityLogEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}

	seen := make(map[primitive.ObjectID]struct{}, len(entries))
	actorIDs := make([]primitive.ObjectID, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.ActorID]; ok {
			continue
		}
		seen[e.ActorID] = struct{}{}
		actorIDs = append(actorIDs, e.ActorID)
	}

	ucur, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": actorIDs}})
	if err != nil {
		return nil, err
	}
	defer ucur.Close(ctx)

	var users []models.User
	if err := ucur.All(ctx, &users); err != nil {
		return nil, err
	}
	profiles := make(map[primitive.ObjectID]models.Profile, len(users))
	for _, u := range users {
		profiles[u.ID] = u.PublicProfile()
	}
	for i := range entries {
		if p, ok := profiles[entries[i].ActorID]; ok {
			entries[i].Actor = &p
		}
	}
	return entries, nil
}
