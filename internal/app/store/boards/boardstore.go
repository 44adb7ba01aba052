// internal/app/store/boards/boardstore.go
package boardstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/boardhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("board not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("boards")}
}

// Create inserts a new board. The owner is always seeded into the member set
// and a default background is applied if none was given.
func (s *Store) Create(ctx context.Context, b models.Board) (models.Board, error) {
	now := time.Now().UTC()
	b.ID = primitive.NewObjectID()
	if b.Visibility == "" {
		b.Visibility = models.BoardWorkspace
	}
	if b.Background == "" {
		b.Background = models.DefaultBoardBackground
	}
	if !b.HasMember(b.Owner) {
		b.Members = append(b.Members, b.Owner)
	}
	b.CreatedAt = now
	b.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return models.Board{}, err
	}
	return b, nil
}

// GetByID retrieves a board by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Board, error) {
	var b models.Board
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Board{}, ErrNotFound
		}
		return models.Board{}, err
	}
	return b, nil
}

// ListForMember returns all boards the user belongs to.
func (s *Store) ListForMember(ctx context.Context, userID primitive.ObjectID) ([]models.Board, error) {
	cur, err := s.c.Find(ctx, bson.M{"members": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Board
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update modifies a board's mutable fields. Empty fields are left untouched.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, b models.Board) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if b.Title != "" {
		set["title"] = b.Title
	}
	if b.Visibility != "" {
		set["visibility"] = b.Visibility
	}
	if b.Background != "" {
		set["background"] = b.Background
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a board by ID. Lists, cards, comments, and activity under
// it are cascaded by the caller.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AddMember adds the user to the board member set. Adding an existing member
// is a no-op at the database level; callers wanting to reject re-invites
// check membership first.
func (s *Store) AddMember(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"members": userID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
