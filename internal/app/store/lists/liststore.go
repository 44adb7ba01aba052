// internal/app/store/lists/liststore.go
package liststore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/boardhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("list not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("lists")}
}

// positionSort orders siblings ascending by position, ties broken by _id so
// equal positions still yield a stable order.
var positionSort = bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}}

// Create inserts a new list at the given position.
func (s *Store) Create(ctx context.Context, l models.List) (models.List, error) {
	now := time.Now().UTC()
	l.ID = primitive.NewObjectID()
	l.CreatedAt = now
	l.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, l); err != nil {
		return models.List{}, err
	}
	return l, nil
}

// GetByID retrieves a list by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.List, error) {
	var l models.List
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.List{}, ErrNotFound
		}
		return models.List{}, err
	}
	return l, nil
}

// ListByBoard returns the board's lists in display order.
func (s *Store) ListByBoard(ctx context.Context, boardID primitive.ObjectID) ([]models.List, error) {
	cur, err := s.c.Find(ctx, bson.M{"board_id": boardID}, options.Find().SetSort(positionSort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.List
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MaxPosition returns the highest position on the board and whether any list
// exists there.
func (s *Store) MaxPosition(ctx context.Context, boardID primitive.ObjectID) (float64, bool, error) {
	var l models.List
	opts := options.FindOne().SetSort(bson.D{{Key: "position", Value: -1}, {Key: "_id", Value: -1}})
	err := s.c.FindOne(ctx, bson.M{"board_id": boardID}, opts).Decode(&l)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, false, nil
		}
		return 0, false, err
	}
	return l.Position, true, nil
}

// Rename updates a list's title.
func (s *Store) Rename(ctx context.Context, id primitive.ObjectID, title string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"title":      title,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPosition moves a list to a new ordering key.
func (s *Store) SetPosition(ctx context.Context, id primitive.ObjectID, pos float64) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"position":   pos,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyPositions rewrites the position of every listed ID in one bulk write.
// Callers run it inside a transaction when available so a bulk reorder is
// all-or-nothing.
func (s *Store) ApplyPositions(ctx context.Context, positions map[primitive.ObjectID]float64) error {
	if len(positions) == 0 {
		return nil
	}
	now := time.Now().UTC()
	writes := make([]mongo.WriteModel, 0, len(positions))
	for id, pos := range positions {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id}).
			SetUpdate(bson.M{"$set": bson.M{"position": pos, "updated_at": now}}))
	}
	_, err := s.c.BulkWrite(ctx, writes)
	return err
}

// Delete removes a list by ID. Cards under it are cascaded by the caller.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByBoard removes every list on the board.
func (s *Store) DeleteByBoard(ctx context.Context, boardID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"board_id": boardID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
