// internal/app/store/comments/commentstore.go
package commentstore

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

var ErrNotFound = errors.New("comment not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("comments")}
}

// Create inserts a new comment. Comments are immutable after insert.
func (s *Store) Create(ctx context.Context, cm models.Comment) (models.Comment, error) {
	cm.ID = primitive.NewObjectID()
	if cm.CreatedAt.IsZero() {
		cm.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, cm); err != nil {
		return models.Comment{}, err
	}
	return cm, nil
}

// GetByID retrieves a comment by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Comment, error) {
	var cm models.Comment
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cm)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Comment{}, ErrNotFound
		}
		return models.Comment{}, err
	}
	return cm, nil
}

// ListByCard returns the card's comments oldest first.
func (s *Store) ListByCard(ctx context.Context, cardID primitive.ObjectID) ([]models.Comment, error) {
	cur, err := s.c.Find(ctx, bson.M{"card_id": cardID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Comment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a comment by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByCard removes every comment on the card.
func (s *Store) DeleteByCard(ctx context.Context, cardID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"card_id": cardID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByCards removes every comment on any of the given cards.
func (s *Store) DeleteByCards(ctx context.Context, cardIDs []primitive.ObjectID) (int64, error) {
	if len(cardIDs) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"card_id": bson.M{"$in": cardIDs}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
