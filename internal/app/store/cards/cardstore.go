// internal/app/store/cards/cardstore.go
package cardstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/dalemusser/boardhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("card not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("cards")}
}

var positionSort = bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}}

// Create inserts a new card at the given position.
func (s *Store) Create(ctx context.Context, c models.Card) (models.Card, error) {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.TitleCI = text.Fold(c.Title)
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Card{}, err
	}
	return c, nil
}

// GetByID retrieves a card by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Card, error) {
	var c models.Card
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Card{}, ErrNotFound
		}
		return models.Card{}, err
	}
	return c, nil
}

// ListByList returns the list's cards in display order.
func (s *Store) ListByList(ctx context.Context, listID primitive.ObjectID) ([]models.Card, error) {
	cur, err := s.c.Find(ctx, bson.M{"list_id": listID}, options.Find().SetSort(positionSort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Card
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MaxPosition returns the highest position in the list and whether any card
// exists there.
func (s *Store) MaxPosition(ctx context.Context, listID primitive.ObjectID) (float64, bool, error) {
	var c models.Card
	opts := options.FindOne().SetSort(bson.D{{Key: "position", Value: -1}, {Key: "_id", Value: -1}})
	err := s.c.FindOne(ctx, bson.M{"list_id": listID}, opts).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, false, nil
		}
		return 0, false, err
	}
	return c.Position, true, nil
}

// UpdateFields applies a partial update built by the caller. The set must
// not be empty; updated_at is stamped here, and a title change refreshes the
// folded title_ci search field alongside it.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	if title, ok := set["title"].(string); ok {
		set["title_ci"] = text.Fold(title)
	}
	set["updated_at"] = time.Now().UTC()
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Move rewrites the card's parent list and position together so a cross-list
// move is a single write.
func (s *Store) Move(ctx context.Context, id, listID primitive.ObjectID, pos float64) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"list_id":    listID,
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

// AddAssignee and RemoveAssignee toggle membership in the card's assignee
// set; both are idempotent.
func (s *Store) AddAssignee(ctx context.Context, id, userID primitive.ObjectID) error {
	return s.toggle(ctx, id, "$addToSet", "assignees", userID)
}

func (s *Store) RemoveAssignee(ctx context.Context, id, userID primitive.ObjectID) error {
	return s.toggle(ctx, id, "$pull", "assignees", userID)
}

// AddLabel and RemoveLabel toggle a label on the card; both are idempotent.
func (s *Store) AddLabel(ctx context.Context, id primitive.ObjectID, label string) error {
	return s.toggle(ctx, id, "$addToSet", "labels", label)
}

func (s *Store) RemoveLabel(ctx context.Context, id primitive.ObjectID, label string) error {
	return s.toggle(ctx, id, "$pull", "labels", label)
}

func (s *Store) toggle(ctx context.Context, id primitive.ObjectID, op, field string, value any) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		op:     bson.M{field: value},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Search returns cards under the given lists whose title, description, or
// labels contain the query, or that are assigned to one of the matched
// users. Titles match through the folded title_ci field so plain ASCII
// queries also find accented titles; description and labels fall back to a
// case-insensitive regex over the raw text. Results come back grouped by
// list order.
func (s *Store) Search(ctx context.Context, listIDs []primitive.ObjectID, query string, assigneeIDs []primitive.ObjectID) ([]models.Card, error) {
	if len(listIDs) == 0 {
		return nil, nil
	}
	folded := primitive.Regex{Pattern: regexp.QuoteMeta(text.Fold(query))}
	raw := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	or := []bson.M{
		{"title_ci": folded},
		{"description": raw},
		{"labels": raw},
	}
	if len(assigneeIDs) > 0 {
		or = append(or, bson.M{"assignees": bson.M{"$in": assigneeIDs}})
	}
	filter := bson.M{
		"list_id": bson.M{"$in": listIDs},
		"$or":     or,
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(
		bson.D{{Key: "list_id", Value: 1}, {Key: "position", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Card
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a card by ID. Comments under it are cascaded by the caller.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByList removes every card in the list.
func (s *Store) DeleteByList(ctx context.Context, listID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"list_id": listID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByLists removes every card in any of the given lists.
func (s *Store) DeleteByLists(ctx context.Context, listIDs []primitive.ObjectID) (int64, error) {
	if len(listIDs) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"list_id": bson.M{"$in": listIDs}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// IDsByLists returns the card IDs under any of the given lists. Used to
// cascade comment deletion before the cards themselves go.
func (s *Store) IDsByLists(ctx context.Context, listIDs []primitive.ObjectID) ([]primitive.ObjectID, error) {
	if len(listIDs) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"list_id": bson.M{"$in": listIDs}},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}
