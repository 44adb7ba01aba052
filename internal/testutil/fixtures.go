package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/boardhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with a throwaway password hash.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Email:     email,
		Password:  "$2a$10$fixturefixturefixturefixturefix",
		Avatar:    models.DefaultAvatarURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateWorkspace inserts a workspace owned by owner, who is also its first
// member.
func (f *Fixtures) CreateWorkspace(ctx context.Context, name string, owner primitive.ObjectID) models.Workspace {
	f.t.Helper()

	now := time.Now().UTC()
	w := models.Workspace{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Owner:      owner,
		Members:    []primitive.ObjectID{owner},
		Visibility: models.WorkspacePrivate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("workspaces").InsertOne(ctx, w); err != nil {
		f.t.Fatalf("failed to create test workspace: %v", err)
	}
	return w
}

// CreateBoard inserts a board in the workspace with owner as sole member.
func (f *Fixtures) CreateBoard(ctx context.Context, title string, workspaceID, owner primitive.ObjectID) models.Board {
	f.t.Helper()

	now := time.Now().UTC()
	b := models.Board{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Owner:       owner,
		Visibility:  models.BoardWorkspace,
		WorkspaceID: workspaceID,
		Members:     []primitive.ObjectID{owner},
		Background:  models.DefaultBoardBackground,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("boards").InsertOne(ctx, b); err != nil {
		f.t.Fatalf("failed to create test board: %v", err)
	}
	return b
}

// AddBoardMember pushes a user into the board's member set.
func (f *Fixtures) AddBoardMember(ctx context.Context, boardID, userID primitive.ObjectID) {
	f.t.Helper()

	_, err := f.db.Collection("boards").UpdateByID(ctx, boardID,
		map[string]any{"$addToSet": map[string]any{"members": userID}})
	if err != nil {
		f.t.Fatalf("failed to add board member: %v", err)
	}
}

// CreateList inserts a list at the given position.
func (f *Fixtures) CreateList(ctx context.Context, title string, boardID primitive.ObjectID, pos float64) models.List {
	f.t.Helper()

	now := time.Now().UTC()
	l := models.List{
		ID:        primitive.NewObjectID(),
		Title:     title,
		BoardID:   boardID,
		Position:  pos,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("lists").InsertOne(ctx, l); err != nil {
		f.t.Fatalf("failed to create test list: %v", err)
	}
	return l
}

// CreateCard inserts a card at the given position with no assignees.
func (f *Fixtures) CreateCard(ctx context.Context, title string, listID primitive.ObjectID, pos float64) models.Card {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Card{
		ID:        primitive.NewObjectID(),
		Title:     title,
		TitleCI:   text.Fold(title),
		ListID:    listID,
		Position:  pos,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("cards").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test card: %v", err)
	}
	return c
}

// CreateComment inserts a comment on a card.
func (f *Fixtures) CreateComment(ctx context.Context, textBody string, cardID, authorID primitive.ObjectID) models.Comment {
	f.t.Helper()

	c := models.Comment{
		ID:        primitive.NewObjectID(),
		Text:      textBody,
		AuthorID:  authorID,
		CardID:    cardID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("comments").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test comment: %v", err)
	}
	return c
}
