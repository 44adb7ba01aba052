package boardstore_test

import (
	"testing"

	boardstore "github.com/dalemusser/boardhub/internal/app/store/boards"
	"github.com/dalemusser/boardhub/internal/domain/models"
	"github.com/dalemusser/boardhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := boardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	created, err := store.Create(ctx, models.Board{
		Title:       "Roadmap",
		Owner:       owner,
		WorkspaceID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if !created.HasMember(owner) {
		t.Error("expected owner to be seeded into members")
	}
	if created.Background != models.DefaultBoardBackground {
		t.Errorf("expected default background, got %q", created.Background)
	}
	if created.Visibility != models.BoardWorkspace {
		t.Errorf("expected default visibility %q, got %q", models.BoardWorkspace, created.Visibility)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := boardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	b, err := store.Create(ctx, models.Board{Title: "Old", Owner: owner, WorkspaceID: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = store.Update(ctx, b.ID, models.Board{Title: "New", Background: "#222222"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	found, err := store.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.Title != "New" {
		t.Errorf("Title: got %q, want %q", found.Title, "New")
	}
	if found.Background != "#222222" {
		t.Errorf("Background: got %q, want %q", found.Background, "#222222")
	}
	// Untouched fields survive a partial update.
	if found.Visibility != models.BoardWorkspace {
		t.Errorf("Visibility changed unexpectedly: %q", found.Visibility)
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := boardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.Update(ctx, primitive.NewObjectID(), models.Board{Title: "X"})
	if err != boardstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_AddMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := boardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	b, err := store.Create(ctx, models.Board{Title: "Roadmap", Owner: owner, WorkspaceID: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	invitee := primitive.NewObjectID()
	if err := store.AddMember(ctx, b.ID, invitee); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if err := store.AddMember(ctx, b.ID, invitee); err != nil {
		t.Fatalf("second AddMember failed: %v", err)
	}

	found, _ := store.GetByID(ctx, b.ID)
	if len(found.Members) != 2 {
		t.Errorf("expected 2 members, got %d", len(found.Members))
	}
}

func TestStore_ListForMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := boardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := primitive.NewObjectID()
	ws := primitive.NewObjectID()

	b1, _ := store.Create(ctx, models.Board{Title: "One", Owner: alice, WorkspaceID: ws})
	_, _ = store.Create(ctx, models.Board{Title: "Other", Owner: primitive.NewObjectID(), WorkspaceID: ws})

	// Invited membership counts the same as ownership.
	if err := store.AddMember(ctx, b1.ID, alice); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	got, err := store.ListForMember(ctx, alice)
	if err != nil {
		t.Fatalf("ListForMember failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 board for alice, got %d", len(got))
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := boardstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b, err := store.Create(ctx, models.Board{Title: "Gone", Owner: primitive.NewObjectID(), WorkspaceID: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.Delete(ctx, b.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}
	if _, err := store.GetByID(ctx, b.ID); err != boardstore.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
