package userstore_test

import (
	"testing"

	userstore "github.com/dalemusser/boardhub/internal/app/store/users"
	"github.com/dalemusser/boardhub/internal/domain/models"
	"github.com/dalemusser/boardhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := models.User{
		Name:     "Ada Lovelace",
		Email:    "  Ada@Example.COM ",
		Password: "hashed",
	}

	created, err := store.Create(ctx, u)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Email != "ada@example.com" {
		t.Errorf("expected normalized email, got %q", created.Email)
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
	if created.Avatar == "" {
		t.Error("expected default avatar to be set")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u1 := models.User{Name: "First", Email: "same@example.com", Password: "x"}
	if _, err := store.Create(ctx, u1); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Same address with different casing still collides.
	u2 := models.User{Name: "Second", Email: "Same@Example.com", Password: "x"}
	_, err := store.Create(ctx, u2)
	if err != userstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{Name: "Ada", Email: "ada@example.com", Password: "x"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := store.GetByEmail(ctx, "ADA@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID: got %v, want %v", found.ID, created.ID)
	}

	if _, err := store.GetByEmail(ctx, "nobody@example.com"); err != userstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Profiles(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, _ := store.Create(ctx, models.User{Name: "A", Email: "a@example.com", Password: "x"})
	b, _ := store.Create(ctx, models.User{Name: "B", Email: "b@example.com", Password: "x"})

	missing := primitive.NewObjectID()
	profiles, err := store.Profiles(ctx, []primitive.ObjectID{a.ID, b.ID, missing})
	if err != nil {
		t.Fatalf("Profiles failed: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	if profiles[a.ID].Name != "A" {
		t.Errorf("profile name: got %q, want %q", profiles[a.ID].Name, "A")
	}
	if _, ok := profiles[missing]; ok {
		t.Error("missing ID should not be in the result")
	}
}

func TestStore_MatchNameOrEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ada, _ := store.Create(ctx, models.User{Name: "Ada Lovelace", Email: "ada@example.com", Password: "x"})
	_, _ = store.Create(ctx, models.User{Name: "Grace Hopper", Email: "grace@example.com", Password: "x"})

	ids, err := store.MatchNameOrEmail(ctx, "lovelace")
	if err != nil {
		t.Fatalf("MatchNameOrEmail failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != ada.ID {
		t.Errorf("expected only Ada, got %v", ids)
	}
}

func TestStore_MatchNameOrEmail_Folded(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	jose, _ := store.Create(ctx, models.User{Name: "José Muñoz", Email: "jm@example.com", Password: "x"})

	// A plain-ASCII query matches the accented name through name_ci.
	ids, err := store.MatchNameOrEmail(ctx, "munoz")
	if err != nil {
		t.Fatalf("MatchNameOrEmail failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != jose.ID {
		t.Errorf("expected folded name match, got %v", ids)
	}
}
