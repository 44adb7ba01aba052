package workspaces_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/boardhub/internal/app/features/workspaces"
	workspacestore "github.com/dalemusser/boardhub/internal/app/store/workspaces"
	"github.com/dalemusser/boardhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*workspaces.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := workspaces.NewHandler(workspacestore.New(db), zap.NewNop())
	return handler, testutil.NewFixtures(t, db)
}

func TestCreate(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := f.CreateUser(ctx, "Ada", "ada@example.com")

	req := testutil.NewJSONRequest(t, "POST", "/workspaces", map[string]string{"name": "Engineering"})
	req = testutil.AsUser(req, u)
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	var resp struct {
		Members []string `json:"members"`
		Owner   string   `json:"owner"`
	}
	testutil.DecodeJSONResponse(t, rec, &resp)
	if resp.Owner != u.ID.Hex() {
		t.Errorf("owner: got %q, want %q", resp.Owner, u.ID.Hex())
	}
	if len(resp.Members) != 1 || resp.Members[0] != u.ID.Hex() {
		t.Errorf("members: got %v", resp.Members)
	}
}

func TestCreate_EmptyName(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := f.CreateUser(ctx, "Ada", "ada@example.com")

	req := testutil.NewJSONRequest(t, "POST", "/workspaces", map[string]string{"name": "   "})
	req = testutil.AsUser(req, u)
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestJoin(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateUser(ctx, "Owner", "owner@example.com")
	joiner := f.CreateUser(ctx, "Joiner", "joiner@example.com")
	ws := f.CreateWorkspace(ctx, "Engineering", owner.ID)

	req := testutil.NewJSONRequest(t, "POST", "/workspaces/join", map[string]string{
		"workspaceId": ws.ID.Hex(),
	})
	req = testutil.AsUser(req, joiner)
	rec := httptest.NewRecorder()
	handler.Join(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	// Joining again conflicts.
	req = testutil.NewJSONRequest(t, "POST", "/workspaces/join", map[string]string{
		"workspaceId": ws.ID.Hex(),
	})
	req = testutil.AsUser(req, joiner)
	rec = httptest.NewRecorder()
	handler.Join(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected %d, got %d", http.StatusConflict, rec.Code)
	}
}

func TestJoin_NotFound(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := f.CreateUser(ctx, "Ada", "ada@example.com")

	req := testutil.NewJSONRequest(t, "POST", "/workspaces/join", map[string]string{
		"workspaceId": primitive.NewObjectID().Hex(),
	})
	req = testutil.AsUser(req, u)
	rec := httptest.NewRecorder()
	handler.Join(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestList(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := f.CreateUser(ctx, "Alice", "alice@example.com")
	bob := f.CreateUser(ctx, "Bob", "bob@example.com")
	f.CreateWorkspace(ctx, "Alice WS", alice.ID)
	f.CreateWorkspace(ctx, "Bob WS", bob.ID)

	req := testutil.NewJSONRequest(t, "GET", "/workspaces", nil)
	req = testutil.AsUser(req, alice)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	var resp []struct {
		Name string `json:"name"`
	}
	testutil.DecodeJSONResponse(t, rec, &resp)
	if len(resp) != 1 || resp[0].Name != "Alice WS" {
		t.Errorf("expected only Alice WS, got %v", resp)
	}
}
