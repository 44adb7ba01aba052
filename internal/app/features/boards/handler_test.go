package boards_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/boardhub/internal/app/features/boards"
	"github.com/dalemusser/boardhub/internal/app/policy/boardpolicy"
	activitystore "github.com/dalemusser/boardhub/internal/app/store/activity"
	boardstore "github.com/dalemusser/boardhub/internal/app/store/boards"
	cardstore "github.com/dalemusser/boardhub/internal/app/store/cards"
	commentstore "github.com/dalemusser/boardhub/internal/app/store/comments"
	liststore "github.com/dalemusser/boardhub/internal/app/store/lists"
	userstore "github.com/dalemusser/boardhub/internal/app/store/users"
	workspacestore "github.com/dalemusser/boardhub/internal/app/store/workspaces"
	"github.com/dalemusser/boardhub/internal/domain/models"
	"github.com/dalemusser/boardhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*boards.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	bs := boardstore.New(db)
	ls := liststore.New(db)
	cs := cardstore.New(db)
	cms := commentstore.New(db)
	resolver := boardpolicy.NewResolver(bs, ls, cs, cms)
	handler := boards.NewHandler(
		bs, workspacestore.New(db), ls, cs, cms,
		userstore.New(db), activitystore.New(db), resolver, zap.NewNop())
	return handler, testutil.NewFixtures(t, db)
}

func TestCreate(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := f.CreateUser(ctx, "Ada", "ada@example.com")
	ws := f.CreateWorkspace(ctx, "Engineering", u.ID)

	req := testutil.NewJSONRequest(t, "POST", "/boards", map[string]string{
		"title":       "Roadmap",
		"workspaceId": ws.ID.Hex(),
	})
	req = testutil.AsUser(req, u)
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	var resp struct {
		ID      string   `json:"id"`
		Owner   string   `json:"owner"`
		Members []string `json:"members"`
	}
	testutil.DecodeJSONResponse(t, rec, &resp)
	if resp.Owner != u.ID.Hex() {
		t.Errorf("owner: got %q", resp.Owner)
	}
	if len(resp.Members) != 1 {
		t.Errorf("expected creator as sole member, got %v", resp.Members)
	}

	// BOARD_CREATE lands in the activity feed.
	n, err := f.DB().Collection("activity_log").CountDocuments(ctx, bson.M{
		"type": models.ActivityBoardCreate,
	})
	if err != nil {
		t.Fatalf("count activity: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 BOARD_CREATE entry, got %d", n)
	}
}

func TestCreate_NotWorkspaceMember(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateUser(ctx, "Owner", "owner@example.com")
	outsider := f.CreateUser(ctx, "Outsider", "out@example.com")
	ws := f.CreateWorkspace(ctx, "Engineering", owner.ID)

	req := testutil.NewJSONRequest(t, "POST", "/boards", map[string]string{
		"title":       "Roadmap",
		"workspaceId": ws.ID.Hex(),
	})
	req = testutil.AsUser(req, outsider)
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestGet_MemberOnly(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateUser(ctx, "Owner", "owner@example.com")
	outsider := f.CreateUser(ctx, "Outsider", "out@example.com")
	ws := f.CreateWorkspace(ctx, "WS", owner.ID)
	board := f.CreateBoard(ctx, "Roadmap", ws.ID, owner.ID)

	req := testutil.NewJSONRequest(t, "GET", "/boards/"+board.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "boardID", board.ID.Hex())
	req = testutil.AsUser(req, owner)
	rec := httptest.NewRecorder()
	handler.Get(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var resp struct {
		MemberProfiles []struct {
			Name string `json:"name"`
		} `json:"memberProfiles"`
	}
	testutil.DecodeJSONResponse(t, rec, &resp)
	if len(resp.MemberProfiles) != 1 || resp.MemberProfiles[0].Name != "Owner" {
		t.Errorf("memberProfiles: got %v", resp.MemberProfiles)
	}

	req = testutil.NewJSONRequest(t, "GET", "/boards/"+board.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "boardID", board.ID.Hex())
	req = testutil.AsUser(req, outsider)
	rec = httptest.NewRecorder()
	handler.Get(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected %d for outsider, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestUpdate_OwnerOnly(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateUser(ctx, "Owner", "owner@example.com")
	member := f.CreateUser(ctx, "Member", "member@example.com")
	ws := f.CreateWorkspace(ctx, "WS", owner.ID)
	board := f.CreateBoard(ctx, "Old Title", ws.ID, owner.ID)
	f.AddBoardMember(ctx, board.ID, member.ID)

	// A plain member cannot update.
	req := testutil.NewJSONRequest(t, "PUT", "/boards/"+board.ID.Hex(), map[string]string{"title": "Hijacked"})
	req = testutil.WithChiURLParam(req, "boardID", board.ID.Hex())
	req = testutil.AsUser(req, member)
	rec := httptest.NewRecorder()
	handler.Update(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected %d for member, got %d", http.StatusForbidden, rec.Code)
	}

	req = testutil.NewJSONRequest(t, "PUT", "/boards/"+board.ID.Hex(), map[string]string{"title": "New Title"})
	req = testutil.WithChiURLParam(req, "boardID", board.ID.Hex())
	req = testutil.AsUser(req, owner)
	rec = httptest.NewRecorder()
	handler.Update(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var resp struct {
		Title string `json:"title"`
	}
	testutil.DecodeJSONResponse(t, rec, &resp)
	if resp.Title != "New Title" {
		t.Errorf("title: got %q", resp.Title)
	}
}

func TestDelete_Cascades(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateUser(ctx, "Owner", "owner@example.com")
	ws := f.CreateWorkspace(ctx, "WS", owner.ID)
	board := f.CreateBoard(ctx, "Roadmap", ws.ID, owner.ID)
	list := f.CreateList(ctx, "Todo", board.ID, 1000)
	card := f.CreateCard(ctx, "Task", list.ID, 1000)
	f.CreateComment(ctx, "note", card.ID, owner.ID)

	req := testutil.NewJSONRequest(t, "DELETE", "/boards/"+board.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "boardID", board.ID.Hex())
	req = testutil.AsUser(req, owner)
	rec := httptest.NewRecorder()
	handler.Delete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	db := f.DB()
	for _, col := range []string{"boards", "lists", "cards", "comments"} {
		n, err := db.Collection(col).CountDocuments(ctx, bson.M{})
		if err != nil {
			t.Fatalf("count %s: %v", col, err)
		}
		if n != 0 {
			t.Errorf("expected %s to be empty, got %d", col, n)
		}
	}
}

func TestInvite(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateUser(ctx, "Owner", "owner@example.com")
	invitee := f.CreateUser(ctx, "Invitee", "invitee@example.com")
	ws := f.CreateWorkspace(ctx, "WS", owner.ID)
	board := f.CreateBoard(ctx, "Roadmap", ws.ID, owner.ID)

	body := map[string]string{"boardId": board.ID.Hex(), "email": "invitee@example.com"}
	req := testutil.NewJSONRequest(t, "POST", "/boards/invite", body)
	req = testutil.AsUser(req, owner)
	rec := httptest.NewRecorder()
	handler.Invite(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	// Second invite conflicts.
	req = testutil.NewJSONRequest(t, "POST", "/boards/invite", body)
	req = testutil.AsUser(req, owner)
	rec = httptest.NewRecorder()
	handler.Invite(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected %d for re-invite, got %d", http.StatusConflict, rec.Code)
	}

	// Unknown email is a 404.
	req = testutil.NewJSONRequest(t, "POST", "/boards/invite", map[string]string{
		"boardId": board.ID.Hex(), "email": "ghost@example.com",
	})
	req = testutil.AsUser(req, owner)
	rec = httptest.NewRecorder()
	handler.Invite(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected %d for unknown email, got %d", http.StatusNotFound, rec.Code)
	}

	// MEMBER_INVITE entry exists with the invitee's name.
	var entry models.ActivityLogEntry
	err := f.DB().Collection("activity_log").FindOne(ctx, bson.M{
		"type": models.ActivityMemberInvite,
	}).Decode(&entry)
	if err != nil {
		t.Fatalf("expected MEMBER_INVITE entry: %v", err)
	}
	if entry.Metadata.InvitedUserName != "Invitee" {
		t.Errorf("invited name: got %q", entry.Metadata.InvitedUserName)
	}

	// The invitee can now see the board.
	req = testutil.NewJSONRequest(t, "GET", "/boards/"+board.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "boardID", board.ID.Hex())
	req = testutil.AsUser(req, invitee)
	rec = httptest.NewRecorder()
	handler.Get(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("invitee should see board, got %d", rec.Code)
	}
}

func TestInvite_AnyMemberCanInvite(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateUser(ctx, "Owner", "owner@example.com")
	member := f.CreateUser(ctx, "Member", "member@example.com")
	f.CreateUser(ctx, "Third", "third@example.com")
	ws := f.CreateWorkspace(ctx, "WS", owner.ID)
	board := f.CreateBoard(ctx, "Roadmap", ws.ID, owner.ID)
	f.AddBoardMember(ctx, board.ID, member.ID)

	// Inviting is member-gated, not owner-only.
	body := map[string]string{"boardId": board.ID.Hex(), "email": "third@example.com"}
	req := testutil.NewJSONRequest(t, "POST", "/boards/invite", body)
	req = testutil.AsUser(req, member)
	rec := httptest.NewRecorder()
	handler.Invite(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("member invite: expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	// A non-member still cannot invite.
	outsider := f.CreateUser(ctx, "Outsider", "outsider@example.com")
	req = testutil.NewJSONRequest(t, "POST", "/boards/invite", map[string]string{
		"boardId": board.ID.Hex(), "email": "owner@example.com",
	})
	req = testutil.AsUser(req, outsider)
	rec = httptest.NewRecorder()
	handler.Invite(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("outsider invite: expected %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestActivityFeed(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateUser(ctx, "Owner", "owner@example.com")
	ws := f.CreateWorkspace(ctx, "WS", owner.ID)
	board := f.CreateBoard(ctx, "Roadmap", ws.ID, owner.ID)

	for i := 0; i < 3; i++ {
		err := activitystore.New(f.DB()).Record(ctx, models.ActivityLogEntry{
			Type:     models.ActivityBoardUpdate,
			ActorID:  owner.ID,
			BoardID:  board.ID,
			Metadata: models.ActivityMetadata{Title: "Roadmap"},
		})
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	req := testutil.NewJSONRequest(t, "GET", "/boards/"+board.ID.Hex()+"/activity?limit=2", nil)
	req = testutil.WithChiURLParam(req, "boardID", board.ID.Hex())
	req = testutil.AsUser(req, owner)
	rec := httptest.NewRecorder()
	handler.ActivityFeed(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var resp []struct {
		Type  string `json:"type"`
		Actor *struct {
			Name string `json:"name"`
		} `json:"actor"`
	}
	testutil.DecodeJSONResponse(t, rec, &resp)
	if len(resp) != 2 {
		t.Fatalf("expected limit 2, got %d entries", len(resp))
	}
	if resp[0].Actor == nil || resp[0].Actor.Name != "Owner" {
		t.Errorf("actor: got %v", resp[0].Actor)
	}
}

func TestSearchCards(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateUser(ctx, "Grace Hopper", "grace@example.com")
	ws := f.CreateWorkspace(ctx, "WS", owner.ID)
	board := f.CreateBoard(ctx, "Roadmap", ws.ID, owner.ID)
	list := f.CreateList(ctx, "Todo", board.ID, 1000)
	f.CreateCard(ctx, "Fix compiler bug", list.ID, 1000)
	f.CreateCard(ctx, "Write docs", list.ID, 2000)

	req := testutil.NewJSONRequest(t, "GET", "/boards/"+board.ID.Hex()+"/cards/search?q=compiler", nil)
	req = testutil.WithChiURLParam(req, "boardID", board.ID.Hex())
	req = testutil.AsUser(req, owner)
	rec := httptest.NewRecorder()
	handler.SearchCards(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var resp []struct {
		Title string `json:"title"`
	}
	testutil.DecodeJSONResponse(t, rec, &resp)
	if len(resp) != 1 || resp[0].Title != "Fix compiler bug" {
		t.Errorf("search results: got %v", resp)
	}

	// Empty query is rejected.
	req = testutil.NewJSONRequest(t, "GET", "/boards/"+board.ID.Hex()+"/cards/search", nil)
	req = testutil.WithChiURLParam(req, "boardID", board.ID.Hex())
	req = testutil.AsUser(req, owner)
	rec = httptest.NewRecorder()
	handler.SearchCards(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected %d for empty query, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestList_ResolvesSummaries(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateUser(ctx, "Ada", "ada@example.com")
	member := f.CreateUser(ctx, "Grace", "grace@example.com")
	ws := f.CreateWorkspace(ctx, "Engineering", owner.ID)
	board := f.CreateBoard(ctx, "Roadmap", ws.ID, owner.ID)
	f.AddBoardMember(ctx, board.ID, member.ID)

	req := testutil.NewJSONRequest(t, "GET", "/boards", nil)
	req = testutil.AsUser(req, member)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var resp []struct {
		Title         string          `json:"title"`
		OwnerProfile  *models.Profile `json:"ownerProfile"`
		WorkspaceName string          `json:"workspaceName"`
	}
	testutil.DecodeJSONResponse(t, rec, &resp)
	if len(resp) != 1 {
		t.Fatalf("expected 1 board, got %d", len(resp))
	}
	if resp[0].OwnerProfile == nil || resp[0].OwnerProfile.Name != "Ada" {
		t.Errorf("owner profile not resolved: %+v", resp[0].OwnerProfile)
	}
	if resp[0].WorkspaceName != "Engineering" {
		t.Errorf("workspace name: got %q", resp[0].WorkspaceName)
	}
}
