package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/boardhub/internal/app/features/auth"
	userstore "github.com/dalemusser/boardhub/internal/app/store/users"
	sysauth "github.com/dalemusser/boardhub/internal/app/system/auth"
	"github.com/dalemusser/boardhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*auth.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	tokens, err := sysauth.NewManager("test-secret", time.Hour, logger)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	handler := auth.NewHandler(userstore.New(db), tokens, logger)
	return handler, testutil.NewFixtures(t, db)
}

func TestRegister(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/auth/register", map[string]string{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "hunter22",
	})
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	testutil.DecodeJSONResponse(t, rec, &resp)
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User.Email != "ada@example.com" {
		t.Errorf("email: got %q", resp.User.Email)
	}
}

func TestRegister_Validation(t *testing.T) {
	handler, _ := newTestHandler(t)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"email": "a@b.com", "password": "hunter22"}},
		{"bad email", map[string]string{"name": "A", "email": "not-an-email", "password": "hunter22"}},
		{"short password", map[string]string{"name": "A", "email": "a@b.com", "password": "abc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, "POST", "/auth/register", tc.body)
			rec := httptest.NewRecorder()
			handler.Register(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected %d, got %d", http.StatusBadRequest, rec.Code)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := map[string]string{"name": "Ada", "email": "ada@example.com", "password": "hunter22"}
	rec := httptest.NewRecorder()
	handler.Register(rec, testutil.NewJSONRequest(t, "POST", "/auth/register", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("first register failed: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.Register(rec, testutil.NewJSONRequest(t, "POST", "/auth/register", body))
	if rec.Code != http.StatusConflict {
		t.Errorf("expected %d, got %d", http.StatusConflict, rec.Code)
	}
}

func TestLogin(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.Register(rec, testutil.NewJSONRequest(t, "POST", "/auth/register", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "hunter22",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.Login(rec, testutil.NewJSONRequest(t, "POST", "/auth/login", map[string]string{
		"email": "ADA@example.com", "password": "hunter22",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	testutil.DecodeJSONResponse(t, rec, &resp)
	if resp.Token == "" {
		t.Error("expected a token")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.Register(rec, testutil.NewJSONRequest(t, "POST", "/auth/register", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "hunter22",
	}))

	// Wrong password and unknown email produce the same status and message.
	for _, body := range []map[string]string{
		{"email": "ada@example.com", "password": "wrong"},
		{"email": "nobody@example.com", "password": "hunter22"},
	} {
		rec := httptest.NewRecorder()
		handler.Login(rec, testutil.NewJSONRequest(t, "POST", "/auth/login", body))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
		}
	}
}

func TestMe(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := f.CreateUser(ctx, "Ada", "ada@example.com")

	req := testutil.NewJSONRequest(t, "GET", "/auth/me", nil)
	req = testutil.AsUser(req, u)
	rec := httptest.NewRecorder()
	handler.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	var resp struct {
		Name string `json:"name"`
	}
	testutil.DecodeJSONResponse(t, rec, &resp)
	if resp.Name != "Ada" {
		t.Errorf("name: got %q", resp.Name)
	}
}
