package authapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sayamjn/SHG/internal/app/features/authapi"
	groupstore "github.com/sayamjn/SHG/internal/app/store/groups"
	"github.com/sayamjn/SHG/internal/app/store/sessions"
	"github.com/sayamjn/SHG/internal/testutil"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*authapi.Handler, *sessions.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	groups := groupstore.New(db)
	sess := sessions.New(db, time.Hour)
	h := authapi.NewHandler(groups, sess, zap.NewNop())
	return h, sess, testutil.NewFixtures(t, db)
}

func TestLogin_Success(t *testing.T) {
	h, sess, fx := setup(t)
	ctx := testutil.TestContext(t)
	g := fx.CreateGroup(ctx, "Mahila Utkarsh Samuh", "MUS001", "password123")

	req := testutil.NewJSONRequest(t, "POST", "/api/auth/login", map[string]string{
		"code": "MUS001", "password": "password123",
	})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	env := testutil.DecodeEnvelope(t, rec)
	if !env.Success {
		t.Fatal("expected success envelope")
	}
	if env.Token == "" {
		t.Fatal("expected a session token")
	}

	gid, err := sess.Resolve(ctx, env.Token)
	if err != nil {
		t.Fatalf("issued token does not resolve: %v", err)
	}
	if gid != g.ID {
		t.Errorf("token resolves to %s, want %s", gid.Hex(), g.ID.Hex())
	}

	// The password hash must never appear in the response.
	if body := rec.Body.String(); len(body) > 0 && containsHash(body) {
		t.Error("response leaks the password hash")
	}
}

func containsHash(body string) bool {
	for i := 0; i+4 <= len(body); i++ {
		if body[i:i+4] == "$2a$" || body[i:i+4] == "$2b$" {
			return true
		}
	}
	return false
}

func TestLogin_CaseInsensitiveCode(t *testing.T) {
	h, _, fx := setup(t)
	ctx := testutil.TestContext(t)
	fx.CreateGroup(ctx, "G", "MUS001", "password123")

	req := testutil.NewJSONRequest(t, "POST", "/api/auth/login", map[string]string{
		"code": "mus001", "password": "password123",
	})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
}

func TestLogin_WrongPassword(t *testing.T) {
	h, _, fx := setup(t)
	ctx := testutil.TestContext(t)
	fx.CreateGroup(ctx, "G", "MUS001", "password123")

	req := testutil.NewJSONRequest(t, "POST", "/api/auth/login", map[string]string{
		"code": "MUS001", "password": "wrong",
	})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
	env := testutil.DecodeEnvelope(t, rec)
	if env.Error != "Invalid credentials" {
		t.Errorf("error = %q, want opaque invalid-credentials message", env.Error)
	}
}

func TestLogin_UnknownCode(t *testing.T) {
	h, _, _ := setup(t)

	req := testutil.NewJSONRequest(t, "POST", "/api/auth/login", map[string]string{
		"code": "NOPE", "password": "password123",
	})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	// Same message as a wrong password, so codes cannot be probed.
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
	env := testutil.DecodeEnvelope(t, rec)
	if env.Error != "Invalid credentials" {
		t.Errorf("error = %q, want opaque invalid-credentials message", env.Error)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	h, _, _ := setup(t)

	req := testutil.NewJSONRequest(t, "POST", "/api/auth/login", map[string]string{"code": "MUS001"})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestLogout_Idempotent(t *testing.T) {
	h, sess, fx := setup(t)
	ctx := testutil.TestContext(t)
	g := fx.CreateGroup(ctx, "G", "MUS001", "password123")

	token, err := sess.Create(ctx, g.ID)
	if err != nil {
		t.Fatalf("session create failed: %v", err)
	}

	logout := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.HandleLogout(rec, req)
		return rec
	}

	testutil.AssertStatus(t, logout(), http.StatusOK)
	if _, err := sess.Resolve(ctx, token); err != sessions.ErrNoSession {
		t.Errorf("expected session gone after logout, got %v", err)
	}
	// Logging out again still succeeds.
	testutil.AssertStatus(t, logout(), http.StatusOK)
}
