package members_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	membersfeature "github.com/sayamjn/SHG/internal/app/features/members"
	groupstore "github.com/sayamjn/SHG/internal/app/store/groups"
	memberstore "github.com/sayamjn/SHG/internal/app/store/members"
	"github.com/sayamjn/SHG/internal/app/system/uploads"
	"github.com/sayamjn/SHG/internal/domain/models"
	"github.com/sayamjn/SHG/internal/testutil"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*membersfeature.Handler, *groupstore.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	groups := groupstore.New(db)
	members := memberstore.New(db, groups, zap.NewNop())
	store, err := storage.NewLocal(storage.LocalConfig{BasePath: t.TempDir(), BaseURL: "/files/uploads"})
	if err != nil {
		t.Fatalf("local storage init failed: %v", err)
	}
	up := uploads.New(store, zap.NewNop())
	h := membersfeature.NewHandler(members, groups, up, zap.NewNop())
	return h, groups, testutil.NewFixtures(t, db)
}

func validUpdateBody() map[string]any {
	return map[string]any{
		"name": "Sunita Patil", "address": "H.No. 42", "age": 38,
		"gender": "Female", "phone": "9876543210",
		"country": "India", "state": "Maharashtra", "city": "Wagholi",
		"district": "Pune", "taluka": "Haveli",
	}
}

// newRegisterRequest builds the multipart request the public registration
// form sends: the member fields plus a photo part.
func newRegisterRequest(t *testing.T, groupCode string) *http.Request {
	t.Helper()

	fields := map[string]string{
		"name": "Sunita Patil", "address": "H.No. 42", "age": "38",
		"gender": "Female", "phone": "9876543210",
		"country": "India", "state": "Maharashtra", "city": "Wagholi",
		"district": "Pune", "taluka": "Haveli",
		"group": groupCode,
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %q: %v", k, err)
		}
	}
	fw, err := mw.CreateFormFile("photo", "sunita.png")
	if err != nil {
		t.Fatalf("create photo part: %v", err)
	}
	if _, err := fw.Write([]byte("png bytes")); err != nil {
		t.Fatalf("write photo part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/users", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestRegister_IncrementsCount(t *testing.T) {
	h, groups, fx := setup(t)
	ctx := testutil.TestContext(t)
	g := fx.CreateGroup(ctx, "G", "MUS001", "password123")

	// Registration is public and resolves the code case-insensitively.
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, newRegisterRequest(t, "mus001"))

	testutil.AssertStatus(t, rec, http.StatusCreated)
	env := testutil.DecodeEnvelope(t, rec)
	var m models.Member
	testutil.DecodeData(t, env, &m)
	if m.GroupID != g.ID {
		t.Error("member bound to the wrong group")
	}
	if m.Photo == "" || m.Photo == models.DefaultPhoto {
		t.Errorf("photo = %q, want a stored photo reference", m.Photo)
	}

	got, err := groups.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.TotalMembers != 1 {
		t.Errorf("total_members = %d after registration, want 1", got.TotalMembers)
	}
}

func TestRegister_InvalidReportsAllFieldsAndWritesNothing(t *testing.T) {
	h, groups, fx := setup(t)
	ctx := testutil.TestContext(t)
	g := fx.CreateGroup(ctx, "G", "MUS001", "password123")

	req := testutil.NewJSONRequest(t, "POST", "/api/users", map[string]any{
		"name": "X", "age": 150, "gender": "Unknown",
	})
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	env := testutil.DecodeEnvelope(t, rec)
	want := []string{"address", "age", "gender", "phone", "country", "state", "city", "district", "taluka", "group", "photo"}
	got := map[string]bool{}
	for _, fe := range env.Errors {
		got[fe.Field] = true
	}
	for _, f := range want {
		if !got[f] {
			t.Errorf("missing violation for field %q", f)
		}
	}

	after, err := groups.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if after.TotalMembers != 0 {
		t.Errorf("total_members = %d after rejected registration, want 0", after.TotalMembers)
	}
}

func TestRegister_UnknownGroupNotFound(t *testing.T) {
	h, _, _ := setup(t)

	rec := httptest.NewRecorder()
	h.HandleRegister(rec, newRegisterRequest(t, "NOPE999"))

	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestDelete_RoundTripRestoresCount(t *testing.T) {
	h, groups, fx := setup(t)
	ctx := testutil.TestContext(t)
	g := fx.CreateGroup(ctx, "G", "MUS001", "password123")

	// Register.
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, newRegisterRequest(t, "MUS001"))
	testutil.AssertStatus(t, rec, http.StatusCreated)
	var m models.Member
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec), &m)

	// Delete.
	req := httptest.NewRequest("DELETE", "/api/users/"+m.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", m.ID.Hex())
	req = testutil.WithGroup(req, g)
	rec = httptest.NewRecorder()
	h.HandleDelete(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	got, err := groups.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.TotalMembers != 0 {
		t.Errorf("total_members = %d after register+delete, want 0", got.TotalMembers)
	}
}

func TestDelete_OtherGroupForbidden(t *testing.T) {
	h, _, fx := setup(t)
	ctx := testutil.TestContext(t)
	g := fx.CreateGroup(ctx, "G", "MUS001", "password123")
	other := fx.CreateGroup(ctx, "Other", "GVM002", "password123")
	m := fx.CreateMember(ctx, g.ID, "Sunita Patil")

	req := httptest.NewRequest("DELETE", "/api/users/"+m.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", m.ID.Hex())
	req = testutil.WithGroup(req, other)
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)

	testutil.AssertStatus(t, rec, http.StatusForbidden)
}

func TestGet_OtherGroupForbidden(t *testing.T) {
	h, _, fx := setup(t)
	ctx := testutil.TestContext(t)
	g := fx.CreateGroup(ctx, "G", "MUS001", "password123")
	other := fx.CreateGroup(ctx, "Other", "GVM002", "password123")
	m := fx.CreateMember(ctx, g.ID, "Sunita Patil")

	req := httptest.NewRequest("GET", "/api/users/"+m.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", m.ID.Hex())
	req = testutil.WithGroup(req, other)
	rec := httptest.NewRecorder()
	h.HandleGet(rec, req)

	testutil.AssertStatus(t, rec, http.StatusForbidden)
}

func TestUpdate_RewritesFields(t *testing.T) {
	h, _, fx := setup(t)
	ctx := testutil.TestContext(t)
	g := fx.CreateGroup(ctx, "G", "MUS001", "password123")
	m := fx.CreateMember(ctx, g.ID, "Old Name")

	body := validUpdateBody()
	body["name"] = "New Name"
	body["role"] = "secretary"
	req := testutil.NewJSONRequest(t, "PUT", "/api/users/"+m.ID.Hex(), body)
	req = testutil.WithChiURLParam(req, "id", m.ID.Hex())
	req = testutil.WithGroup(req, g)
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var got models.Member
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec), &got)
	if got.Name != "New Name" {
		t.Errorf("name = %q, want updated", got.Name)
	}
	if got.Role != models.RoleSecretary {
		t.Errorf("role = %q, want secretary", got.Role)
	}
	if got.GroupID != g.ID {
		t.Error("group binding must not change on update")
	}
}

func TestList_ScopedToOwnGroup(t *testing.T) {
	h, _, fx := setup(t)
	ctx := testutil.TestContext(t)
	g := fx.CreateGroup(ctx, "G", "MUS001", "password123")
	other := fx.CreateGroup(ctx, "Other", "GVM002", "password123")
	fx.CreateMember(ctx, g.ID, "Mine")
	fx.CreateMember(ctx, other.ID, "Theirs")

	req := httptest.NewRequest("GET", "/api/users", nil)
	req = testutil.WithGroup(req, g)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	env := testutil.DecodeEnvelope(t, rec)
	var list []models.Member
	testutil.DecodeData(t, env, &list)
	if len(list) != 1 || list[0].Name != "Mine" {
		t.Errorf("expected only the caller's member, got %d entries", len(list))
	}
}
