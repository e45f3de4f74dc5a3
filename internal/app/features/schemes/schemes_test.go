package schemes_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	schemesfeature "github.com/sayamjn/SHG/internal/app/features/schemes"
	schemestore "github.com/sayamjn/SHG/internal/app/store/schemes"
	"github.com/sayamjn/SHG/internal/app/system/uploads"
	"github.com/sayamjn/SHG/internal/domain/models"
	"github.com/sayamjn/SHG/internal/testutil"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

// setup returns the handler, fixtures and the local storage root so tests
// can check stored files on disk.
func setup(t *testing.T) (*schemesfeature.Handler, *testutil.Fixtures, string) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := schemestore.New(db)
	if err := store.EnsureIndexes(testutil.TestContext(t)); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}
	dir := t.TempDir()
	local, err := storage.NewLocal(storage.LocalConfig{BasePath: dir, BaseURL: "/files/uploads"})
	if err != nil {
		t.Fatalf("local storage init failed: %v", err)
	}
	up := uploads.New(local, zap.NewNop())
	h := schemesfeature.NewHandler(store, up, zap.NewNop())
	return h, testutil.NewFixtures(t, db), dir
}

func validSchemeBody() map[string]any {
	return map[string]any{
		"title":              "Mahila Samridhi Yojana",
		"description":        "Micro-finance for women SHG members.",
		"department":         "Women and Child Development",
		"eligibility":        "Women SHG members",
		"benefits":           "Subsidized loans",
		"applicationProcess": "Apply at the district office",
		"tags":               "women, loan , ,micro-finance",
	}
}

func TestCreate_SplitsTagsAndStripsMarkup(t *testing.T) {
	h, _, _ := setup(t)

	body := validSchemeBody()
	body["description"] = "<p>Micro-finance</p><script>alert('x')</script> for women"
	req := testutil.NewJSONRequest(t, "POST", "/api/schemes", body)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	testutil.AssertStatus(t, rec, http.StatusCreated)
	var sc models.Scheme
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec), &sc)

	if strings.Contains(sc.Description, "<") || strings.Contains(sc.Description, "script") {
		t.Errorf("description kept markup: %q", sc.Description)
	}
	want := []string{"women", "loan", "micro-finance"}
	if len(sc.Tags) != len(want) {
		t.Fatalf("tags = %v, want %v", sc.Tags, want)
	}
	for i, tag := range want {
		if sc.Tags[i] != tag {
			t.Errorf("tag %d = %q, want %q", i, sc.Tags[i], tag)
		}
	}
	if !sc.Active {
		t.Error("expected new scheme to be active")
	}
}

func TestCreate_MissingFields(t *testing.T) {
	h, _, _ := setup(t)

	req := testutil.NewJSONRequest(t, "POST", "/api/schemes", map[string]any{"title": "T"})
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	env := testutil.DecodeEnvelope(t, rec)
	want := []string{"description", "department", "eligibility", "benefits", "applicationProcess"}
	got := map[string]bool{}
	for _, fe := range env.Errors {
		got[fe.Field] = true
	}
	for _, f := range want {
		if !got[f] {
			t.Errorf("missing violation for field %q", f)
		}
	}
}

func TestCreate_TitleTooLong(t *testing.T) {
	h, _, _ := setup(t)

	body := validSchemeBody()
	body["title"] = strings.Repeat("x", 201)
	req := testutil.NewJSONRequest(t, "POST", "/api/schemes", body)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestList_TextSearch(t *testing.T) {
	h, fx, _ := setup(t)
	ctx := testutil.TestContext(t)
	fx.CreateScheme(ctx, "Mahila Samridhi Yojana", "women", "loan")
	fx.CreateScheme(ctx, "Rural Housing Support", "housing")

	for _, target := range []string{"/api/schemes?search=loan", "/api/schemes?q=loan"} {
		req := httptest.NewRequest("GET", target, nil)
		rec := httptest.NewRecorder()
		h.HandleList(rec, req)

		testutil.AssertStatus(t, rec, http.StatusOK)
		env := testutil.DecodeEnvelope(t, rec)
		if env.Count != 1 {
			t.Errorf("%s: count = %d, want 1", target, env.Count)
		}
	}
}

func TestList_EmptyIsPaginatedEnvelope(t *testing.T) {
	h, _, _ := setup(t)

	req := httptest.NewRequest("GET", "/api/schemes", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	env := testutil.DecodeEnvelope(t, rec)
	if env.Count != 0 {
		t.Errorf("count = %d, want 0", env.Count)
	}
	if env.Pagination == nil || env.Pagination.Total != 0 {
		t.Error("expected a pagination block with zero total")
	}
	if string(env.Data) != "[]" {
		t.Errorf("data = %s, want an empty array", env.Data)
	}
}

// newSchemeRequest builds a multipart request carrying the scheme fields
// plus one attached document per name.
func newSchemeRequest(t *testing.T, method, target string, docNames ...string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range validSchemeBody() {
		if err := mw.WriteField(k, v.(string)); err != nil {
			t.Fatalf("write field %q: %v", k, err)
		}
	}
	for _, name := range docNames {
		fw, err := mw.CreateFormFile("documents", name)
		if err != nil {
			t.Fatalf("create document part: %v", err)
		}
		if _, err := fw.Write([]byte("pdf bytes")); err != nil {
			t.Fatalf("write document part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpdate_ReplacesDocumentsAndRemovesSupersededFiles(t *testing.T) {
	h, _, dir := setup(t)

	rec := httptest.NewRecorder()
	h.HandleCreate(rec, newSchemeRequest(t, "POST", "/api/schemes", "old-guidelines.pdf"))
	testutil.AssertStatus(t, rec, http.StatusCreated)
	var sc models.Scheme
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec), &sc)
	if len(sc.Documents) != 1 {
		t.Fatalf("documents after create = %d, want 1", len(sc.Documents))
	}
	oldFile := filepath.Join(dir, filepath.FromSlash(sc.Documents[0].File))
	if _, err := os.Stat(oldFile); err != nil {
		t.Fatalf("stored document missing on disk: %v", err)
	}

	req := newSchemeRequest(t, "PUT", "/api/schemes/"+sc.ID.Hex(), "new-guidelines.pdf")
	req = testutil.WithChiURLParam(req, "id", sc.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleUpdate(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	var updated models.Scheme
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec), &updated)
	if len(updated.Documents) != 1 || updated.Documents[0].Name != "new-guidelines.pdf" {
		t.Fatalf("documents after update = %+v, want only the new attachment", updated.Documents)
	}
	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Errorf("superseded document file still on disk (stat err = %v)", err)
	}
}

func TestUpdate_WithoutAttachmentsKeepsDocuments(t *testing.T) {
	h, _, _ := setup(t)

	rec := httptest.NewRecorder()
	h.HandleCreate(rec, newSchemeRequest(t, "POST", "/api/schemes", "guidelines.pdf"))
	testutil.AssertStatus(t, rec, http.StatusCreated)
	var sc models.Scheme
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec), &sc)

	body := validSchemeBody()
	body["title"] = "Renamed Scheme"
	req := testutil.NewJSONRequest(t, "PUT", "/api/schemes/"+sc.ID.Hex(), body)
	req = testutil.WithChiURLParam(req, "id", sc.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleUpdate(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	var updated models.Scheme
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec), &updated)
	if updated.Title != "Renamed Scheme" {
		t.Errorf("title = %q, want updated", updated.Title)
	}
	if len(updated.Documents) != 1 || updated.Documents[0].Name != "guidelines.pdf" {
		t.Errorf("documents = %+v, want the original attachment kept", updated.Documents)
	}
}

func TestDelete(t *testing.T) {
	h, fx, _ := setup(t)
	ctx := testutil.TestContext(t)
	sc := fx.CreateScheme(ctx, "Doomed Scheme")

	req := httptest.NewRequest("DELETE", "/api/schemes/"+sc.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", sc.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	req = httptest.NewRequest("GET", "/api/schemes/"+sc.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", sc.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleGet(rec, req)
	testutil.AssertStatus(t, rec, http.StatusNotFound)
}
