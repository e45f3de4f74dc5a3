package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sayamjn/SHG/internal/app/system/auth"
	"github.com/sayamjn/SHG/internal/app/system/httpapi"
	"github.com/sayamjn/SHG/internal/domain/models"
)

// WithGroup adds a group to the request context for testing authenticated
// handlers. This bypasses the session middleware and injects the group
// directly.
func WithGroup(r *http.Request, g models.Group) *http.Request {
	return auth.WithTestGroup(r, &auth.SessionGroup{
		ID:   g.ID,
		Code: g.Code,
		Name: g.Name,
	})
}

// NewJSONRequest creates a request with a JSON-encoded body.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to encode request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// Envelope mirrors the API response envelope for decoding in tests.
type Envelope struct {
	Success    bool               `json:"success"`
	Data       json.RawMessage    `json:"data"`
	Error      string             `json:"error"`
	Errors     []httpapi.FieldError `json:"errors"`
	Count      int                `json:"count"`
	Pagination *httpapi.PageInfo  `json:"pagination"`
	Token      string             `json:"token"`
}

// DecodeEnvelope decodes the recorded response body into an Envelope.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return env
}

// DecodeData decodes the envelope's data field into out.
func DecodeData(t *testing.T, env Envelope, out any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("failed to decode envelope data: %v", err)
	}
}

// AssertStatus checks the response status code.
func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rec.Code != expected {
		t.Errorf("status code: got %d, want %d\nbody: %s", rec.Code, expected, rec.Body.String())
	}
}
