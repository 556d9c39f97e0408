package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lazypower/ctxport/internal/conversation"
	"github.com/lazypower/ctxport/internal/vault"
)

type stubSummarizer struct {
	summary string
	method  string
}

func (s stubSummarizer) Summarize(ctx context.Context, messages []conversation.Message) (string, string, bool) {
	if s.summary == "" {
		return "", "", false
	}
	return s.summary, s.method, true
}

func testServer(t *testing.T) *Server {
	t.Helper()
	db, err := vault.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db, nil, false, "test-version")
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["version"] != "test-version" {
		t.Errorf("version = %v, want test-version", body["version"])
	}
	if body["db"] != true {
		t.Errorf("db = %v, want true", body["db"])
	}
	if body["ai"] != false {
		t.Errorf("ai = %v, want false", body["ai"])
	}
}
