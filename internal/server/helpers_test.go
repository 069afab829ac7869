package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookshelf/internal/config"

	"github.com/rs/zerolog"
)

// newTestServer creates a server over a fresh memory store
func newTestServer(t *testing.T) (*Server, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	cfg := config.DefaultConfig().Server
	return NewServer(cfg, store, zerolog.Nop()), store
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to parse response %q: %v", w.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("Expected status %d, got %d (body %q)", want, w.Code, w.Body.String())
	}
}

func expectEnvelope(t *testing.T, w *httptest.ResponseRecorder, message, id string) {
	t.Helper()
	body := decodeBody(t, w)
	if body["message"] != message {
		t.Errorf("Expected message %q, got %v", message, body["message"])
	}
	if body["id"] != id {
		t.Errorf("Expected id %q, got %v", id, body["id"])
	}
}

const crimeAndPunishment = "title=Crime+and+Punishment&author=Dostoyevsky&country=Russia&language=Russian" +
	"&link=x&pages=551&year=1866&genre1=Novel&genre2=Philosophical"
