package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type failingReader struct{ sent bool }

func (f *failingReader) Read(p []byte) (int, error) {
	if !f.sent {
		f.sent = true
		return copy(p, "title=Half"), nil
	}
	return 0, errors.New("connection reset by peer")
}

func newBodyAPI(limit int64) *API {
	return &API{Store: NewMemoryStore(), Logger: zerolog.Nop(), MaxBodyBytes: limit}
}

func TestWithBodyTransportErrorIs400WithoutBody(t *testing.T) {
	called := false
	h := newBodyAPI(1 << 20).withBody(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodPost, "/addBook", &failingReader{})
	w := httptest.NewRecorder()
	h(w, req)

	expectStatus(t, w, http.StatusBadRequest)
	if w.Body.Len() != 0 {
		t.Errorf("Expected empty body, got %q", w.Body.String())
	}
	if called {
		t.Error("Handler must not run when the body fails")
	}
}

func TestWithBodyTooLarge(t *testing.T) {
	called := false
	h := newBodyAPI(16).withBody(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodPost, "/addBook", strings.NewReader(strings.Repeat("a", 64)))
	w := httptest.NewRecorder()
	h(w, req)

	expectStatus(t, w, http.StatusBadRequest)
	if called {
		t.Error("Handler must not run for an oversized body")
	}
}

func TestWithBodyDecodesForm(t *testing.T) {
	var params map[string]string
	h := newBodyAPI(1 << 20).withBody(func(w http.ResponseWriter, r *http.Request) {
		params = requestContext(r).Params
	})

	req := httptest.NewRequest(http.MethodPost, "/addUser", strings.NewReader("name=J%C3%BCrgen&age=41&age=42&bad=%zz&note=a+b"))
	h(httptest.NewRecorder(), req)

	if params["name"] != "Jürgen" {
		t.Errorf("Expected percent-decoded UTF-8 name, got %q", params["name"])
	}
	if params["age"] != "42" {
		t.Errorf("Expected last age value, got %q", params["age"])
	}
	if params["note"] != "a b" {
		t.Errorf("Expected '+' decoded as space, got %q", params["note"])
	}
	if _, ok := params["bad"]; ok {
		t.Error("Expected malformed pair to be skipped")
	}
}

func TestWithBodyEmpty(t *testing.T) {
	called := false
	var params map[string]string
	h := newBodyAPI(1 << 20).withBody(func(w http.ResponseWriter, r *http.Request) {
		called = true
		params = requestContext(r).Params
	})

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/addUser", nil))

	if !called {
		t.Fatal("Expected handler to run for an empty body")
	}
	if len(params) != 0 {
		t.Errorf("Expected no params, got %v", params)
	}
}
