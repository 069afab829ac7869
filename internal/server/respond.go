package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
)

// envelope is a JSON response body.
type envelope map[string]any

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// respondJSON serializes payload once and writes it with an exact
// Content-Length. HEAD requests and 204 responses get the headers only.
// It must be the last thing a handler does with w.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	content, err := encodeJSON(payload)
	if err != nil {
		status = http.StatusInternalServerError
		content = []byte(`{"message":"Internal server error","id":"internalError"}`)
	}
	respondBytes(w, r, status, "application/json", content)
}

func respondBytes(w http.ResponseWriter, r *http.Request, status int, contentType string, content []byte) {
	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(status)

	if r.Method != http.MethodHead && status != http.StatusNoContent {
		_, _ = w.Write(content)
	}
}
