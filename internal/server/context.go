package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// RequestContext is the per-request state handed to handlers: the method,
// the path without query string, and the decoded query (GET/HEAD) or form
// body (POST) parameters.
type RequestContext struct {
	Method string
	Path   string
	Params map[string]string
}

type requestContextKey struct{}

func withRequestContext(r *http.Request, rc *RequestContext) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), requestContextKey{}, rc))
}

// requestContext returns the request's RequestContext, or an empty one.
func requestContext(r *http.Request) *RequestContext {
	if rc, ok := r.Context().Value(requestContextKey{}).(*RequestContext); ok {
		return rc
	}
	return &RequestContext{Method: r.Method, Path: r.URL.Path, Params: map[string]string{}}
}

// Param returns the trimmed value of name and whether it is present and non-empty.
func (rc *RequestContext) Param(name string) (string, bool) {
	v := strings.TrimSpace(rc.Params[name])
	return v, v != ""
}

// Require returns the trimmed values of names, or ok=false if any is missing.
func (rc *RequestContext) Require(names ...string) (map[string]string, bool) {
	out := make(map[string]string, len(names))
	for _, n := range names {
		v, ok := rc.Param(n)
		if !ok {
			return nil, false
		}
		out[n] = v
	}
	return out, true
}

// flatten collapses repeated keys, keeping the last value.
func flatten(values url.Values) map[string]string {
	out := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			out[k] = vs[len(vs)-1]
		}
	}
	return out
}
