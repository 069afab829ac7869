package server

import (
	"io"
	"net/http"
	"net/url"
	"strings"
)

func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
}

// withBody reads the whole request body, decodes it as a form and stores
// the result in the request's RequestContext before calling next. A read
// failure answers 400 with no body and next is never called.
func (a *API) withBody(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r, a.MaxBodyBytes)
		if err != nil {
			a.Logger.Warn().Err(err).Str("path", r.URL.Path).Msg("Failed to read request body")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		values, err := url.ParseQuery(strings.ToValidUTF8(string(body), "\uFFFD"))
		if err != nil {
			// ParseQuery keeps every well-formed pair
			a.Logger.Debug().Err(err).Str("path", r.URL.Path).Msg("Skipped malformed form pairs")
		}

		rc := requestContext(r)
		rc.Params = flatten(values)
		next(w, withRequestContext(r, rc))
	}
}
