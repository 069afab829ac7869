package server

import (
	"net/http"

	"bookshelf/internal/shared"

	"github.com/rs/zerolog"
)

type API struct {
	Store        Store
	Logger       zerolog.Logger
	MaxBodyBytes int64
}

// NotFound answers every unrouted request, whatever its method.
func (a *API) NotFound(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusNotFound, envelope{
		"message": "The page you are looking for was not found.",
		"id":      shared.IDNotFound,
	})
}

func (a *API) internalError(w http.ResponseWriter, r *http.Request, err error) {
	a.Logger.Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("requestID", GetRequestID(r.Context())).
		Msg("Store operation failed")
	respondJSON(w, r, http.StatusInternalServerError, envelope{
		"message": "Internal server error",
		"id":      shared.IDInternalError,
	})
}

func missingParams(w http.ResponseWriter, r *http.Request, resp envelope) {
	resp["id"] = shared.IDMissingParams
	respondJSON(w, r, http.StatusBadRequest, resp)
}

func invalidParams(w http.ResponseWriter, r *http.Request, message string) {
	respondJSON(w, r, http.StatusBadRequest, envelope{
		"message": message,
		"id":      shared.IDInvalidParams,
	})
}
