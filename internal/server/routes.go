package server

import (
	"net/http"

	"bookshelf/internal/shared"
)

// Router dispatches on exact method + path. GET and HEAD share one table,
// POST routes go through the body decoder, and anything else, including
// every unmatched path, lands on notFound.
type Router struct {
	read     map[string]http.HandlerFunc
	write    map[string]http.HandlerFunc
	notFound http.HandlerFunc
	withBody func(http.HandlerFunc) http.HandlerFunc
}

func NewRouter(api *API) *Router {
	rt := &Router{
		read:     map[string]http.HandlerFunc{},
		write:    map[string]http.HandlerFunc{},
		notFound: api.NotFound,
		withBody: api.withBody,
	}

	rt.Get(shared.PathIndex, serveIndex)
	rt.Get(shared.PathStyle, serveStyle)
	rt.Get(shared.PathGetAllBooks, api.GetAllBooks)
	rt.Get(shared.PathGetBooks, api.GetAllBooks)
	rt.Get(shared.PathGetBookByTitle, api.GetBookByTitle)
	rt.Get(shared.PathGetBookByLanguage, api.GetBooksBy(FieldLanguage))
	rt.Get(shared.PathGetBooksByLanguage, api.GetBooksBy(FieldLanguage))
	rt.Get(shared.PathGetBookByAuthor, api.GetBooksBy(FieldAuthor))
	rt.Get(shared.PathGetBooksByAuthor, api.GetBooksBy(FieldAuthor))
	rt.Get(shared.PathGetUsers, api.GetUsers)

	rt.Post(shared.PathAddBook, api.AddBook)
	rt.Post(shared.PathAddBookReview, api.AddBookReview)
	rt.Post(shared.PathAddUser, api.AddUser)

	return rt
}

// Get registers h for GET and HEAD on path.
func (rt *Router) Get(path string, h http.HandlerFunc) {
	rt.read[path] = h
}

// Post registers h for POST on path; h runs once the body is decoded.
func (rt *Router) Post(path string, h http.HandlerFunc) {
	rt.write[path] = h
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rc := &RequestContext{Method: r.Method, Path: r.URL.Path, Params: map[string]string{}}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h, ok := rt.read[rc.Path]
		if !ok {
			rt.notFound(w, withRequestContext(r, rc))
			return
		}
		rc.Params = flatten(r.URL.Query())
		h(w, withRequestContext(r, rc))
	case http.MethodPost:
		h, ok := rt.write[rc.Path]
		if !ok {
			rt.notFound(w, withRequestContext(r, rc))
			return
		}
		rt.withBody(h)(w, withRequestContext(r, rc))
	default:
		rt.notFound(w, withRequestContext(r, rc))
	}
}
