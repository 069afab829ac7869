package server

import (
	_ "embed"
	"net/http"
)

//go:embed web/index.html
var indexHTML []byte

//go:embed web/style.css
var styleCSS []byte

func serveIndex(w http.ResponseWriter, r *http.Request) {
	respondBytes(w, r, http.StatusOK, "text/html", indexHTML)
}

func serveStyle(w http.ResponseWriter, r *http.Request) {
	respondBytes(w, r, http.StatusOK, "text/css", styleCSS)
}
