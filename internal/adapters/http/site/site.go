// Package site serves the embedded dashboard page and its assets.
package site

import (
	"context"
	"net/http"
)

// Register attaches the dashboard page at / and its assets under /static/.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	files := http.FileServer(FS())
	mux.Handle("GET /static/", http.StripPrefix("/static", files))
	mux.Handle("GET /{$}", NewRootHandler(files))
}

// RootHandler serves the dashboard page.
type RootHandler struct {
	files http.Handler
}

// NewRootHandler creates a root handler over the asset file server.
func NewRootHandler(files http.Handler) *RootHandler {
	return &RootHandler{files: files}
}

// ServeHTTP handles GET / by serving index.html.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	h.files.ServeHTTP(w, r)
}
