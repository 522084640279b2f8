// Package web serves the browsing surface: every path under the serving
// root, classified per request into a directory, Markdown, text, or raw
// response.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// EventsPath is reserved for the live-reload event stream. Requests for it
// never reach the file handler, so a file of the same name is not
// addressable.
const EventsPath = "/__reload/events"

// NewRouter creates a chi router with the browse handler on every path.
// events, if non-nil, is mounted at EventsPath.
func NewRouter(h *Handler, events http.Handler) chi.Router {
	r := chi.NewRouter()

	if events != nil {
		r.Get(EventsPath, events.ServeHTTP)
	}

	r.Get("/*", h.Browse)
	r.Head("/*", h.Browse)

	return r
}
