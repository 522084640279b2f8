package web

import (
	"bytes"
	"io/fs"
	"net/http"
	"time"

	"viewmd/internal/checksum"
)

// writePage serves a rendered HTML page. Pages carry an ETag so editor
// refresh loops get 304s; the page itself is still rebuilt per request.
func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, page []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("ETag", checksum.ETag(page))
	http.ServeContent(w, r, "", time.Time{}, bytes.NewReader(page))
}

// serveRaw passes file bytes through untouched. ServeContent picks the
// Content-Type from the extension, sniffing with an octet-stream fallback,
// and handles Range and conditional requests against the ETag set here.
func (h *Handler) serveRaw(w http.ResponseWriter, r *http.Request, info fs.FileInfo, data []byte) {
	w.Header().Set("ETag", checksum.ETag(data))
	http.ServeContent(w, r, info.Name(), info.ModTime(), bytes.NewReader(data))
}

// writeError serves a minimal HTML error page.
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	body := h.pages.ErrorPage(status, message)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
