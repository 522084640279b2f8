package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"unicode/utf8"

	"viewmd/internal/apperr"
	"viewmd/internal/frontmatter"
	"viewmd/internal/render"
	"viewmd/internal/storage"
)

// Handler serves every path under the serving root.
type Handler struct {
	store *storage.Root
	pages *render.Renderer
}

// NewHandler creates a new Handler.
func NewHandler(store *storage.Root, pages *render.Renderer) *Handler {
	return &Handler{store: store, pages: pages}
}

// Browse classifies the request path and serves it. Directories redirect to
// their README.md or list their children; Markdown renders as HTML; any
// other UTF-8 file renders as escaped text; everything else passes through
// raw. Unsafe paths are refused before any filesystem access.
func (h *Handler) Browse(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(r.URL.Path, "/")

	if _, err := h.store.Resolve(rel); err != nil {
		h.writeError(w, http.StatusForbidden, "path is outside the serving root")
		return
	}
	crel := canonical(rel)

	info, err := h.store.Stat(crel)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "no such path: /"+crel)
			return
		}
		slog.Error("stat failed", slog.String("path", crel), slog.String("error", err.Error()))
		h.writeError(w, http.StatusInternalServerError, "could not read path")
		return
	}

	if info.IsDir() {
		h.serveDir(w, r, crel)
		return
	}

	data, err := h.store.ReadFile(crel)
	if err != nil {
		slog.Error("read failed", slog.String("path", crel), slog.String("error", err.Error()))
		h.writeError(w, http.StatusInternalServerError, "could not read file")
		return
	}

	utf8OK := utf8.Valid(data)
	switch {
	case isMarkdown(info.Name()) && utf8OK:
		h.serveMarkdown(w, r, crel, info.Name(), data)
	case utf8OK:
		h.serveText(w, r, crel, info.Name(), data)
	default:
		h.serveRaw(w, r, info, data)
	}
}

// serveDir redirects to the directory's README.md when one exists,
// otherwise renders the listing.
func (h *Handler) serveDir(w http.ResponseWriter, r *http.Request, crel string) {
	readme := path.Join(crel, "README.md")
	if info, err := h.store.Stat(readme); err == nil && info.Mode().IsRegular() {
		http.Redirect(w, r, href(readme), http.StatusFound)
		return
	}

	entries, err := h.store.ReadDir(crel)
	if err != nil {
		slog.Error("list failed", slog.String("path", crel), slog.String("error", err.Error()))
		h.writeError(w, http.StatusInternalServerError, "could not list directory")
		return
	}

	items := make([]render.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, render.Item{
			Name:  e.Name,
			Href:  href(path.Join(crel, e.Name)),
			IsDir: e.IsDir,
		})
	}

	parentHref := ""
	if crel != "" {
		parentHref = href(parentOf(crel))
	}

	page, err := h.pages.DirectoryPage("/"+crel, parentHref, items, crel)
	if err != nil {
		slog.Error("render listing failed", slog.String("path", crel), slog.String("error", err.Error()))
		h.writeError(w, http.StatusInternalServerError, "could not render directory")
		return
	}
	h.writePage(w, r, page)
}

func (h *Handler) serveMarkdown(w http.ResponseWriter, r *http.Request, crel, name string, data []byte) {
	rec, body := frontmatter.Parse(string(data))
	page, err := h.pages.MarkdownPage(name, baseHref(crel), rec, body, crel)
	if err != nil {
		slog.Error("render markdown failed", slog.String("path", crel), slog.String("error", err.Error()))
		h.writeError(w, http.StatusInternalServerError, "could not render markdown")
		return
	}
	h.writePage(w, r, page)
}

func (h *Handler) serveText(w http.ResponseWriter, r *http.Request, crel, name string, data []byte) {
	page, err := h.pages.TextPage(name, string(data), crel)
	if err != nil {
		slog.Error("render text failed", slog.String("path", crel), slog.String("error", err.Error()))
		h.writeError(w, http.StatusInternalServerError, "could not render file")
		return
	}
	h.writePage(w, r, page)
}

// canonical normalizes a request-relative path: cleaned, no leading slash,
// empty for the root. Callers must have resolved the raw path first.
func canonical(rel string) string {
	return strings.TrimPrefix(path.Clean("/"+rel), "/")
}

// isMarkdown reports whether name carries a Markdown extension.
func isMarkdown(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// href builds an escaped absolute URL path for a root-relative target.
func href(rel string) string {
	u := url.URL{Path: "/" + rel}
	return u.String()
}

// baseHref is the URL of the file's directory, with a trailing slash, so
// relative links in the document resolve against it.
func baseHref(crel string) string {
	dir := parentOf(crel)
	if dir == "" {
		return "/"
	}
	u := url.URL{Path: "/" + dir + "/"}
	return u.String()
}

func parentOf(crel string) string {
	parent := path.Dir(crel)
	if parent == "." {
		return ""
	}
	return parent
}
