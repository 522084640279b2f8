// Package render produces the HTML pages viewmd serves: rendered Markdown
// documents, escaped text views, directory listings, and error pages.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"viewmd/internal/frontmatter"
)

//go:embed templates/*.html
var templatesFS embed.FS

// highlightStyle is the chroma style for fenced code blocks.
const highlightStyle = "github"

// Config controls page production.
type Config struct {
	// LiveReload embeds the reload script in every content page.
	LiveReload bool
	// EventsPath is the SSE endpoint the reload script subscribes to.
	EventsPath string
}

// Renderer converts file content and listings into complete HTML pages.
// It is safe for concurrent use.
type Renderer struct {
	cfg          Config
	md           goldmark.Markdown
	tmpl         *template.Template
	highlightCSS template.CSS
}

// New builds a Renderer: page templates, the Markdown pipeline, and the
// highlight stylesheet inlined into Markdown pages.
func New(cfg Config) (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("render: parse templates: %w", err)
	}

	var css bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&css, styles.Get(highlightStyle)); err != nil {
		return nil, fmt.Errorf("render: highlight stylesheet: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		// Hard wraps turn single newlines into <br>, matching how notes
		// are usually written; raw HTML passes through for a local,
		// trusted tree.
		goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps(), goldmarkhtml.WithUnsafe()),
	)

	return &Renderer{
		cfg:          cfg,
		md:           md,
		tmpl:         tmpl,
		highlightCSS: template.CSS(css.String()),
	}, nil
}

// pageData carries the fields shared by every content page.
type pageData struct {
	LiveReload bool
	EventsPath string
	WatchPath  string
}

func (r *Renderer) page(watchPath string) pageData {
	return pageData{
		LiveReload: r.cfg.LiveReload,
		EventsPath: r.cfg.EventsPath,
		WatchPath:  watchPath,
	}
}

func (r *Renderer) execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render: execute %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

type markdownData struct {
	pageData
	Title        string
	BaseHref     string
	Frontmatter  []frontmatter.Pair
	Body         template.HTML
	HighlightCSS template.CSS
}

// MarkdownPage renders a Markdown document with its frontmatter table above
// the converted body. baseHref must be the URL of the file's directory so
// relative links and images resolve; watchPath is the root-relative source
// path the reload script matches events against. An absent or empty record
// produces no table.
func (r *Renderer) MarkdownPage(name, baseHref string, rec *frontmatter.Record, body, watchPath string) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return nil, fmt.Errorf("render: markdown %s: %w", name, err)
	}
	data := markdownData{
		pageData:     r.page(watchPath),
		Title:        name,
		BaseHref:     baseHref,
		Frontmatter:  rec.Pairs(),
		Body:         template.HTML(buf.String()),
		HighlightCSS: r.highlightCSS,
	}
	return r.execute("markdown.html", data)
}

type textData struct {
	pageData
	Title   string
	Content string
}

// TextPage renders a UTF-8 file as an escaped preformatted view.
func (r *Renderer) TextPage(name, content, watchPath string) ([]byte, error) {
	data := textData{
		pageData: r.page(watchPath),
		Title:    name,
		Content:  content,
	}
	return r.execute("text.html", data)
}

// Item is one row of a directory listing. Href must already be a
// URL-escaped absolute path.
type Item struct {
	Name  string
	Href  string
	IsDir bool
}

type listingData struct {
	pageData
	DisplayPath string
	ParentHref  string
	Items       []Item
}

// DirectoryPage renders a directory listing. parentHref is empty at the
// serving root, which omits the ".." link.
func (r *Renderer) DirectoryPage(displayPath, parentHref string, items []Item, watchPath string) ([]byte, error) {
	data := listingData{
		pageData:    r.page(watchPath),
		DisplayPath: displayPath,
		ParentHref:  parentHref,
		Items:       items,
	}
	return r.execute("listing.html", data)
}

type errorData struct {
	Status     int
	StatusText string
	Message    string
}

// ErrorPage renders a minimal error page. It never fails: a template
// problem degrades to a plain-text body.
func (r *Renderer) ErrorPage(status int, message string) []byte {
	page, err := r.execute("error.html", errorData{
		Status:     status,
		StatusText: http.StatusText(status),
		Message:    message,
	})
	if err != nil {
		return []byte(fmt.Sprintf("%d %s: %s", status, http.StatusText(status), message))
	}
	return page
}
