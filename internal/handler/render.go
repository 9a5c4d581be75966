package handler

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/devraikou/portfolio/internal/content"
	"github.com/devraikou/portfolio/internal/nav"
	"github.com/devraikou/portfolio/internal/presence"
	"github.com/devraikou/portfolio/internal/projects"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// StaticFiles returns the embedded assets served under /static/.
func StaticFiles() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory
	}
	return sub
}

// PageData is the data for the full page.
type PageData struct {
	Site     content.Site
	Links    []nav.Link
	Sections []string
	Nav      nav.Config
	About    template.HTML
	Skills   []content.SkillGroup
	Presence presence.Card
	Projects projects.View
	Contact  ContactForm
}

// ContactForm carries the contact form state when the page is rendered
// after a plain form post.
type ContactForm struct {
	Name    string
	Email   string
	Body    string
	Error   string
	Field   string
	Sent    bool
	MaxBody int
}

// ErrorPageData is the data for the error page.
type ErrorPageData struct {
	Site       content.Site
	Links      []nav.Link
	StatusCode int
	Message    string
}

// Renderer owns the parsed templates. Each page is a clone of the layout
// with the page's own blocks parsed on top.
type Renderer struct {
	templates map[string]*template.Template
	logger    *slog.Logger
}

func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}

	funcs := template.FuncMap{
		"join": strings.Join,
		"seq": func(n int) []int {
			out := make([]int, max(n, 0))
			for i := range out {
				out[i] = i
			}
			return out
		},
	}

	layout, err := template.New("layout").Funcs(funcs).ParseFS(sub, "layout.html", "partials.html")
	if err != nil {
		return nil, err
	}

	pages := map[string]string{
		"index": "index.html",
		"error": "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(sub, file); err != nil {
			return nil, err
		}
		templates[name] = t
	}

	return &Renderer{templates: templates, logger: logger}, nil
}

// renderPage renders a full page inside the layout.
func (r *Renderer) renderPage(w http.ResponseWriter, status int, name string, data any) {
	r.renderBlock(w, status, name, "layout", data)
}

// renderBlock renders one named block of a page, used for the lazily
// loaded fragments. The output is buffered so a template error never
// leaves a half-written response.
func (r *Renderer) renderBlock(w http.ResponseWriter, status int, page, block string, data any) {
	t, ok := r.templates[page]
	if !ok {
		r.logger.Error("template not found", slog.String("page", page))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, block, data); err != nil {
		r.logger.Error("template execution failed",
			slog.String("page", page),
			slog.String("block", block),
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
