package handler

import (
	"log/slog"
	"net/http"

	"github.com/devraikou/portfolio/internal/content"
	"github.com/devraikou/portfolio/internal/nav"
	"github.com/devraikou/portfolio/internal/projects"
	"github.com/devraikou/portfolio/internal/service"
)

// PageHandler serves the page and the two widget fragments.
type PageHandler struct {
	renderer     *Renderer
	site         content.Site
	nav          nav.Config
	presence     PresenceSource
	projects     ProjectsSource
	placeholders int
	logger       *slog.Logger
}

// NewPageHandler creates a PageHandler. placeholders is the number of
// skeleton cards drawn while the gallery is loading.
func NewPageHandler(
	renderer *Renderer,
	site content.Site,
	navCfg nav.Config,
	presence PresenceSource,
	projects ProjectsSource,
	placeholders int,
	logger *slog.Logger,
) *PageHandler {
	return &PageHandler{
		renderer:     renderer,
		site:         site,
		nav:          navCfg,
		presence:     presence,
		projects:     projects,
		placeholders: placeholders,
		logger:       logger,
	}
}

// HandleIndex serves the full page.
//
// HTTP: GET /
//
// The presence card is rendered inline from the poller's current state.
// The gallery is rendered inline only if the fetch has already finished;
// otherwise the page carries skeleton cards and the script loads
// /partials/projects once the section scrolls into view.
func (h *PageHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	form := ContactForm{Sent: r.URL.Query().Get("sent") == "1"}
	h.renderIndex(w, http.StatusOK, form)
}

func (h *PageHandler) renderIndex(w http.ResponseWriter, status int, form ContactForm) {
	about, err := content.About()
	if err != nil {
		h.logger.Error("failed to render about section", slog.String("error", err.Error()))
	}

	res, ok := h.projects.Peek()
	if !ok {
		res = projects.Result{Pending: true}
	}

	form.MaxBody = service.MaxBodyLength

	h.renderer.renderPage(w, status, "index", PageData{
		Site:     h.site,
		Links:    nav.Links(),
		Sections: nav.Sections(),
		Nav:      h.nav,
		About:    about,
		Skills:   content.Skills(),
		Presence: h.presence.Card(),
		Projects: projects.BuildView(res, h.site.GitHubURL, h.placeholders),
		Contact:  form,
	})
}

// HandlePresence serves the presence card fragment.
//
// HTTP: GET /partials/presence
func (h *PageHandler) HandlePresence(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	h.renderer.renderBlock(w, http.StatusOK, "index", "presence-card", h.presence.Card())
}

// HandlePresenceJSON serves the presence card as JSON.
//
// HTTP: GET /api/presence
func (h *PageHandler) HandlePresenceJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, h.presence.Card())
}

// HandleProjects serves the gallery fragment. The first request triggers
// the one-time repository fetch and waits for it; if the visitor gives up
// first, the skeleton is rendered again.
//
// HTTP: GET /partials/projects
func (h *PageHandler) HandleProjects(w http.ResponseWriter, r *http.Request) {
	view := projects.BuildView(h.projects.Load(r.Context()), h.site.GitHubURL, h.placeholders)
	h.renderer.renderBlock(w, http.StatusOK, "index", "projects", view)
}

// HandleProjectsJSON serves the gallery as JSON, triggering the fetch like
// HandleProjects does.
//
// HTTP: GET /api/projects
func (h *PageHandler) HandleProjectsJSON(w http.ResponseWriter, r *http.Request) {
	view := projects.BuildView(h.projects.Load(r.Context()), h.site.GitHubURL, h.placeholders)
	writeJSON(w, http.StatusOK, view)
}

// HandleNotFound renders the error page for unknown paths.
func (h *PageHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, http.StatusNotFound, "Page not found")
}

func (h *PageHandler) renderError(w http.ResponseWriter, status int, message string) {
	h.renderer.renderPage(w, status, "error", ErrorPageData{
		Site:       h.site,
		Links:      nav.Links(),
		StatusCode: status,
		Message:    message,
	})
}
