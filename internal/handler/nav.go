package handler

import (
	"net/http"

	"github.com/devraikou/portfolio/internal/apperror"
	"github.com/devraikou/portfolio/internal/nav"
)

// maxSections bounds the boxes a client may send.
const maxSections = 16

type NavHandler struct {
	classifier *nav.Classifier
}

func NewNavHandler(classifier *nav.Classifier) *NavHandler {
	return &NavHandler{classifier: classifier}
}

type navRequest struct {
	Viewport nav.Viewport     `json:"viewport"`
	Sections []nav.SectionBox `json:"sections"`
}

type navResponse struct {
	Active string `json:"active"`
}

// HandleActive classifies the visitor's scroll position.
//
// HTTP: POST /api/nav/active
// REQUEST BODY: {"viewport": {"scrollY": 0, "height": 800, "documentHeight": 4000},
// "sections": [{"id": "about", "top": 900, "height": 600}, ...]}
func (h *NavHandler) HandleActive(w http.ResponseWriter, r *http.Request) {
	var req navRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if len(req.Sections) > maxSections {
		writeError(w, apperror.ValidationFailed("sections", "too many sections"))
		return
	}

	writeJSON(w, http.StatusOK, navResponse{
		Active: h.classifier.Active(req.Viewport, req.Sections),
	})
}

// HandleConfig returns the classifier thresholds.
//
// HTTP: GET /api/nav/config
func (h *NavHandler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sections": nav.Sections(),
		"config":   h.classifier.Config(),
	})
}
