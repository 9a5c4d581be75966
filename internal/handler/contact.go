package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/devraikou/portfolio/internal/apperror"
	"github.com/devraikou/portfolio/internal/service"
)

// ContactHandler accepts contact form submissions.
type ContactHandler struct {
	messages *service.MessageService
	pages    *PageHandler
	logger   *slog.Logger
}

func NewContactHandler(messages *service.MessageService, pages *PageHandler, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{messages: messages, pages: pages, logger: logger}
}

type contactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Body  string `json:"body"`
}

// HandleSubmit stores a contact message.
//
// HTTP: POST /api/contact
//
// A JSON body gets a JSON answer (201 or an ErrorResponse). A plain form
// post is redirected back to the page on success, or the page is rendered
// again with the error and the visitor's input on a validation failure.
func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if isJSON(r) {
		var req contactRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}

		msg, err := h.messages.Submit(r.Context(), req.Name, req.Email, req.Body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{
			"id":      msg.ID,
			"message": "Thanks, your message has been sent.",
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.pages.renderError(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	form := ContactForm{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
		Body:  r.PostFormValue("body"),
	}

	if _, err := h.messages.Submit(r.Context(), form.Name, form.Email, form.Body); err != nil {
		var appErr *apperror.AppError
		if errors.Is(err, apperror.ErrValidation) && errors.As(err, &appErr) {
			form.Error = appErr.Message
			form.Field = appErr.Field
			h.pages.renderIndex(w, http.StatusBadRequest, form)
			return
		}
		h.logger.Error("contact form failed", slog.String("error", err.Error()))
		h.pages.renderError(w, http.StatusInternalServerError, "Your message could not be sent. Please try again later.")
		return
	}

	http.Redirect(w, r, "/?sent=1#contact", http.StatusSeeOther)
}
