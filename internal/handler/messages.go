package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/devraikou/portfolio/internal/apperror"
	"github.com/devraikou/portfolio/internal/service"
)

// MessageHandler is the admin inbox API. Every route sits behind
// auth.RequireAdmin.
type MessageHandler struct {
	messages *service.MessageService
	logger   *slog.Logger
}

func NewMessageHandler(messages *service.MessageService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, logger: logger}
}

// HandleList returns a page of messages, newest first.
//
// HTTP: GET /api/messages?limit=20&offset=0&unread=true
func (h *MessageHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := queryInt(q.Get("limit"), "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	offset, err := queryInt(q.Get("offset"), "offset")
	if err != nil {
		writeError(w, err)
		return
	}
	unread := q.Get("unread") == "true" || q.Get("unread") == "1"

	inbox, err := h.messages.List(r.Context(), limit, offset, unread)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inbox)
}

// HandleMarkRead flags a message as read.
//
// HTTP: PUT /api/messages/{id}/read
func (h *MessageHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	msg, err := h.messages.MarkRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// HandleDelete removes a message.
//
// HTTP: DELETE /api/messages/{id}
func (h *MessageHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.messages.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.ValidationFailed(field, field+" must be an integer")
	}
	return n, nil
}
