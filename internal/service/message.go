// Package service holds the business rules between the HTTP handlers and
// the repositories. Services take and return plain Go values and domain
// errors from apperror; they know nothing about HTTP.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/devraikou/portfolio/internal/apperror"
	"github.com/devraikou/portfolio/internal/model"
	"github.com/devraikou/portfolio/internal/repository"
)

const (
	MaxNameLength    = 100
	MaxEmailLength   = 254
	MinBodyLength    = 10
	MaxBodyLength    = 5000
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// MessageService accepts contact form submissions and serves the admin inbox.
type MessageService struct {
	repo   repository.MessageRepository
	logger *slog.Logger
}

func NewMessageService(repo repository.MessageRepository, logger *slog.Logger) *MessageService {
	return &MessageService{repo: repo, logger: logger}
}

// Submit validates and stores a contact form message. Name and body are
// trimmed; the email must be a bare address.
func (s *MessageService) Submit(ctx context.Context, name, email, body string) (*model.Message, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	body = strings.TrimSpace(body)

	if err := validateContact(name, email, body); err != nil {
		return nil, err
	}

	msg := &model.Message{Name: name, Email: email, Body: body}
	if err := s.repo.Create(ctx, msg); err != nil {
		s.logger.Error("failed to store message", slog.String("error", err.Error()))
		return nil, fmt.Errorf("storing message: %w", err)
	}

	s.logger.Info("message received",
		slog.String("id", msg.ID),
		slog.Int("bodyLength", utf8.RuneCountInString(body)),
	)
	return msg, nil
}

func validateContact(name, email, body string) error {
	switch {
	case name == "":
		return apperror.ValidationFailed("name", "name is required")
	case utf8.RuneCountInString(name) > MaxNameLength:
		return apperror.ValidationFailed("name", fmt.Sprintf("name must be %d characters or less", MaxNameLength))
	case email == "":
		return apperror.ValidationFailed("email", "email is required")
	case len(email) > MaxEmailLength:
		return apperror.ValidationFailed("email", "email is too long")
	}

	// ParseAddress also accepts `Name <addr>`; only a bare address is allowed.
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return apperror.ValidationFailed("email", "invalid email format")
	}

	n := utf8.RuneCountInString(body)
	switch {
	case n < MinBodyLength:
		return apperror.ValidationFailed("body", fmt.Sprintf("message must be at least %d characters", MinBodyLength))
	case n > MaxBodyLength:
		return apperror.ValidationFailed("body", fmt.Sprintf("message must be %d characters or less", MaxBodyLength))
	}
	return nil
}

// Inbox is one page of the admin inbox.
type Inbox struct {
	Messages []model.Message `json:"messages"`
	Unread   int             `json:"unread"`
	Limit    int             `json:"limit"`
	Offset   int             `json:"offset"`
}

// List returns a page of messages, newest first, with the unread count.
func (s *MessageService) List(ctx context.Context, limit, offset int, unreadOnly bool) (*Inbox, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)
	offset = max(offset, 0)

	msgs, err := s.repo.List(ctx, repository.ListOptions{Limit: limit, Offset: offset, UnreadOnly: unreadOnly})
	if err != nil {
		s.logger.Error("failed to list messages", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	unread, err := s.repo.CountUnread(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting unread: %w", err)
	}

	return &Inbox{Messages: msgs, Unread: unread, Limit: limit, Offset: offset}, nil
}

// MarkRead flags a message as read and returns it.
func (s *MessageService) MarkRead(ctx context.Context, id string) (*model.Message, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "message ID is required")
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *MessageService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "message ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("message deleted", slog.String("id", id))
	return nil
}
