// Package repository declares the storage interfaces the services depend on.
package repository

import (
	"context"

	"github.com/devraikou/portfolio/internal/model"
)

// ListOptions pages through results, newest first.
type ListOptions struct {
	Limit      int
	Offset     int
	UnreadOnly bool
}

// MessageRepository stores contact form messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	GetByID(ctx context.Context, id string) (*model.Message, error)
	List(ctx context.Context, opts ListOptions) ([]model.Message, error)
	CountUnread(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
