package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/devraikou/portfolio/internal/apperror"
	"github.com/devraikou/portfolio/internal/model"
	"github.com/devraikou/portfolio/internal/repository"
)

var _ repository.MessageRepository = (*DB)(nil)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Create inserts msg, assigning its ID and timestamps.
func (db *DB) Create(ctx context.Context, msg *model.Message) error {
	msg.ID = xid.New().String()
	now := time.Now().UTC()
	msg.CreatedAt = now
	msg.UpdatedAt = now
	msg.Read = false

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO messages (id, name, email, body, "read", created_at, updated_at)
		 VALUES (?, ?, ?, ?, 0, ?, ?)`,
		msg.ID, msg.Name, msg.Email, msg.Body, msg.CreatedAt, msg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating message: %w", err)
	}
	return nil
}

func (db *DB) GetByID(ctx context.Context, id string) (*model.Message, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, name, email, body, "read", created_at, updated_at
		 FROM messages WHERE id = ?`,
		id,
	)

	msg, err := scanMessage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("message", id)
		}
		return nil, fmt.Errorf("sqlite: getting message %s: %w", id, err)
	}
	return msg, nil
}

// List returns messages newest first. Limit is clamped to 1..100 and
// defaults to 20.
func (db *DB) List(ctx context.Context, opts repository.ListOptions) ([]model.Message, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	limit = min(limit, maxPageSize)
	offset := max(opts.Offset, 0)

	query := `SELECT id, name, email, body, "read", created_at, updated_at FROM messages`
	if opts.UnreadOnly {
		query += ` WHERE "read" = 0`
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`

	rows, err := db.conn.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing messages: %w", err)
	}
	defer rows.Close()

	messages := make([]model.Message, 0, limit)
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning message: %w", err)
		}
		messages = append(messages, *msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating messages: %w", err)
	}
	return messages, nil
}

func (db *DB) CountUnread(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages WHERE "read" = 0`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: counting unread messages: %w", err)
	}
	return n, nil
}

// MarkRead flags a message as read. Marking an already-read message is not
// an error.
func (db *DB) MarkRead(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE messages SET "read" = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: marking message %s read: %w", id, err)
	}
	return requireAffected(res, id)
}

func (db *DB) Delete(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting message %s: %w", id, err)
	}
	return requireAffected(res, id)
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound("message", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMessage(s scanner) (*model.Message, error) {
	var msg model.Message
	if err := s.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Body, &msg.Read, &msg.CreatedAt, &msg.UpdatedAt); err != nil {
		return nil, err
	}
	return &msg, nil
}
