package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devraikou/portfolio/internal/apperror"
	"github.com/devraikou/portfolio/internal/model"
	"github.com/devraikou/portfolio/internal/repository"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestMessage(t *testing.T, db *DB, name string) *model.Message {
	t.Helper()
	msg := &model.Message{Name: name, Email: name + "@example.com", Body: "hello from " + name}
	if err := db.Create(context.Background(), msg); err != nil {
		t.Fatalf("failed to create test message: %v", err)
	}
	return msg
}

func TestCreate(t *testing.T) {
	db := newTestDB(t)

	msg := createTestMessage(t, db, "ada")

	if msg.ID == "" {
		t.Error("Create() did not set ID")
	}
	if msg.CreatedAt.IsZero() || msg.UpdatedAt.IsZero() {
		t.Error("Create() did not set timestamps")
	}
	if msg.Read {
		t.Error("new messages must be unread")
	}
}

func TestGetByID(t *testing.T) {
	db := newTestDB(t)
	original := createTestMessage(t, db, "ada")

	got, err := db.GetByID(context.Background(), original.ID)
	require.NoError(t, err)

	assert.Equal(t, original.ID, got.ID)
	assert.Equal(t, "ada", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "hello from ada", got.Body)
	assert.False(t, got.Read)
	assert.WithinDuration(t, original.CreatedAt, got.CreatedAt, time.Second)
}

func TestGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByID(context.Background(), "missing")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestList_NewestFirstAndPaging(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		ids = append(ids, createTestMessage(t, db, name).ID)
		time.Sleep(2 * time.Millisecond)
	}

	all, err := db.List(ctx, repository.ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{all[0].ID, all[1].ID, all[2].ID})

	page, err := db.List(ctx, repository.ListOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[1], page[0].ID)

	empty, err := db.List(ctx, repository.ListOptions{Offset: 10})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMarkReadAndUnread(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := createTestMessage(t, db, "a")
	createTestMessage(t, db, "b")

	n, err := db.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, db.MarkRead(ctx, a.ID))
	require.NoError(t, db.MarkRead(ctx, a.ID), "marking twice is fine")

	got, err := db.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)

	n, err = db.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	unread, err := db.List(ctx, repository.ListOptions{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "b", unread[0].Name)
}

func TestMarkRead_NotFound(t *testing.T) {
	db := newTestDB(t)
	err := db.MarkRead(context.Background(), "missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	msg := createTestMessage(t, db, "a")

	require.NoError(t, db.Delete(ctx, msg.ID))

	_, err := db.GetByID(ctx, msg.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	assert.ErrorIs(t, db.Delete(ctx, msg.ID), apperror.ErrNotFound)
}

func TestNew_FileReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.db")

	db, err := New(path)
	require.NoError(t, err)
	msg := createTestMessage(t, db, "persisted")
	require.NoError(t, db.Close())

	// Migrations run again on reopen and must be idempotent.
	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()

	got, err := db.GetByID(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Name)
	assert.NoError(t, db.Ping(context.Background()))
}
