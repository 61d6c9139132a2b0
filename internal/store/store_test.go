package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JonMunkholm/celleditors/internal/config"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.Reset(ctx))

	edits, err := s.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, edits)

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Append(ctx, Edit{Grid: "custom", Row: 0, Column: "integer", Value: "7", EditedAt: at}))
	require.NoError(t, s.Append(ctx, Edit{Grid: "custom", Row: 2, Column: "floats", Value: "3.10"}))
	require.NoError(t, s.Append(ctx, Edit{Grid: "basic", Row: 1, Column: "text", Value: ""}))

	edits, err = s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, edits, 3)

	require.Equal(t, "custom", edits[0].Grid)
	require.Equal(t, "integer", edits[0].Column)
	require.Equal(t, "7", edits[0].Value)
	require.True(t, edits[0].EditedAt.Equal(at), "edited_at = %v", edits[0].EditedAt)

	require.Equal(t, 2, edits[1].Row)
	require.Equal(t, "3.10", edits[1].Value)
	require.False(t, edits[1].EditedAt.IsZero(), "zero EditedAt should be stamped on append")

	require.Equal(t, "basic", edits[2].Grid)
	require.Equal(t, "", edits[2].Value)

	require.NoError(t, s.Reset(ctx))
	edits, err = s.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, edits)
}

func TestMemoryStore(t *testing.T) {
	m := NewMemory()
	defer m.Close()
	exerciseStore(t, m)
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Append(ctx, Edit{Grid: "custom", Row: 4, Column: "integer", Value: "1"}))

	edits, err := m.Load(ctx)
	require.NoError(t, err)
	edits[0].Value = "changed"

	again, err := m.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "1", again[0].Value)
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, NewMemory().Append(ctx, Edit{}), context.Canceled)
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "edits.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Close())
}

func TestSQLiteStore_ReopenKeepsEdits(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "edits.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Append(ctx, Edit{Grid: "custom", Row: 1, Column: "floats", Value: "9.99"}))
	require.NoError(t, s.Close())

	// Second open runs migrations again and must hit ErrNoChange quietly.
	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	edits, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, edits, 1)
	require.Equal(t, "9.99", edits[0].Value)
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	s, err := OpenPostgres(context.Background(), config.DatabaseConfig{
		URL:             url,
		MaxConns:        2,
		MinConns:        0,
		MaxConnLifetime: time.Minute,
		MaxConnIdleTime: time.Minute,
	})
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, config.DatabaseConfig{})
	require.NoError(t, err)
	require.Equal(t, "memory", Backend(s))

	s, err = Open(ctx, config.DatabaseConfig{URL: "sqlite://" + filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	require.Equal(t, "sqlite", Backend(s))
	require.NoError(t, s.Close())

	_, err = Open(ctx, config.DatabaseConfig{URL: "mysql://nope"})
	require.Error(t, err)
}
