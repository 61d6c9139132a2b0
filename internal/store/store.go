// Package store persists committed cell edits so a restarted server can
// replay them over the demo dataset.
//
// Three backends are available, selected by DATABASE_URL:
//
//	""             in-memory (edits are lost on restart)
//	postgres://... PostgreSQL through a pgx pool
//	sqlite://path  SQLite file, schema managed by golang-migrate
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JonMunkholm/celleditors/internal/config"
)

// Edit is one committed cell change.
type Edit struct {
	Grid     string    `json:"grid"`
	Row      int       `json:"row"`
	Column   string    `json:"column"`
	Value    string    `json:"value"`
	EditedAt time.Time `json:"editedAt"`
}

// Store records edits in commit order.
type Store interface {
	// Load returns every recorded edit, oldest first.
	Load(ctx context.Context) ([]Edit, error)

	// Append records one edit.
	Append(ctx context.Context, e Edit) error

	// Reset forgets all edits.
	Reset(ctx context.Context) error

	// Close releases the backend.
	Close() error
}

// Open returns the store named by cfg.URL.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	switch {
	case cfg.URL == "":
		return NewMemory(), nil
	case strings.HasPrefix(cfg.URL, "postgres://"), strings.HasPrefix(cfg.URL, "postgresql://"):
		return OpenPostgres(ctx, cfg)
	case strings.HasPrefix(cfg.URL, "sqlite://"):
		return OpenSQLite(ctx, strings.TrimPrefix(cfg.URL, "sqlite://"))
	}
	return nil, fmt.Errorf("unsupported store url scheme: %q", cfg.URL)
}

// Backend names the kind of store for logging.
func Backend(s Store) string {
	switch s.(type) {
	case *Memory:
		return "memory"
	case *Postgres:
		return "postgres"
	case *SQLite:
		return "sqlite"
	}
	return fmt.Sprintf("%T", s)
}
