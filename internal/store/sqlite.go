package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// SQLite stores edits in a local database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the
// embedded migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("sqlite: empty path")
	}
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLite{db: db}, nil
}

// runMigrations applies all up migrations using the existing *sql.DB.
// The migrate instance is not closed: closing it would close db as well.
func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *SQLite) Load(ctx context.Context) ([]Edit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT grid_key, row_index, column_name, value, edited_at FROM cell_edits ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query edits: %w", err)
	}
	defer rows.Close()

	var edits []Edit
	for rows.Next() {
		var (
			e      Edit
			value  sql.NullString
			edited string
		)
		if err := rows.Scan(&e.Grid, &e.Row, &e.Column, &value, &edited); err != nil {
			return nil, fmt.Errorf("scan edit: %w", err)
		}
		e.Value = value.String
		if t, err := time.Parse(time.RFC3339Nano, edited); err == nil {
			e.EditedAt = t
		}
		edits = append(edits, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read edits: %w", err)
	}
	return edits, nil
}

func (s *SQLite) Append(ctx context.Context, e Edit) error {
	if e.EditedAt.IsZero() {
		e.EditedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cell_edits (grid_key, row_index, column_name, value, edited_at) VALUES (?, ?, ?, ?, ?)`,
		e.Grid, e.Row, e.Column, e.Value, e.EditedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert edit: %w", err)
	}
	return nil
}

func (s *SQLite) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cell_edits`); err != nil {
		return fmt.Errorf("delete edits: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
