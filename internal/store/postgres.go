package store

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/celleditors/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx: reads and appends run on the
// pool, Reset runs inside a transaction.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS cell_edits (
    id          BIGSERIAL PRIMARY KEY,
    grid_key    TEXT        NOT NULL,
    row_index   INTEGER     NOT NULL,
    column_name TEXT        NOT NULL,
    value       TEXT,
    edited_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Postgres stores edits in a cell_edits table.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects a pool sized from cfg, verifies the connection and
// creates the table if needed.
func OpenPostgres(ctx context.Context, cfg config.DatabaseConfig) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Load(ctx context.Context) ([]Edit, error) {
	return newEditQueries(p.pool).load(ctx)
}

func (p *Postgres) Append(ctx context.Context, e Edit) error {
	return newEditQueries(p.pool).append(ctx, e)
}

// Reset empties the table and restarts its id sequence in one transaction.
func (p *Postgres) Reset(ctx context.Context) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	if err := newEditQueries(tx).reset(ctx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	return nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

// editQueries runs the cell_edits statements against a pool or a
// transaction.
type editQueries struct {
	db DBTX
}

func newEditQueries(db DBTX) *editQueries {
	return &editQueries{db: db}
}

func (q *editQueries) load(ctx context.Context) ([]Edit, error) {
	rows, err := q.db.Query(ctx,
		`SELECT grid_key, row_index, column_name, value, edited_at FROM cell_edits ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query edits: %w", err)
	}
	defer rows.Close()

	var edits []Edit
	for rows.Next() {
		var (
			e      Edit
			row    int32
			value  pgtype.Text
			edited pgtype.Timestamptz
		)
		if err := rows.Scan(&e.Grid, &row, &e.Column, &value, &edited); err != nil {
			return nil, fmt.Errorf("scan edit: %w", err)
		}
		e.Row = int(row)
		e.Value = value.String
		if edited.Valid {
			e.EditedAt = edited.Time
		}
		edits = append(edits, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read edits: %w", err)
	}
	return edits, nil
}

func (q *editQueries) append(ctx context.Context, e Edit) error {
	if e.EditedAt.IsZero() {
		e.EditedAt = time.Now()
	}
	_, err := q.db.Exec(ctx,
		`INSERT INTO cell_edits (grid_key, row_index, column_name, value, edited_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.Grid, int32(e.Row), e.Column,
		pgtype.Text{String: e.Value, Valid: true},
		pgtype.Timestamptz{Time: e.EditedAt, Valid: true},
	)
	if err != nil {
		return fmt.Errorf("insert edit: %w", err)
	}
	return nil
}

func (q *editQueries) reset(ctx context.Context) error {
	if _, err := q.db.Exec(ctx, `DELETE FROM cell_edits`); err != nil {
		return fmt.Errorf("delete edits: %w", err)
	}
	if _, err := q.db.Exec(ctx, `ALTER SEQUENCE cell_edits_id_seq RESTART`); err != nil {
		return fmt.Errorf("restart edit ids: %w", err)
	}
	return nil
}
