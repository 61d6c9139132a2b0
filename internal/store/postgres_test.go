package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"
)

// recordingDB is a DBTX that records statements and can fail on one.
type recordingDB struct {
	sql    []string
	args   [][]any
	failOn string
}

func (r *recordingDB) Exec(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	r.sql = append(r.sql, sql)
	r.args = append(r.args, args)
	if r.failOn != "" && strings.Contains(sql, r.failOn) {
		return pgconn.CommandTag{}, errors.New("boom")
	}
	return pgconn.NewCommandTag("OK"), nil
}

func (r *recordingDB) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("not supported")
}

func (r *recordingDB) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return nil
}

func TestEditQueries_ResetRunsBothStatements(t *testing.T) {
	db := &recordingDB{}
	require.NoError(t, newEditQueries(db).reset(context.Background()))

	require.Len(t, db.sql, 2)
	require.Equal(t, "DELETE FROM cell_edits", db.sql[0])
	require.Equal(t, "ALTER SEQUENCE cell_edits_id_seq RESTART", db.sql[1])
}

func TestEditQueries_ResetStopsOnError(t *testing.T) {
	db := &recordingDB{failOn: "DELETE"}
	err := newEditQueries(db).reset(context.Background())

	require.ErrorContains(t, err, "delete edits")
	require.Len(t, db.sql, 1)
}

func TestEditQueries_AppendStampsTime(t *testing.T) {
	db := &recordingDB{}
	before := time.Now()
	require.NoError(t, newEditQueries(db).append(context.Background(),
		Edit{Grid: "custom", Row: 2, Column: "floats", Value: "3.10"}))

	require.Len(t, db.args, 1)
	args := db.args[0]
	require.Equal(t, "custom", args[0])
	require.Equal(t, int32(2), args[1])
	require.Equal(t, pgtype.Text{String: "3.10", Valid: true}, args[3])

	ts := args[4].(pgtype.Timestamptz)
	require.True(t, ts.Valid)
	require.False(t, ts.Time.Before(before))
}

func TestEditQueries_LoadWrapsQueryError(t *testing.T) {
	_, err := newEditQueries(&recordingDB{}).load(context.Background())
	require.ErrorContains(t, err, "query edits")
}
