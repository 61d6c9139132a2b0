// Package dataset holds the in-memory table the demo grids edit.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ColumnType is the declared type of a column.
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeInteger
	TypeFloat
)

func (t ColumnType) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	default:
		return "text"
	}
}

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrRowOutOfRange = errors.New("row out of range")
	ErrRowWidth      = errors.New("row width does not match columns")
)

// Column describes one dataset column.
type Column struct {
	Name string
	Type ColumnType
}

// Dataset is a small column-typed table. Values are string, int64, float64
// or Decimal. A Dataset is not safe for concurrent use.
type Dataset struct {
	columns []Column
	index   map[string]int
	rows    [][]any
}

// New creates an empty dataset with the given columns.
func New(columns []Column) *Dataset {
	d := &Dataset{
		columns: append([]Column(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range d.columns {
		d.index[c.Name] = i
	}
	return d
}

// AppendRow adds a row. Values are stored as given.
func (d *Dataset) AppendRow(values ...any) error {
	if len(values) != len(d.columns) {
		return fmt.Errorf("%w: got %d, want %d", ErrRowWidth, len(values), len(d.columns))
	}
	d.rows = append(d.rows, append([]any(nil), values...))
	return nil
}

// Columns returns a copy of the column list.
func (d *Dataset) Columns() []Column {
	return append([]Column(nil), d.columns...)
}

// ColumnNames returns the column names in order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Row returns a copy of row i.
func (d *Dataset) Row(i int) ([]any, error) {
	if i < 0 || i >= len(d.rows) {
		return nil, fmt.Errorf("%w: %d", ErrRowOutOfRange, i)
	}
	return append([]any(nil), d.rows[i]...), nil
}

// Get returns the value at row, column.
func (d *Dataset) Get(row int, column string) (any, error) {
	ci, err := d.locate(row, column)
	if err != nil {
		return nil, err
	}
	return d.rows[row][ci], nil
}

// Set parses raw according to the column type and stores it, returning the
// previous value. Text that does not parse for a numeric column is stored as
// a string, the same way a plain text editor lets anything through.
func (d *Dataset) Set(row int, column string, raw string) (any, error) {
	ci, err := d.locate(row, column)
	if err != nil {
		return nil, err
	}
	old := d.rows[row][ci]
	d.rows[row][ci] = Coerce(d.columns[ci].Type, raw)
	return old, nil
}

func (d *Dataset) locate(row int, column string) (int, error) {
	ci, ok := d.index[column]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if row < 0 || row >= len(d.rows) {
		return 0, fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	return ci, nil
}

// Clone returns a deep copy.
func (d *Dataset) Clone() *Dataset {
	c := New(d.columns)
	c.rows = make([][]any, len(d.rows))
	for i, r := range d.rows {
		c.rows[i] = append([]any(nil), r...)
	}
	return c
}

// Decimal is a parsed float that remembers the text it was written as, so a
// committed "3.10" is shown as "3.10" and not "3.1".
type Decimal struct {
	Value float64
	Text  string
}

func (d Decimal) String() string { return d.Text }

// MarshalJSON writes the number with its original digits.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.Text), nil
}

// Coerce converts raw text to the Go value stored for a column type. Float
// columns keep the trimmed text next to the parsed value.
func Coerce(t ColumnType, raw string) any {
	s := strings.TrimSpace(raw)
	switch t {
	case TypeInteger:
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
	case TypeFloat:
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return Decimal{Value: f, Text: s}
		}
	}
	return raw
}

// Format renders a value for display.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case Decimal:
		return x.Text
	}
	return fmt.Sprint(v)
}

// WriteCSV writes a header row followed by every data row.
func (d *Dataset) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.ColumnNames()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(d.columns))
	for _, r := range d.rows {
		for i, v := range r {
			record[i] = Format(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
