// Package grid builds the column and grid configuration a grid host renders.
//
// A Builder is seeded from a dataset, tweaked column by column, and then
// frozen with Build. The resulting Options value is never mutated afterwards:
// it is safe to share between requests and goroutines.
package grid

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/JonMunkholm/celleditors/internal/editor"
)

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrNotEditable   = errors.New("column is not editable")
)

// ColumnDef is the configuration of one column.
type ColumnDef struct {
	Field            string        `json:"field"`
	HeaderName       string        `json:"headerName,omitempty"`
	Editable         bool          `json:"editable"`
	CellEditor       editor.Kind   `json:"cellEditor,omitempty"`
	CellEditorPopup  bool          `json:"cellEditorPopup,omitempty"`
	CellEditorParams editor.Params `json:"cellEditorParams"`
	MaxWidth         int           `json:"maxWidth,omitempty"`
}

// Editor returns the configured editor kind, defaulting to the text editor.
func (c ColumnDef) Editor() editor.Kind {
	if c.CellEditor == "" {
		return editor.KindText
	}
	return c.CellEditor
}

func (c ColumnDef) clone() ColumnDef {
	c.CellEditorParams.Values = append([]string(nil), c.CellEditorParams.Values...)
	return c
}

// Options is a built, read-only grid configuration.
type Options struct {
	columns []ColumnDef
	index   map[string]int
	flash   bool
}

// Columns returns a copy of the column definitions.
func (o Options) Columns() []ColumnDef {
	out := make([]ColumnDef, len(o.columns))
	for i, c := range o.columns {
		out[i] = c.clone()
	}
	return out
}

// Column looks up a column definition.
func (o Options) Column(field string) (ColumnDef, bool) {
	i, ok := o.index[field]
	if !ok {
		return ColumnDef{}, false
	}
	return o.columns[i].clone(), true
}

// FlashChangedCells reports whether edited cells stay highlighted.
func (o Options) FlashChangedCells() bool { return o.flash }

// NewEditor instantiates the editor configured for field.
func (o Options) NewEditor(field string) (editor.Editor, error) {
	c, ok := o.Column(field)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, field)
	}
	if !c.Editable {
		return nil, fmt.Errorf("%w: %q", ErrNotEditable, field)
	}
	ed, err := editor.New(c.Editor(), c.CellEditorParams)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", field, err)
	}
	return ed, nil
}

// Popup reports whether the editor for field opens as an overlay. The column
// setting wins; otherwise the editor decides.
func (o Options) Popup(field string, ed editor.Editor) bool {
	if c, ok := o.Column(field); ok && c.CellEditorPopup {
		return true
	}
	return ed != nil && ed.IsPopup()
}

// MarshalJSON emits ag-grid style gridOptions.
func (o Options) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ColumnDefs        []ColumnDef `json:"columnDefs"`
		FlashChangedCells bool        `json:"flashChangedCells"`
	}{
		ColumnDefs:        o.Columns(),
		FlashChangedCells: o.flash,
	})
}
