// Package editor implements the cell editors a grid host can open on a cell.
//
// Every editor satisfies the same host contract: the host calls Init with the
// prior cell value and the triggering keystroke (if any), asks
// IsCancelBeforeStart before showing anything, calls AfterGuiAttached once the
// editor is visible, routes keystrokes through HandleKey and finally asks
// GetValue for the value to commit.
//
// The provided editors mirror the ag-grid built-ins (text, large text, select
// and rich select). The numeric editors restrict input to an integer or a
// float and normalize the committed value.
//
// Editors are not safe for concurrent use. The host owns one editor per cell
// being edited and serializes access to it.
package editor

import (
	"errors"
	"fmt"
	"strconv"
)

// Kind identifies an editor implementation. The values match the names the
// front end uses in column definitions.
type Kind string

const (
	KindText       Kind = "agTextCellEditor"
	KindLargeText  Kind = "agLargeTextCellEditor"
	KindSelect     Kind = "agSelectCellEditor"
	KindRichSelect Kind = "agRichSelectCellEditor"
	KindInteger    Kind = "NumericEditor"
	KindFloat      Kind = "FloatEditor"
)

// Valid reports whether k names a known editor.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindLargeText, KindSelect, KindRichSelect, KindInteger, KindFloat:
		return true
	}
	return false
}

var (
	// ErrMalformedCommit is returned by GetValue when the accumulated text
	// cannot be parsed as the editor's numeric kind.
	ErrMalformedCommit = errors.New("malformed commit")

	// ErrUnknownEditor is returned by New for an unrecognized Kind.
	ErrUnknownEditor = errors.New("unknown editor")

	// ErrNoValues is returned when a select editor is configured without values.
	ErrNoValues = errors.New("select editor requires values")
)

// InitParams is what the host hands to Init.
type InitParams struct {
	// Value is the prior cell value. Nil means the cell is empty.
	Value any

	// CharPress is the keystroke that started the edit. Empty when editing
	// was started some other way (double click, Enter, F2).
	CharPress string
}

// Params holds the per-column editor configuration (cellEditorParams).
type Params struct {
	Values     []string `json:"values,omitempty"`
	CellHeight int      `json:"cellHeight,omitempty"`
	MaxLength  int      `json:"maxLength,omitempty"`
	Rows       int      `json:"rows,omitempty"`
	Cols       int      `json:"cols,omitempty"`
}

// Editor is the cell editor contract.
type Editor interface {
	Kind() Kind
	Init(p InitParams)
	AfterGuiAttached()
	IsCancelBeforeStart() bool
	HandleKey(key string) KeyResult
	GetValue() (string, error)
	IsPopup() bool
	View() View
}

// KeyResult describes what happened to a keystroke.
type KeyResult struct {
	// Suppressed means the default action was prevented: the character was
	// not inserted into the field.
	Suppressed bool `json:"suppressed"`

	// Propagate means the event continues up to the host (cursor navigation).
	Propagate bool `json:"propagate"`

	// Refocus means the editor forced focus back to its input.
	Refocus bool `json:"refocus"`
}

// View is a read-only snapshot of an editor for rendering.
type View struct {
	Kind     Kind     `json:"kind"`
	Text     string   `json:"text"`
	Cursor   int      `json:"cursor"`
	Focused  bool     `json:"focused"`
	Popup    bool     `json:"popup"`
	Values   []string `json:"values,omitempty"`
	Selected int      `json:"selected"`
	Search   string   `json:"search,omitempty"`
}

// New builds an editor of the given kind.
func New(kind Kind, p Params) (Editor, error) {
	switch kind {
	case KindText, "":
		return NewText(), nil
	case KindLargeText:
		return NewLargeText(p), nil
	case KindSelect:
		return NewSelect(p.Values)
	case KindRichSelect:
		return NewRichSelect(p.Values, p.CellHeight)
	case KindInteger:
		return NewNumeric(Integer), nil
	case KindFloat:
		return NewNumeric(Float), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEditor, kind)
}

// FormatValue renders a cell value the way it appears in an input field.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
