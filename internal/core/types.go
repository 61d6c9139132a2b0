package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/celleditors/internal/editor"
)

// GridKey identifies one of the hosted grids.
type GridKey string

const (
	// GridBasic uses only the provided editors.
	GridBasic GridKey = "basic"

	// GridCustom adds the numeric editors and flashes changed cells.
	GridCustom GridKey = "custom"
)

// Grids lists the hosted grids in display order.
func Grids() []GridKey {
	return []GridKey{GridBasic, GridCustom}
}

// ParseGridKey validates a grid name from a request.
func ParseGridKey(s string) (GridKey, error) {
	for _, g := range Grids() {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGrid, s)
}

var (
	ErrUnknownGrid     = errors.New("unknown grid")
	ErrSessionNotFound = errors.New("edit session not found")
	ErrCellBusy        = errors.New("cell is already being edited")
)

// CellRef addresses one cell of a grid.
type CellRef struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
}

// StartEditRequest asks the host to open an editor on a cell.
type StartEditRequest struct {
	Grid      GridKey `json:"grid"`
	Row       int     `json:"row"`
	Column    string  `json:"column"`
	CharPress string  `json:"charPress,omitempty"`
}

// SessionView is what callers see of an edit session. A session cancelled
// before start has no ID: it was never registered.
type SessionView struct {
	ID               string       `json:"id,omitempty"`
	Grid             GridKey      `json:"grid"`
	Row              int          `json:"row"`
	Column           string       `json:"column"`
	State            editor.State `json:"state"`
	Cancelled        bool         `json:"cancelled"`
	InitialCharacter string       `json:"initialCharacter,omitempty"`
	Popup            bool         `json:"popup"`
	Editor           editor.View  `json:"editor"`
}

// KeyResponse is the outcome of one keystroke.
type KeyResponse struct {
	Result  editor.KeyResult `json:"result"`
	Session SessionView      `json:"session"`
}

// CommitResult describes a committed edit.
type CommitResult struct {
	Grid     GridKey `json:"grid"`
	Row      int     `json:"row"`
	Column   string  `json:"column"`
	OldValue string  `json:"oldValue"`
	NewValue string  `json:"newValue"`
	Flash    bool    `json:"flash"`
}

// HistoryEntry records one committed edit.
type HistoryEntry struct {
	Grid      GridKey   `json:"grid"`
	Row       int       `json:"row"`
	Column    string    `json:"column"`
	OldValue  string    `json:"oldValue"`
	NewValue  string    `json:"newValue"`
	EditedAt  time.Time `json:"editedAt"`
	IPAddress string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
}
