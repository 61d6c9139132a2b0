// Package tui is a terminal client for the hosted grids. It drives the same
// core.Service edit sessions as the web page.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/celleditors/internal/core"
	"github.com/JonMunkholm/celleditors/internal/dataset"
	"github.com/JonMunkholm/celleditors/internal/editor"
	"github.com/JonMunkholm/celleditors/internal/grid"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Model is the bubbletea model of the grid client.
type Model struct {
	ctx      context.Context
	svc      *core.Service
	grid     core.GridKey
	row, col int
	session  *core.SessionView

	// committing is set while a commit command is in flight; keys for the
	// session are dropped until its result arrives.
	committing bool

	root       *Menu
	menu       *Menu
	menuCursor int

	status    string
	statusErr bool
	width     int
	height    int
	exportDir string
}

// New returns a model showing the basic grid. Exports are written to
// exportDir.
func New(ctx context.Context, svc *core.Service, exportDir string) *Model {
	m := &Model{
		ctx:       ctx,
		svc:       svc,
		grid:      core.GridBasic,
		exportDir: exportDir,
		width:     120,
		height:    24,
		status:    "Type to edit a cell, Enter or F2 edits the current value.",
	}
	m.root = buildMenuTree(m)
	return m
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case DoneMsg:
		m.setStatus(string(msg))
		return m, nil

	case ErrMsg:
		m.setError(msg.Err)
		return m, nil

	case resetMsg:
		m.session = nil
		m.committing = false
		m.setStatus("grids reset")
		return m, nil

	case committedMsg:
		m.session = nil
		m.committing = false
		m.setStatus(fmt.Sprintf("%s row %d: %q -> %q", msg.res.Column, msg.res.Row+1, msg.res.OldValue, msg.res.NewValue))
		return m, nil

	case commitFailedMsg:
		m.committing = false
		m.setError(msg.err)
		// A malformed value closes the session; a store failure keeps it
		// so Enter retries.
		if _, err := m.svc.Session(msg.id); err != nil {
			m.session = nil
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.menu != nil {
			return m, m.updateMenu(msg)
		}
		if m.session != nil {
			return m, m.updateEditing(msg)
		}
		return m, m.updateBrowsing(msg)
	}
	return m, nil
}

func (m *Model) updateBrowsing(msg tea.KeyMsg) tea.Cmd {
	cols := m.columns()
	switch msg.Type {
	case tea.KeyUp:
		m.row = max(m.row-1, 0)
	case tea.KeyDown:
		m.row = min(m.row+1, m.rowCount()-1)
	case tea.KeyLeft:
		m.col = max(m.col-1, 0)
	case tea.KeyRight:
		m.col = min(m.col+1, len(cols)-1)
	case tea.KeyTab:
		m.switchGrid(m.nextGrid())
	case tea.KeyF10, tea.KeyEsc:
		m.menu = m.root
		m.menuCursor = 0
	case tea.KeyEnter, tea.KeyF2:
		m.startEdit("")
	case tea.KeySpace:
		m.startEdit(" ")
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			m.startEdit(string(msg.Runes))
		}
	}
	return nil
}

func (m *Model) updateEditing(msg tea.KeyMsg) tea.Cmd {
	if m.committing {
		return nil
	}
	switch msg.Type {
	case tea.KeyEnter:
		m.committing = true
		return m.commit()
	case tea.KeyEsc:
		id := m.session.ID
		m.session = nil
		if err := m.svc.Cancel(m.ctx, id); err != nil {
			m.setError(err)
		} else {
			m.setStatus("edit cancelled")
		}
		return nil
	}

	key := editorKey(msg)
	if key == "" {
		return nil
	}
	res, err := m.svc.Key(m.ctx, m.session.ID, key)
	if err != nil {
		m.session = nil
		m.setError(err)
		return nil
	}
	m.session = &res.Session
	if res.Result.Suppressed && !res.Result.Propagate {
		m.setStatus(fmt.Sprintf("%q ignored by %s", key, res.Session.Editor.Kind))
	}
	return nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyUp:
		m.menuCursor = max(m.menuCursor-1, 0)
	case tea.KeyDown:
		m.menuCursor = min(m.menuCursor+1, len(m.menu.Items)-1)
	case tea.KeyEsc, tea.KeyF10:
		if m.menu.Parent != nil {
			m.menu = m.menu.Parent
		} else {
			m.menu = nil
		}
		m.menuCursor = 0
	case tea.KeyEnter:
		item := m.menu.Items[m.menuCursor]
		m.menuCursor = 0
		if item.Label == "Back" || item.Submenu != nil {
			m.menu = item.Submenu
			return nil
		}
		m.menu = nil
		if item.Action != nil {
			return item.Action()
		}
	}
	return nil
}

// editorKey maps a terminal key to the editor's DOM-style key name. Ctrl+J
// stands in for Shift+Enter, which terminals do not report.
func editorKey(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyLeft:
		return editor.KeyArrowLeft
	case tea.KeyRight:
		return editor.KeyArrowRight
	case tea.KeyUp:
		return editor.KeyArrowUp
	case tea.KeyDown:
		return editor.KeyArrowDown
	case tea.KeyBackspace:
		return editor.KeyBackspace
	case tea.KeyDelete:
		return editor.KeyDelete
	case tea.KeyHome:
		return editor.KeyHome
	case tea.KeyEnd:
		return editor.KeyEnd
	case tea.KeyTab:
		return editor.KeyTab
	case tea.KeyCtrlJ:
		return editor.KeyShiftEnter
	case tea.KeySpace:
		return " "
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return string(msg.Runes)
		}
	}
	return ""
}

func (m *Model) startEdit(charPress string) {
	field := m.columns()[m.col].Field
	view, err := m.svc.StartEdit(m.ctx, core.StartEditRequest{
		Grid:      m.grid,
		Row:       m.row,
		Column:    field,
		CharPress: charPress,
	})
	if err != nil {
		m.setError(err)
		return
	}
	if view.Cancelled {
		m.setStatus(fmt.Sprintf("%q does not start the %s", charPress, view.Editor.Kind))
		return
	}
	if view, err = m.svc.Attach(m.ctx, view.ID); err != nil {
		m.setError(err)
		return
	}
	m.session = &view
	m.setStatus("editing " + field + ": Enter commits, Esc cancels")
}

func (m *Model) commit() tea.Cmd {
	ctx, svc, id := m.ctx, m.svc, m.session.ID
	return func() tea.Msg {
		res, err := svc.Commit(ctx, id)
		if err != nil {
			return commitFailedMsg{id: id, err: err}
		}
		return committedMsg{res: res}
	}
}

func (m *Model) switchGrid(key core.GridKey) {
	if m.session != nil {
		_ = m.svc.Cancel(m.ctx, m.session.ID)
		m.session = nil
	}
	m.grid = key
	m.col = min(m.col, len(m.columns())-1)
	m.setStatus("grid: " + string(key))
}

func (m *Model) nextGrid() core.GridKey {
	grids := core.Grids()
	for i, g := range grids {
		if g == m.grid {
			return grids[(i+1)%len(grids)]
		}
	}
	return grids[0]
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(err error) {
	m.status, m.statusErr = core.FormatUserError(err), true
}

func (m *Model) options() grid.Options {
	opts, _ := m.svc.Options(m.grid)
	return opts
}

func (m *Model) columns() []grid.ColumnDef {
	return m.options().Columns()
}

func (m *Model) rowCount() int {
	d, err := m.svc.Data(m.grid)
	if err != nil {
		return 0
	}
	return d.Len()
}

/* ----------------------------------------
	VIEW
---------------------------------------- */

func (m *Model) View() string {
	opts := m.options()
	cols := opts.Columns()
	data, err := m.svc.Data(m.grid)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	changed := map[core.CellRef]bool{}
	if opts.FlashChangedCells() {
		refs, _ := m.svc.Changed(m.grid)
		for _, r := range refs {
			changed[r] = true
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Cell Editors · " + string(m.grid) + " grid"))
	b.WriteString("\n\n")

	headers := make([]string, len(cols))
	for j, c := range cols {
		headers[j] = headerStyle.Render(fit(c.Field, widthOf(c.Field)))
	}
	b.WriteString(strings.Join(headers, separator))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", m.tableWidth(cols)))
	b.WriteString("\n")

	for i := 0; i < data.Len(); i++ {
		cells := make([]string, len(cols))
		for j, c := range cols {
			v, _ := data.Get(i, c.Field)
			text := fit(dataset.Format(v), widthOf(c.Field))
			ref := core.CellRef{Row: i, Column: c.Field}
			editing := m.session != nil && m.session.Row == i && m.session.Column == c.Field

			switch {
			case editing && !m.session.Popup:
				text = editingStyle.Render(fit(withCursor(m.session.Editor), widthOf(c.Field)))
			case editing:
				text = editingStyle.Render(text)
			case i == m.row && j == m.col:
				text = cursorStyle.Render(text)
			case changed[ref]:
				text = changedStyle.Render(text)
			case !c.Editable:
				text = readOnlyStyle.Render(text)
			}
			cells[j] = text
		}
		b.WriteString(strings.Join(cells, separator))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.statusErr {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("arrows move · type/Enter/F2 edit · Enter commit · Esc cancel · Tab grid · F10 menu · Ctrl+C quit"))

	screen := b.String()
	if m.session != nil && m.session.Popup {
		x := m.columnX(cols, m.session.Column)
		y := gridTop + m.session.Row + 1
		screen = overlayAt(screen, renderPopup(m.session.Editor), x, y, m.width)
	}
	if m.menu != nil {
		screen = centerOverlay(screen, m.renderMenu(), m.width, m.height)
	}
	return screen
}

func (m *Model) tableWidth(cols []grid.ColumnDef) int {
	w := 0
	for j, c := range cols {
		if j > 0 {
			w += ansi.StringWidth(separator)
		}
		w += widthOf(c.Field)
	}
	return w
}

func (m *Model) columnX(cols []grid.ColumnDef, field string) int {
	x := 0
	for _, c := range cols {
		if c.Field == field {
			return x
		}
		x += widthOf(c.Field) + ansi.StringWidth(separator)
	}
	return x
}

// withCursor draws the text field with a bar at the cursor.
func withCursor(v editor.View) string {
	r := []rune(v.Text)
	c := min(max(v.Cursor, 0), len(r))
	return string(r[:c]) + "▏" + string(r[c:])
}

func renderPopup(v editor.View) string {
	if len(v.Values) > 0 {
		lines := make([]string, len(v.Values))
		for i, val := range v.Values {
			if i == v.Selected {
				lines[i] = optionActiveStyle.Render(val)
			} else {
				lines[i] = val
			}
		}
		if v.Search != "" {
			lines = append(lines, helpStyle.Render("search: "+v.Search))
		}
		return popupStyle.Render(strings.Join(lines, "\n"))
	}
	body := withCursor(v)
	if v.Kind == editor.KindLargeText {
		body = lipgloss.NewStyle().Width(48).Render(body)
	}
	return popupStyle.Render(body)
}

func (m *Model) renderMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.menu.Title))
	for i, item := range m.menu.Items {
		b.WriteString("\n")
		if i == m.menuCursor {
			b.WriteString(optionActiveStyle.Render("> " + item.Label))
		} else {
			b.WriteString("  " + item.Label)
		}
	}
	return menuStyle.Render(b.String())
}
