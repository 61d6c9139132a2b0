package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/celleditors/internal/core"
	tea "github.com/charmbracelet/bubbletea"
)

// ResetTimeout bounds the store reset run from the menu.
const ResetTimeout = 30 * time.Second

/* ----------------------------------------
	MENU TREE
---------------------------------------- */

type MenuItem struct {
	Label   string
	Submenu *Menu
	Action  func() tea.Cmd
}

type Menu struct {
	Title  string
	Items  []MenuItem
	Parent *Menu
}

// linkParents wires Back items and Parent pointers through the tree.
func linkParents(menu *Menu, parent *Menu) {
	menu.Parent = parent

	for i := range menu.Items {
		item := &menu.Items[i]

		if item.Label == "Back" {
			item.Submenu = parent
			continue
		}

		if item.Submenu != nil {
			linkParents(item.Submenu, menu)
		}
	}
}

func buildMenuTree(m *Model) *Menu {
	grids := &Menu{Title: "Switch grid"}
	for _, key := range core.Grids() {
		key := key
		grids.Items = append(grids.Items, MenuItem{
			Label: "Grid: " + string(key),
			Action: func() tea.Cmd {
				m.switchGrid(key)
				return nil
			},
		})
	}
	grids.Items = append(grids.Items, MenuItem{Label: "Back"})

	root := &Menu{
		Title: "Menu",
		Items: []MenuItem{
			{Label: "Switch grid ->", Submenu: grids},
			{Label: "Export CSV", Action: func() tea.Cmd { return exportCSV(m.svc, m.grid, m.exportDir) }},
			{Label: "Reset grids", Action: func() tea.Cmd { return resetAll(m.ctx, m.svc) }},
			{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
		},
	}

	linkParents(root, nil)

	return root
}

/* ----------------------------------------
	ACTIONS
---------------------------------------- */

// resetAll clears stored edits and restores both grids.
func resetAll(ctx context.Context, svc *core.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, ResetTimeout)
		defer cancel()

		if err := svc.Reset(ctx); err != nil {
			return ErrMsg{Err: err}
		}
		return resetMsg{}
	}
}

// exportCSV writes the grid's rows to <grid>_<timestamp>.csv in dir.
func exportCSV(svc *core.Service, key core.GridKey, dir string) tea.Cmd {
	return func() tea.Msg {
		data, err := svc.Data(key)
		if err != nil {
			return ErrMsg{Err: err}
		}
		name := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", key, time.Now().Format("20060102_150405")))
		f, err := os.Create(name)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("create export: %w", err)}
		}
		if err := data.WriteCSV(f); err != nil {
			f.Close()
			return ErrMsg{Err: fmt.Errorf("write export: %w", err)}
		}
		if err := f.Close(); err != nil {
			return ErrMsg{Err: fmt.Errorf("close export: %w", err)}
		}
		return DoneMsg("exported " + name)
	}
}
