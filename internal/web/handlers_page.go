package web

import (
	"encoding/json"
	"net/http"

	"github.com/JonMunkholm/celleditors/internal/core"
	"github.com/JonMunkholm/celleditors/internal/dataset"
	"github.com/JonMunkholm/celleditors/internal/grid"
	"github.com/JonMunkholm/celleditors/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

const pageTitle = "Cell Editors"

var gridIntro = map[core.GridKey][2]string{
	core.GridBasic: {
		"Provided cell editors",
		"Text, large text, select and rich select editors. Click a cell and start typing, or press Enter to edit the current value.",
	},
	core.GridCustom: {
		"Custom cell editors",
		"The integer and floats columns use numeric editors: non-digit keys are ignored, a letter typed on a closed cell does not open the editor, and floats are stored with two decimals.",
	},
}

const providedSnippet = `grid.FromDataset(d).
	ConfigureColumns(d.ColumnNames(), grid.Editable(true)).
	ConfigureColumn("large_text",
		grid.MaxWidth(250),
		grid.CellEditor(editor.KindLargeText),
		grid.Popup(true),
	).
	ConfigureColumn("select",
		grid.CellEditor(editor.KindSelect),
		grid.Values("Latin", "English"),
		grid.Popup(true),
	).
	ConfigureColumn("rich_select",
		grid.CellEditor(editor.KindRichSelect),
		grid.Values("Latin", "English"),
		grid.CellHeight(20),
		grid.Popup(true),
	).
	Build()`

const integerSnippet = `// Integer editor: digits only, committed as typed.
ConfigureColumn("integer",
	grid.Editable(true),
	grid.CellEditor(editor.KindInteger),
	grid.Popup(true),
)`

const floatSnippet = `// Float editor: digits and ".", committed with two decimals.
ConfigureColumn("floats",
	grid.Editable(true),
	grid.CellEditor(editor.KindFloat),
	grid.Popup(true),
)`

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.service.ActiveSessions(),
	})
}

// handleIndex renders the demo page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	provided, err := s.gridView(core.GridBasic)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	custom, err := s.gridView(core.GridCustom)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	basicOpts, _ := s.service.Options(core.GridBasic)
	optsJSON, _ := json.MarshalIndent(basicOpts, "", "  ")

	dataOut, err := s.dataOut(core.GridCustom)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	params := templates.PageParams{
		Title:    pageTitle,
		Static:   staticView(dataset.Demo()),
		Provided: provided,
		Custom:   custom,
		Basic: []templates.Snippet{
			{Title: "Go", Code: providedSnippet},
			{Title: "gridOptions", Code: string(optsJSON)},
		},
		Editors: []templates.Snippet{
			{Title: "Integer editor", Code: integerSnippet},
			{Title: "Float editor", Code: floatSnippet},
		},
		DataOut: dataOut,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Page(params).Render(r.Context(), w)
}

// handleGridFragment renders one grid for in-place refresh after a commit.
func (s *Server) handleGridFragment(w http.ResponseWriter, r *http.Request) {
	key, err := core.ParseGridKey(chi.URLParam(r, "grid"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	view, err := s.gridView(key)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Grid(view).Render(r.Context(), w)
}

// gridView snapshots a hosted grid for rendering. Changed cells are only
// marked when the grid flashes them.
func (s *Server) gridView(key core.GridKey) (templates.GridView, error) {
	opts, err := s.service.Options(key)
	if err != nil {
		return templates.GridView{}, err
	}
	data, err := s.service.Data(key)
	if err != nil {
		return templates.GridView{}, err
	}
	changed := make(map[core.CellRef]bool)
	if opts.FlashChangedCells() {
		refs, err := s.service.Changed(key)
		if err != nil {
			return templates.GridView{}, err
		}
		for _, ref := range refs {
			changed[ref] = true
		}
	}

	view := templates.GridView{
		Key:   string(key),
		Title: gridIntro[key][0],
		Intro: gridIntro[key][1],
		Flash: opts.FlashChangedCells(),
	}
	cols := opts.Columns()
	for _, c := range cols {
		view.Columns = append(view.Columns, columnOf(c))
	}
	for i := 0; i < data.Len(); i++ {
		row := make([]templates.Cell, len(cols))
		for j, c := range cols {
			v, _ := data.Get(i, c.Field)
			row[j] = templates.Cell{
				Text:     dataset.Format(v),
				Editable: c.Editable,
				Changed:  changed[core.CellRef{Row: i, Column: c.Field}],
			}
		}
		view.Rows = append(view.Rows, row)
	}
	return view, nil
}

func columnOf(c grid.ColumnDef) templates.Column {
	header := c.HeaderName
	if header == "" {
		header = c.Field
	}
	return templates.Column{
		Field:  c.Field,
		Header: header,
		Editor: string(c.Editor()),
		Popup:  c.CellEditorPopup,
	}
}

// staticView renders a dataset with no editing at all.
func staticView(d *dataset.Dataset) templates.GridView {
	view := templates.GridView{Key: "static"}
	for _, name := range d.ColumnNames() {
		view.Columns = append(view.Columns, templates.Column{Field: name, Header: name})
	}
	for i := 0; i < d.Len(); i++ {
		values, _ := d.Row(i)
		row := make([]templates.Cell, len(values))
		for j, v := range values {
			row[j] = templates.Cell{Text: dataset.Format(v)}
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}

// dataOut is the indented JSON of a grid's rows.
func (s *Server) dataOut(key core.GridKey) (string, error) {
	data, err := s.service.Data(key)
	if err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(rowObjects(data), "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// rowObjects converts rows to column-keyed objects.
func rowObjects(d *dataset.Dataset) []map[string]any {
	names := d.ColumnNames()
	out := make([]map[string]any, 0, d.Len())
	for i := 0; i < d.Len(); i++ {
		values, _ := d.Row(i)
		obj := make(map[string]any, len(names))
		for j, name := range names {
			obj[name] = values[j]
		}
		out = append(out, obj)
	}
	return out
}
