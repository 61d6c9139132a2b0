// Package templates renders the demo page and its fragments as templ
// components.
package templates

// Column is one grid header.
type Column struct {
	Field  string
	Header string
	Editor string
	Popup  bool
}

// Cell is one rendered grid cell.
type Cell struct {
	Text     string
	Editable bool
	Changed  bool
}

// Class lists the CSS classes of the cell.
func (c Cell) Class() string {
	class := "cell"
	if c.Editable {
		class += " editable"
	}
	if c.Changed {
		class += " changed"
	}
	return class
}

// GridView is everything needed to draw one grid.
type GridView struct {
	Key     string
	Title   string
	Intro   string
	Columns []Column
	Rows    [][]Cell
	Flash   bool
}

// Field returns the field of column j, or "" past the last column.
func (g GridView) Field(j int) string {
	if j < 0 || j >= len(g.Columns) {
		return ""
	}
	return g.Columns[j].Field
}

// Snippet is a titled code block shown next to a grid.
type Snippet struct {
	Title string
	Code  string
}

// PageParams feeds the demo page.
type PageParams struct {
	Title    string
	Static   GridView
	Provided GridView
	Custom   GridView
	Basic    []Snippet
	Editors  []Snippet
	DataOut  string
}
