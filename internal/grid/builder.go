package grid

import (
	"github.com/JonMunkholm/celleditors/internal/dataset"
	"github.com/JonMunkholm/celleditors/internal/editor"
)

// ColumnOption configures a column.
type ColumnOption func(*ColumnDef)

// GridOption configures grid-wide behaviour.
type GridOption func(*Options)

// Editable sets whether cells in the column can be edited.
func Editable(v bool) ColumnOption {
	return func(c *ColumnDef) { c.Editable = v }
}

// CellEditor selects the editor for the column.
func CellEditor(k editor.Kind) ColumnOption {
	return func(c *ColumnDef) { c.CellEditor = k }
}

// Popup shows the column's editor as an overlay.
func Popup(v bool) ColumnOption {
	return func(c *ColumnDef) { c.CellEditorPopup = v }
}

// Values sets the choices of a select editor.
func Values(values ...string) ColumnOption {
	return func(c *ColumnDef) { c.CellEditorParams.Values = append([]string(nil), values...) }
}

// CellHeight sets the rich select row height.
func CellHeight(px int) ColumnOption {
	return func(c *ColumnDef) { c.CellEditorParams.CellHeight = px }
}

// MaxLength limits the large text editor input.
func MaxLength(n int) ColumnOption {
	return func(c *ColumnDef) { c.CellEditorParams.MaxLength = n }
}

// MaxWidth caps the column width in pixels.
func MaxWidth(px int) ColumnOption {
	return func(c *ColumnDef) { c.MaxWidth = px }
}

// HeaderName overrides the column header.
func HeaderName(name string) ColumnOption {
	return func(c *ColumnDef) { c.HeaderName = name }
}

// FlashChangedCells keeps edited cells highlighted.
func FlashChangedCells() GridOption {
	return func(o *Options) { o.flash = true }
}

// Builder assembles Options.
type Builder struct {
	opts Options
}

// FromDataset starts a builder with one read-only column per dataset column.
func FromDataset(d *dataset.Dataset) *Builder {
	b := &Builder{opts: Options{index: make(map[string]int)}}
	for _, c := range d.Columns() {
		b.opts.index[c.Name] = len(b.opts.columns)
		b.opts.columns = append(b.opts.columns, ColumnDef{Field: c.Name, HeaderName: c.Name})
	}
	return b
}

// ConfigureColumns applies opts to each named column. Unknown names are
// ignored.
func (b *Builder) ConfigureColumns(fields []string, opts ...ColumnOption) *Builder {
	for _, f := range fields {
		if _, ok := b.opts.index[f]; !ok {
			continue
		}
		b.ConfigureColumn(f, opts...)
	}
	return b
}

// ConfigureColumn applies opts to one column, adding it if it does not exist.
func (b *Builder) ConfigureColumn(field string, opts ...ColumnOption) *Builder {
	i, ok := b.opts.index[field]
	if !ok {
		i = len(b.opts.columns)
		b.opts.index[field] = i
		b.opts.columns = append(b.opts.columns, ColumnDef{Field: field, HeaderName: field})
	}
	for _, opt := range opts {
		opt(&b.opts.columns[i])
	}
	return b
}

// ConfigureGridOptions applies grid-wide options.
func (b *Builder) ConfigureGridOptions(opts ...GridOption) *Builder {
	for _, opt := range opts {
		opt(&b.opts)
	}
	return b
}

// Build returns a snapshot of the configuration. Later builder calls do not
// affect it.
func (b *Builder) Build() Options {
	o := Options{
		columns: make([]ColumnDef, len(b.opts.columns)),
		index:   make(map[string]int, len(b.opts.index)),
		flash:   b.opts.flash,
	}
	for i, c := range b.opts.columns {
		o.columns[i] = c.clone()
	}
	for k, v := range b.opts.index {
		o.index[k] = v
	}
	return o
}
