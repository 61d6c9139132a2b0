package grid

import (
	"github.com/JonMunkholm/celleditors/internal/dataset"
	"github.com/JonMunkholm/celleditors/internal/editor"
)

// providedEditors configures the built-in editors on the demo columns.
// Integer and float columns keep the default text editor.
func providedEditors(d *dataset.Dataset) *Builder {
	return FromDataset(d).
		ConfigureColumns(d.ColumnNames(), Editable(true)).
		ConfigureColumn(dataset.ColLargeText,
			MaxWidth(250),
			CellEditor(editor.KindLargeText),
			Popup(true),
		).
		ConfigureColumn(dataset.ColSelect,
			CellEditor(editor.KindSelect),
			Values(dataset.Languages...),
			Popup(true),
		).
		ConfigureColumn(dataset.ColRichSelect,
			CellEditor(editor.KindRichSelect),
			Values(dataset.Languages...),
			CellHeight(20),
			Popup(true),
		)
}

// Basic returns the grid that only uses the provided editors.
func Basic(d *dataset.Dataset) Options {
	return providedEditors(d).Build()
}

// Custom adds the numeric editors and keeps edited cells highlighted.
func Custom(d *dataset.Dataset) Options {
	return providedEditors(d).
		ConfigureColumn(dataset.ColInteger,
			Editable(true),
			CellEditor(editor.KindInteger),
			Popup(true),
		).
		ConfigureColumn(dataset.ColFloats,
			Editable(true),
			CellEditor(editor.KindFloat),
			Popup(true),
		).
		ConfigureGridOptions(FlashChangedCells()).
		Build()
}
