package templates

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c interface {
	Render(context.Context, io.Writer) error
}) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestGrid_EscapesCellText(t *testing.T) {
	g := GridView{
		Key:     "custom",
		Flash:   true,
		Columns: []Column{{Field: "text", Header: "Text", Editor: "agTextCellEditor"}},
		Rows:    [][]Cell{{{Text: `<b>"hi"</b>`, Editable: true, Changed: true}}},
	}
	html := render(t, Grid(g))

	require.Contains(t, html, `<table class="grid" data-grid="custom" data-flash="true">`)
	require.Contains(t, html, `data-popup="false">Text</th>`)
	require.Contains(t, html, `class="cell editable changed" tabindex="0" data-row="0" data-column="text">`)
	require.Contains(t, html, "&lt;b&gt;&#34;hi&#34;&lt;/b&gt;")
	require.NotContains(t, html, "<b>")
}

func TestErrorAlert_OptionalParts(t *testing.T) {
	html := render(t, ErrorAlert("Grid not found", "", "GRD004"))
	require.Contains(t, html, "<strong>Grid not found</strong>")
	require.Contains(t, html, "Code: GRD004")
	require.NotContains(t, html, "<p>")

	html = render(t, ErrorAlert("x", "Try again", ""))
	require.Contains(t, html, "<p>Try again</p>")
	require.NotContains(t, html, "Code:")
}

func TestPage_IncludesGridsAndDataOut(t *testing.T) {
	html := render(t, Page(PageParams{
		Title:    "Cell Editors",
		Provided: GridView{Key: "basic", Title: "Provided"},
		Custom:   GridView{Key: "custom", Title: "Custom"},
		Basic:    []Snippet{{Title: "Go", Code: "a < b"}},
		DataOut:  `[{"floats":7.00}]`,
	}))

	require.Contains(t, html, "<h1>Cell Editors</h1>")
	require.Contains(t, html, `id="grid-basic"`)
	require.Contains(t, html, `id="grid-custom"`)
	require.Contains(t, html, "<pre><code>a &lt; b</code></pre>")
	require.Contains(t, html, `<pre id="data-out-json">[{&#34;floats&#34;:7.00}]</pre>`)
}
