package report

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// KV is a single labelled figure of a summary table.
type KV struct {
	Label string
	Value any
}

// WriteSummary renders a small two-column summary table.
func WriteSummary(w io.Writer, title string, rows []KV) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	for _, row := range rows {
		t.AppendRow(table.Row{row.Label, row.Value})
	}
	t.Render()
}
