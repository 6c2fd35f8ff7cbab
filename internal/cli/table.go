package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describe una columna de la tabla de perfiles.
type column struct {
	Header string
	Align  text.Align
	// WidthMax > 0 corta el contenido (nombres o etiquetas largas).
	WidthMax int
}

// renderTable usa cabeceras tal cual (sin mayúsculas forzadas) y un pie
// opcional que ocupa la primera columna.
func renderTable(cols []column, rows [][]string, footer string) string {
	if len(cols) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault

	header := make(table.Row, len(cols))
	configs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		header[i] = c.Header
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       c.Align,
			AlignHeader: text.AlignLeft,
			WidthMax:    c.WidthMax,
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(cols))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	if footer != "" {
		f := make(table.Row, len(cols))
		f[0] = footer
		tw.AppendFooter(f)
	}

	return tw.Render()
}
