package main

import (
	"io"
	"os"

	"github.com/olekukonko/tablewriter"

	"matrix-render/internal/render"
)

func kindsMain() {
	writeKinds(os.Stdout)
}

// writeKinds prints the renderer's dispatch table.
func writeKinds(out io.Writer) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Family", "Kind", "Line"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	for _, l := range render.Layouts() {
		table.Append([]string{l.Family, l.Kind, l.Format})
	}
	table.Render()
}
