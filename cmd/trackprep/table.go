package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"trackprep/internal/deps"
)

// renderDependencyTable lists each external binary with whether the run
// needs it and where it resolved.
func renderDependencyTable(statuses []deps.Status) string {
	if len(statuses) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Binary", "Required", "Available", "Command", "Purpose"})
	for _, dep := range statuses {
		command := dep.Command
		if !dep.Available {
			command = "-"
		}
		tw.AppendRow(table.Row{dep.Name, yesNo(!dep.Optional), yesNo(dep.Available), command, dep.Description})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignCenter},
		{Number: 3, Align: text.AlignCenter},
		{Number: 4, WidthMax: 48},
	})
	return tw.Render()
}
