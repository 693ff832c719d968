package pipeline

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"trackprep/internal/textutil"
)

// RenderSummary writes a per-file table and totals for result to w.
func RenderSummary(w io.Writer, result Result) {
	if w == nil {
		return
	}

	if len(result.Transcode.Outcomes) > 0 {
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.SetStyle(table.StyleRounded)
		tw.AppendHeader(table.Row{"#", "Source", "Size", "Output", "Result"})
		for i, outcome := range result.Transcode.Outcomes {
			output, status := "-", "failed"
			if outcome.Unit != nil {
				output = filepath.Base(outcome.Unit.Output)
				status = "ok"
			}
			tw.AppendRow(table.Row{
				i + 1,
				textutil.DisplayName(outcome.Source.Path),
				humanize.Bytes(uint64(outcome.Source.Size)),
				output,
				status,
			})
		}
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, Align: text.AlignRight},
			{Number: 3, Align: text.AlignRight},
		})
		tw.Render()
	}

	fmt.Fprintf(w, "Total tracks processed: %d of %d", result.Successes(), result.Eligible())
	if result.Ingest.ManifestFound && len(result.Ingest.Outcomes) > 0 {
		fmt.Fprintf(w, " (URLs: %d downloaded, %d failed)", result.Ingest.Succeeded(), result.Ingest.Failed())
	}
	fmt.Fprintf(w, " [%s]\n", result.Status)
}
