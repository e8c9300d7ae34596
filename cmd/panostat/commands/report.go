package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sumidera/panostat/internal/config"
	"github.com/sumidera/panostat/internal/explore"
	"github.com/sumidera/panostat/internal/stats"
)

// renderText writes the human-readable corpus report: a header block
// followed by the three frequency tables. Image-status labels are few,
// so that table is never truncated; tooth IDs and conditions honor the
// configured top-K.
func renderText(w io.Writer, report *explore.Report, cfg config.ReportConfig) {
	header := color.New(color.FgCyan, color.Bold)
	if !cfg.Color {
		header.DisableColor()
	}

	fmt.Fprintln(w, header.Sprint("=== Corpus statistics ==="))
	fmt.Fprintf(w, "Root           : %s\n", report.Root)
	fmt.Fprintf(w, "Images         : %s\n", humanize.Comma(int64(report.Images)))
	fmt.Fprintf(w, "Bounding boxes : %s\n", humanize.Comma(int64(report.Boxes)))

	bpi := report.BoxesPerImage
	fmt.Fprintf(w, "Boxes / image  : mean %.2f  median %s  min %d  max %d\n",
		bpi.Mean, humanize.Ftoa(bpi.Median), bpi.Min, bpi.Max)

	renderCounter(w, header, "Image-level status", report.ImageStatus, 0)
	renderCounter(w, header, fmt.Sprintf("Top %d tooth IDs", cfg.TopK), report.ToothIDs, cfg.TopK)
	renderCounter(w, header, fmt.Sprintf("Top %d conditions", cfg.TopK), report.Conditions, cfg.TopK)
}

// renderCounter writes one frequency table, most common first. topK <= 0
// means all rows.
func renderCounter(w io.Writer, header *color.Color, title string, counter stats.Counter, topK int) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, header.Sprintf("--- %s ---", title))

	if len(counter) == 0 {
		fmt.Fprintln(w, "(none)")

		return
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false

	tbl.AppendHeader(table.Row{"Key", "Count"})

	for _, entry := range counter.MostCommon(topK) {
		tbl.AppendRow(table.Row{entry.Key, humanize.Comma(int64(entry.Count))})
	}

	tbl.Render()
}
