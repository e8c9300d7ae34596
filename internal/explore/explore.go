// Package explore is the query surface the presentation layer depends
// on: build the corpus index, stream every annotation record through the
// statistics accumulator, return the aggregated report.
package explore

import (
	"fmt"
	"log/slog"

	"github.com/sumidera/panostat/internal/dataset"
	"github.com/sumidera/panostat/internal/progress"
	"github.com/sumidera/panostat/internal/stats"
)

// Options configures a Describe pass.
type Options struct {
	// Recursive scans images/ recursively.
	Recursive bool

	// Progress receives per-record progress. Nil disables reporting.
	Progress progress.Reporter

	// Logger receives debug detail. Nil discards.
	Logger *slog.Logger
}

// Report is the aggregated description of one corpus.
type Report struct {
	Root          string `json:"root" yaml:"root"`
	stats.Summary `yaml:",inline"`
}

// Describe indexes the corpus at root and aggregates statistics over
// every annotation record in identifier order, one record at a time.
// Images are never loaded. Any lookup or parse failure aborts the pass
// and is returned unrecovered.
func Describe(root string, opts Options) (*Report, error) {
	reporter := opts.Progress
	if reporter == nil {
		reporter = progress.Nop{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ds, dsErr := dataset.New(root, dataset.Options{Recursive: opts.Recursive})
	if dsErr != nil {
		return nil, dsErr
	}

	logger.Debug("corpus indexed", "root", ds.Root(), "samples", ds.Len())

	acc := stats.New()

	reporter.Start(ds.Len())

	for ann, err := range ds.Annotations() {
		if err != nil {
			reporter.Done()

			return nil, err
		}

		acc.Update(ann)
		reporter.Add(1)
	}

	reporter.Done()

	summary, sumErr := acc.Summary()
	if sumErr != nil {
		return nil, fmt.Errorf("summarize corpus %s: %w", ds.Root(), sumErr)
	}

	logger.Debug("corpus aggregated", "images", summary.Images, "boxes", summary.Boxes)

	return &Report{Root: ds.Root(), Summary: summary}, nil
}
