// Package commands implements the panostat subcommands.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sumidera/panostat/internal/config"
	"github.com/sumidera/panostat/internal/explore"
	"github.com/sumidera/panostat/internal/progress"
)

// Flag names shared between registration and override detection.
const (
	flagTop       = "top"
	flagFormat    = "format"
	flagNoColor   = "no-color"
	flagRecursive = "recursive"
)

// StatsCommand holds the flags for the stats command.
type StatsCommand struct {
	configPath string
	output     string
	format     string
	topK       int
	recursive  bool
	noColor    bool
	verbose    bool
	quiet      bool
}

// NewStatsCommand creates and configures the stats command.
func NewStatsCommand() *cobra.Command {
	cmd := &StatsCommand{}

	cobraCmd := &cobra.Command{
		Use:   "stats [root]",
		Short: "Aggregate statistics over a labeled corpus",
		Long: `Aggregate box counts and tooth-id, condition and image-status
frequencies over every annotation in the corpus, in a single pass.
The root defaults to the current directory and must contain images/
and annotations/ subdirectories.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	// Add flags.
	cobraCmd.Flags().StringVarP(&cmd.configPath, "config", "c", "", "Config file (default: ./panostat.yaml)")
	cobraCmd.Flags().StringVarP(&cmd.output, "output", "o", "", "Output file (default: stdout)")
	cobraCmd.Flags().StringVarP(&cmd.format, flagFormat, "f", config.FormatText, "Output format: text, json or yaml")
	cobraCmd.Flags().IntVarP(&cmd.topK, flagTop, "t", 0, "Top-K rows per frequency table")
	cobraCmd.Flags().BoolVar(&cmd.recursive, flagRecursive, true, "Scan images/ recursively")
	cobraCmd.Flags().BoolVar(&cmd.noColor, flagNoColor, false, "Disable colored output")
	cobraCmd.Flags().BoolVarP(&cmd.verbose, "verbose", "v", false, "Debug logging")
	cobraCmd.Flags().BoolVarP(&cmd.quiet, "quiet", "q", false, "Suppress progress and non-error logging")

	return cobraCmd
}

// Run executes the stats command.
func (c *StatsCommand) Run(cmd *cobra.Command, args []string) error {
	cfg, cfgErr := c.loadConfig(cmd)
	if cfgErr != nil {
		return cfgErr
	}

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	report, descErr := explore.Describe(root, explore.Options{
		Recursive: cfg.Scan.Recursive,
		Progress:  c.newReporter(),
		Logger:    c.newLogger(cfg.Logging.Level),
	})
	if descErr != nil {
		return fmt.Errorf("describe corpus: %w", descErr)
	}

	writer, writerErr := c.outputWriter()
	if writerErr != nil {
		return writerErr
	}

	if writer != os.Stdout {
		defer writer.Close()
	}

	return writeReport(writer, report, cfg.Report)
}

// loadConfig loads the config file, then applies flag overrides and
// re-validates the result.
func (c *StatsCommand) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, loadErr := config.Load(c.configPath)
	if loadErr != nil {
		return nil, loadErr
	}

	flags := cmd.Flags()
	if flags.Changed(flagTop) {
		cfg.Report.TopK = c.topK
	}

	if flags.Changed(flagFormat) {
		cfg.Report.Format = c.format
	}

	if flags.Changed(flagRecursive) {
		cfg.Scan.Recursive = c.recursive
	}

	if c.noColor {
		cfg.Report.Color = false
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

// newReporter selects the progress collaborator: a terminal bar on
// stderr, or none when suppressed or redirected to a file.
func (c *StatsCommand) newReporter() progress.Reporter {
	if c.quiet {
		return progress.Nop{}
	}

	return &progress.Bar{W: os.Stderr, Label: "Scanning"}
}

// newLogger builds the stderr slog logger. --verbose forces debug,
// --quiet forces error-only.
func (c *StatsCommand) newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo

	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	if c.verbose {
		lvl = slog.LevelDebug
	}

	if c.quiet {
		lvl = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// outputWriter creates the output writer (stdout or file).
func (c *StatsCommand) outputWriter() (*os.File, error) {
	if c.output == "" {
		return os.Stdout, nil
	}

	file, createErr := os.Create(c.output)
	if createErr != nil {
		return nil, fmt.Errorf("create output file: %w", createErr)
	}

	return file, nil
}

// writeReport renders the report in the configured format.
func writeReport(w io.Writer, report *explore.Report, cfg config.ReportConfig) error {
	switch cfg.Format {
	case config.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(report)
	case config.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()

		return encoder.Encode(report)
	default:
		renderText(w, report, cfg)

		return nil
	}
}
