package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"timelinegrid/internal/config"
	"timelinegrid/internal/records"
	"timelinegrid/timeline"
)

// app carries the global flags and the logger shared by all subcommands.
type app struct {
	debug      bool
	logFormat  string
	configPath string
	profile    string
	now        string

	logger *slog.Logger
}

// newRootCmd builds the command tree with its global flags.
func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "timelinegrid",
		Short: "Lay out briefings and tasks on a calendar-week timeline",
		Long: `timelinegrid projects records with a creation date, an optional deadline and a
status onto a grid of ISO calendar weeks around today.

It emits bar positions in percent of the visible window, overdue and stub flags,
and the records grouped into ordered swimlanes. Rendering is left to the consumer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), a.debug, a.logFormat)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&a.debug, "debug", false, "Enable debug mode for verbose output")
	flags.StringVar(&a.logFormat, "log-format", "text", "Log format: text or json")
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file (optional)")
	flags.StringVar(&a.profile, "profile", "", "Named profile from the configuration, e.g. briefings or tasks")
	flags.StringVar(&a.now, "now", "", "Reference date YYYY-MM-DD (default: today)")

	root.AddCommand(newLayoutCmd(a), newWeeksCmd(a))
	return root
}

// newLayoutCmd builds the layout subcommand.
func newLayoutCmd(a *app) *cobra.Command {
	var csvFile, format, outputFile string

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute the timeline layout for records in a CSV file",
		Example: `  timelinegrid layout --csv briefings.csv --profile briefings
  timelinegrid layout --csv tasks.csv --config timelinegrid.yaml --profile tasks --format yaml --output tasks.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if csvFile == "" {
				return fmt.Errorf("CSV file is required, use --csv to specify the file")
			}
			enc, err := encoderFor(format)
			if err != nil {
				return err
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			now, err := resolveNow(a.now)
			if err != nil {
				return err
			}

			reader := records.Reader{Columns: cfg.Columns, Logger: a.logger}
			recs, err := reader.ReadFile(csvFile)
			if err != nil {
				return err
			}
			a.logger.Debug("records loaded", "file", csvFile, "count", len(recs))

			layout, err := timeline.Compute(recs, now, cfg.Engine())
			if err != nil {
				return err
			}
			for _, p := range layout.Problems {
				a.logger.Warn("record skipped", "error", p)
			}

			if err := writeOutput(cmd.OutOrStdout(), outputFile, func(w io.Writer) error {
				return enc(w, layout)
			}); err != nil {
				return err
			}

			a.logger.Info("layout computed",
				"records", len(recs),
				"swimlanes", len(layout.Swimlanes),
				"bars", layout.BarCount(),
				"skipped", len(layout.SkippedRecordIDs),
				"weeks", len(layout.Weeks))
			return nil
		},
	}

	cmd.Flags().StringVar(&csvFile, "csv", "", "CSV file with records (required)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")
	cmd.Flags().StringVar(&outputFile, "output", "", "Output file (default: stdout)")
	return cmd
}

// newWeeksCmd builds the weeks subcommand.
func newWeeksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "weeks",
		Short: "Print the week grid of the visible window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			now, err := resolveNow(a.now)
			if err != nil {
				return err
			}

			window, err := timeline.NewWindow(now, cfg.Window.LookBackDays, cfg.Window.LookAheadDays)
			if err != nil {
				return err
			}
			weeks := timeline.BuildWeeks(window, now, cfg.Weeks.LabelPrefix)
			a.logger.Debug("week grid built", "start", window.Start, "end", window.End, "weeks", len(weeks))

			return writeWeeks(cmd.OutOrStdout(), window, weeks, timeline.PositionPercent(now, window))
		},
	}
}

// loadConfig reads the configuration file, applies the profile and validates
// the result before any records are read.
func (a *app) loadConfig() (config.Config, error) {
	file, err := config.Load(a.configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := file.Profile(a.profile)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	a.logger.Debug("configuration loaded",
		"path", a.configPath,
		"profile", a.profile,
		"look_back_days", cfg.Window.LookBackDays,
		"look_ahead_days", cfg.Window.LookAheadDays,
		"group_by", cfg.Grouping.GroupBy)
	return cfg, nil
}

// resolveNow samples the clock once and normalises it to local midnight,
// or parses an explicit reference date.
func resolveNow(s string) (time.Time, error) {
	if s == "" {
		return timeline.StartOfDay(time.Now()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now date %q: %w", s, err)
	}
	return t, nil
}

// newLogger creates the slog logger for the chosen format and level.
func newLogger(w io.Writer, debug bool, format string) (*slog.Logger, error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(format) {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (use text or json)", format)
	}
}

// writeOutput writes to path, or to stdout when path is empty.
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("error writing output file: %w", err)
	}
	return file.Close()
}
