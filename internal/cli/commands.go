package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/riordanpawley/workouttimer/internal/config"
	"github.com/riordanpawley/workouttimer/internal/domain"
	"github.com/riordanpawley/workouttimer/internal/services/transfer"
	"github.com/riordanpawley/workouttimer/internal/services/workouts"
	"github.com/riordanpawley/workouttimer/internal/store"
)

// Dependencies holds all the services needed for CLI commands
type Dependencies struct {
	Config  *config.Config
	Store   store.KeyValue
	Service *workouts.Service
	Logger  *slog.Logger

	logFile *os.File
}

// NewDependencies opens the configured store and builds the workout service
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	logger, logFile := newLogger(cfg.Log)

	kv, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Backend, err)
	}
	logger.Debug("store opened", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)

	repo := store.NewWorkoutRepository(kv)

	return &Dependencies{
		Config:  cfg,
		Store:   kv,
		Service: workouts.NewService(repo, logger),
		Logger:  logger,
		logFile: logFile,
	}, nil
}

// Close releases the store and the log file
func (d *Dependencies) Close() error {
	err := d.Store.Close()
	if d.logFile != nil {
		d.logFile.Close()
	}
	return err
}

// newLogger writes text logs to the configured file, since the TUI owns the
// terminal. An unwritable log file disables logging.
func newLogger(cfg config.LogConfig) (*slog.Logger, *os.File) {
	level, _ := config.ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err == nil {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			return slog.New(slog.NewTextHandler(f, opts)), f
		}
	}
	return slog.New(slog.NewTextHandler(io.Discard, opts)), nil
}

func newListCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved workouts",
		Args:    cobra.NoArgs,
		RunE: o.withDeps(true, func(cmd *cobra.Command, _ []string, deps *Dependencies) error {
			list := deps.Service.List()
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No workouts yet")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEXERCISES\tEST\tCOMPLETED")
			fmt.Fprintln(w, "--\t----\t---------\t---\t---------")
			for _, workout := range list {
				name := workout.DisplayName()
				if len(name) > 40 {
					name = name[:37] + "..."
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t~%d min\t%d\n",
					workout.ID,
					name,
					len(workout.Exercises),
					domain.RoundMinutes(domain.EstimateSeconds(workout.Exercises)),
					workout.CompletedSessions,
				)
			}
			return w.Flush()
		}),
	}
}

func newShowCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one workout as Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: o.withDeps(true, func(cmd *cobra.Command, args []string, deps *Dependencies) error {
			workout, err := deps.Service.Get(domain.WorkoutID(args[0]))
			if err != nil {
				return err
			}
			data, err := transfer.ExportMarkdown([]domain.Workout{workout}, time.Now())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}),
	}
}

func newImportCmd(o *globalOptions) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import workouts from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: o.withDeps(true, func(cmd *cobra.Command, args []string, deps *Dependencies) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			mode := workouts.ImportAppend
			if replace {
				mode = workouts.ImportReplace
			}

			n, err := deps.Service.Import(cmd.Context(), data, mode)
			if err != nil {
				var storeErr *domain.StoreError
				if errors.As(err, &storeErr) {
					return err
				}
				return errors.New(transfer.ImportErrorMessage(err))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", transfer.ImportedMessage(n))
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&replace, "replace", "r", false, "Replace all workouts instead of appending")
	return cmd
}

func newExportCmd(o *globalOptions) *cobra.Command {
	var (
		formatName string
		id         string
		output     string
	)

	cmd := &cobra.Command{
		Use:     "export",
		Aliases: []string{"x"},
		Short:   "Export workouts as JSON or Markdown",
		Args:    cobra.NoArgs,
		RunE: o.withDeps(true, func(cmd *cobra.Command, _ []string, deps *Dependencies) error {
			format, err := transfer.ParseFormat(formatName)
			if err != nil {
				return err
			}

			list := deps.Service.List()
			if id != "" {
				workout, err := deps.Service.Get(domain.WorkoutID(id))
				if err != nil {
					return err
				}
				list = []domain.Workout{workout}
			}

			now := time.Now()
			data, err := transfer.Export(list, format, now)
			if err != nil {
				return errors.New(transfer.ExportErrorMessage(err, format))
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if output == "" {
				output = transfer.Filename(format, now)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s → %s\n", transfer.ExportedMessage(len(list), format), output)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "json", "Export format: json or md")
	cmd.Flags().StringVar(&id, "id", "", "Export a single workout")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, or - for stdout (default workout-timer-pro-<date>.<format>)")
	return cmd
}

func newDeleteCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a workout",
		Args:    cobra.ExactArgs(1),
		RunE: o.withDeps(true, func(cmd *cobra.Command, args []string, deps *Dependencies) error {
			workout, err := deps.Service.Get(domain.WorkoutID(args[0]))
			if err != nil {
				return err
			}
			if err := deps.Service.Delete(cmd.Context(), workout.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %q\n", workout.DisplayName())
			return nil
		}),
	}
}

func newClearCmd(o *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every workout",
		Args:  cobra.NoArgs,
		RunE: o.withDeps(true, func(cmd *cobra.Command, _ []string, deps *Dependencies) error {
			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprint(out, "Are you sure you want to delete all workouts? This action cannot be undone. [y/N] ")
				if !confirmed(cmd.InOrStdin()) {
					fmt.Fprintln(out, "Cancelled")
					return nil
				}
			}

			if err := deps.Service.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ %s\n", transfer.ClearedMessage)
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func confirmed(in io.Reader) bool {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func newThemeCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light]",
		Short:     "Show or set the colour theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(domain.ThemeDark), string(domain.ThemeLight)},
		RunE: o.withDeps(true, func(cmd *cobra.Command, args []string, deps *Dependencies) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), deps.Service.Theme())
				return nil
			}

			theme, err := domain.ParseTheme(strings.ToLower(args[0]))
			if err != nil {
				return err
			}
			if err := deps.Service.SetTheme(cmd.Context(), theme); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Theme set to %s\n", theme)
			return nil
		}),
	}
}
