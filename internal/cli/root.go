// Package cli wires the workout timer's command tree: the TUI by default,
// plus scripted list, import, export, session and server commands.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/riordanpawley/workouttimer/internal/app"
	"github.com/riordanpawley/workouttimer/internal/config"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	configPath string
	backend    string
	dataPath   string
	logLevel   string
}

// NewRootCommand builds the workouttimer command tree
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "workouttimer",
		Short: "Build interval workouts and run them against a countdown timer",
		Args:  cobra.NoArgs,
		RunE:  opts.withDeps(false, runTUI),
	}

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (default "+config.DefaultPath()+")")
	flags.StringVarP(&opts.backend, "backend", "b", "", "Storage backend: file, sqlite, redis or memory")
	flags.StringVarP(&opts.dataPath, "data", "d", "", "Data file for the file and sqlite backends")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newListCmd(opts),
		newShowCmd(opts),
		newImportCmd(opts),
		newExportCmd(opts),
		newDeleteCmd(opts),
		newClearCmd(opts),
		newThemeCmd(opts),
		newRunCmd(opts),
		newServeCmd(opts),
	)

	return rootCmd
}

// loadConfig reads the config file, then applies flag overrides
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.backend != "" {
		cfg.SetBackend(o.backend)
	}
	if o.dataPath != "" {
		cfg.Storage.Path = o.dataPath
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// withDeps opens the configured store around fn. With load set, the saved
// list is read first; a read failure is reported and the command carries on
// with an empty list.
func (o *globalOptions) withDeps(load bool, fn func(*cobra.Command, []string, *Dependencies) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := o.loadConfig()
		if err != nil {
			return err
		}

		deps, err := NewDependencies(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer deps.Close()

		if load {
			if err := deps.Service.Load(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
			}
		}
		return fn(cmd, args, deps)
	}
}

func runTUI(cmd *cobra.Command, _ []string, deps *Dependencies) error {
	deps.Logger.Info("starting tui", "backend", deps.Config.Storage.Backend)

	model := app.New(deps.Config, deps.Service, deps.Logger,
		app.WithInfo(deps.Config.Storage.Backend),
	)

	programOpts := []tea.ProgramOption{tea.WithContext(cmd.Context())}
	if deps.Config.UI.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	if _, err := tea.NewProgram(model, programOpts...).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
