package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/riordanpawley/workouttimer/internal/core/session"
	"github.com/riordanpawley/workouttimer/internal/domain"
	"github.com/riordanpawley/workouttimer/internal/server"
)

func newRunCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <id>",
		Short: "Run a workout session in the terminal without the TUI",
		Long: `Run a workout session in the terminal without the TUI.

Type a command and press enter while the session runs:
  d or enter   complete the current reps set
  p            pause or resume
  s            skip the current phase
  q            quit without recording the session`,
		Args: cobra.ExactArgs(1),
		RunE: o.withDeps(true, func(cmd *cobra.Command, args []string, deps *Dependencies) error {
			workout, err := deps.Service.Get(domain.WorkoutID(args[0]))
			if err != nil {
				return err
			}
			if !workout.Startable() {
				return errors.New("this workout has no exercises")
			}
			return runSession(cmd.Context(), deps, workout, session.RealClock{}, cmd.InOrStdin(), cmd.OutOrStdout())
		}),
	}
}

// runSession drives a headless session until it completes or the user
// quits. A completed session is recorded on the workout.
func runSession(ctx context.Context, deps *Dependencies, w domain.Workout, clock session.Clock, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	timer := session.NewTimer(w)
	runner := session.NewRunner(clock, deps.Logger)

	runner.OnEvent = func(e session.Event, _ time.Time) {
		switch e.Type {
		case session.EventStarted, session.EventPhaseChanged:
			fmt.Fprintf(out, "▶ %s: %s\n", session.Title(e.State, w), session.Subtitle(e.State, w))
		case session.EventPaused:
			fmt.Fprintln(out, "⏸ Paused")
		case session.EventResumed:
			fmt.Fprintln(out, "▶ Resumed")
		}
	}
	runner.OnTick = func(s session.State) {
		if s.Ticking() {
			fmt.Fprintf(out, "  %s\n", session.FormatTime(s.TimeRemaining))
		}
	}

	actions := make(chan session.Action, 1)
	actions <- session.ActionStart
	go readActions(ctx, in, actions)

	fmt.Fprintf(out, "Starting %s (%d sets)\n", w.DisplayName(), session.TotalSets(w))
	state, err := runner.Run(ctx, timer, actions)
	switch {
	case errors.Is(err, session.ErrExited):
		fmt.Fprintln(out, "Workout exited. Progress was not saved.")
		return nil
	case err != nil:
		return err
	}

	if _, err := deps.Service.RecordCompletion(ctx, w.ID, clock.Now()); err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}
	fmt.Fprintf(out, "✓ Workout complete! Great job! Total time %s\n", session.FormatTime(state.ElapsedSeconds))
	return nil
}

// readActions turns input lines into session actions and closes the
// channel at end of input
func readActions(ctx context.Context, in io.Reader, actions chan<- session.Action) {
	defer close(actions)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		var action session.Action
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "", "d", "done":
			action = session.ActionCompleteSet
		case "p", "pause":
			action = session.ActionTogglePause
		case "s", "skip":
			action = session.ActionSkip
		case "q", "quit":
			action = session.ActionExit
		default:
			continue
		}

		select {
		case actions <- action:
		case <-ctx.Done():
			return
		}
	}
}

func newServeCmd(o *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the workout list over a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: o.withDeps(true, func(cmd *cobra.Command, _ []string, deps *Dependencies) error {
			if addr == "" {
				addr = deps.Config.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s/api/v1 (Ctrl+C to stop)\n", addr)
			return server.New(deps.Service, deps.Logger).ListenAndServe(ctx, addr)
		}),
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")
	return cmd
}
