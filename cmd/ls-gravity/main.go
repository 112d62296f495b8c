// Command ls-gravity is a terminal n-body gravity simulator.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/litescript/ls-gravity/internal/ui"
	"github.com/litescript/ls-gravity/internal/version"
)

// Persistent flags shared by every command.
var (
	cfgFile      string
	presetName   string
	scenarioPath string
)

var rootCmd = &cobra.Command{
	Use:   "ls-gravity",
	Short: "Terminal n-body gravity simulator",
	Long: `
Simulate mutually gravitating bodies in 2D. Bodies attract each other with
Newtonian gravity and merge inelastically when they touch.

Starting scenarios:
  --preset solar    Sun and the eight planets on circular orbits (default)
  --preset binary   two touching bodies that merge on the first step
  --preset manual   answer prompts for every body
  --scenario FILE   load a YAML scenario (see "ls-gravity preset dump")

Keys: space pause, n step, [ ] speed, +/- zoom, arrows pan, c center,
l labels, t trails, h freeze on hover, tab diagnostics, q quit.
Drag a body with the mouse to move it; drag empty space to pan.
`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./ls-gravity.yaml or $HOME/.ls-gravity/ls-gravity.yaml)")
	pf.StringVar(&presetName, "preset", "solar", "starting preset: solar, binary or manual")
	pf.StringVar(&scenarioPath, "scenario", "", "YAML scenario file (overrides --preset)")

	pf.Float64("timestep", 0, "seconds of simulated time per step")
	pf.Int("trail-limit", 0, "trail points kept per body")
	pf.Int("steps-per-frame", 0, "steps taken per frame")
	pf.Int("fps", 0, "frames per second in the TUI")
	pf.Bool("mouse", true, "enable mouse hover and drag in the TUI")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "log file (TUI logs are discarded when empty)")

	rootCmd.AddCommand(simulateCmd, presetCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	model := ui.New(s.mgr, ui.Options{
		FPS:    s.cfg.UI.FPS,
		Logger: s.log,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(cmd.Context())}
	if s.cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(model, opts...)

	if _, err := p.Run(); err != nil && cmd.Context().Err() == nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	s.log.Info("shutdown at day %.1f", s.mgr.Snapshot().Days())
	return nil
}
