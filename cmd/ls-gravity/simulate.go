package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-gravity/internal/report"
	"github.com/litescript/ls-gravity/internal/state"
)

// simulate flags
var (
	simSteps     int
	summaryMode  bool
	snapshotPath string
	progressStep int
	miniMapMode  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the simulation without the TUI",
	Long: `
Advance the simulation for a fixed number of steps and print the result.

Examples:
  # One simulated year of the solar preset, then a summary table
  ls-gravity simulate --steps 365 --summary

  # Progress every 30 steps and a JSON snapshot on stdout
  ls-gravity simulate --steps 365 --every 30 --snapshot-path -

  # Top-down map of a scenario file after ten years
  ls-gravity simulate --scenario belt.yaml --steps 3650 --minimap
`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.IntVar(&simSteps, "steps", 365, "number of steps to run")
	f.BoolVar(&summaryMode, "summary", false, "print a summary table when done")
	f.StringVar(&snapshotPath, "snapshot-path", "", "export a JSON snapshot to file (use - for stdout)")
	f.IntVar(&progressStep, "every", 0, "print a progress line every N steps")
	f.BoolVar(&miniMapMode, "minimap", false, "print an ASCII map of the final positions")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if simSteps < 0 {
		return fmt.Errorf("--steps must not be negative, got %d", simSteps)
	}
	if progressStep < 0 {
		return fmt.Errorf("--every must not be negative, got %d", progressStep)
	}

	s, err := newSession(cmd, true)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	if snapshotPath == "" && !miniMapMode {
		summaryMode = true
	}

	ctx := cmd.Context()
	for i := 1; i <= simSteps; i++ {
		if ctx.Err() != nil {
			s.log.Warn("interrupted after %d of %d steps", i-1, simSteps)
			break
		}
		s.mgr.StepOnce()
		if progressStep > 0 && i%progressStep == 0 {
			report.WriteProgress(out, s.mgr.Snapshot())
		}
	}

	snap := s.mgr.Snapshot()
	s.log.Info("finished %d steps at day %.1f with %d bodies", snap.Steps, snap.Days(), len(snap.Bodies))

	if snapshotPath != "" {
		if err := writeSnapshot(out, snapshotPath, snap); err != nil {
			return err
		}
		s.log.Info("snapshot written to %s", snapshotPath)
	}

	if summaryMode {
		report.WriteSummaryTable(out, snap)
	}

	if miniMapMode {
		fmt.Fprintln(out)
		report.WriteMiniMap(out, snap.Bodies, miniMapConfig(out))
	}
	return nil
}

func writeSnapshot(stdout io.Writer, path string, snap state.Snapshot) error {
	export := report.ExportSnapshot(snap, time.Now())
	if path == "-" {
		if err := export.WriteJSON(stdout); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()
	if err := export.WriteJSON(f); err != nil {
		return fmt.Errorf("write JSON to file: %w", err)
	}
	return f.Close()
}

// miniMapConfig widens the map to the terminal when stdout is one.
func miniMapConfig(out io.Writer) report.MiniMapConfig {
	cfg := report.DefaultMiniMapConfig()
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return cfg
	}
	if width, height, err := term.GetSize(int(f.Fd())); err == nil {
		cfg.Width = max(cfg.Width, width-2)
		cfg.Height = max(cfg.Height, height/2)
	}
	return cfg
}
