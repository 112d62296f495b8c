package main

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-gravity/internal/config"
	"github.com/litescript/ls-gravity/internal/logging"
	"github.com/litescript/ls-gravity/internal/physics"
	"github.com/litescript/ls-gravity/internal/scenario"
	"github.com/litescript/ls-gravity/internal/state"
)

// session is a configured simulation ready to run.
type session struct {
	cfg      config.Config
	log      *logging.Logger
	closeLog func() error
	mgr      *state.Manager
}

// newSession loads config, opens the log, and builds the simulation from
// the selected preset or scenario. Headless sessions log to stderr when no
// log file is configured; the TUI owns the terminal and discards instead.
func newSession(cmd *cobra.Command, headless bool) (*session, error) {
	cfg, err := config.Load(config.LoadOptions{Path: cfgFile, Flags: cmd.Flags()})
	if err != nil {
		return nil, err
	}

	log, closeLog, err := openLog(cfg, headless, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	log.Debug("config: timestep %.0fs, trail %d, %d steps/frame, %d fps",
		cfg.Simulation.Timestep, cfg.Simulation.TrailLimit, cfg.Simulation.StepsPerFrame, cfg.UI.FPS)

	bodies, source, err := loadBodies(presetName, scenarioPath, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		closeLog()
		return nil, err
	}
	log.Info("loaded %d bodies from %s", len(bodies), source)

	sys := physics.NewSystem(cfg.Simulation.Timestep, cfg.Simulation.TrailLimit)
	for _, b := range bodies {
		sys.Add(b)
	}

	stateCfg := state.DefaultConfig()
	stateCfg.StepsPerFrame = cfg.Simulation.StepsPerFrame
	stateCfg.Logger = log

	return &session{
		cfg:      cfg,
		log:      log,
		closeLog: closeLog,
		mgr:      state.NewManager(sys, stateCfg),
	}, nil
}

// Close flushes and closes the log file, if any.
func (s *session) Close() error {
	return s.closeLog()
}

func openLog(cfg config.Config, headless bool, stderr io.Writer) (*logging.Logger, func() error, error) {
	noop := func() error { return nil }
	if cfg.Log.File != "" {
		log, closeFn, err := logging.OpenFile(cfg.Log.File, cfg.LogLevel())
		if err != nil {
			return nil, nil, fmt.Errorf("open log: %w", err)
		}
		return log, closeFn, nil
	}
	if !headless {
		return logging.Discard(), noop, nil
	}
	log := logging.New(cfg.LogLevel())
	log.SetOutput(stderr)
	return log, noop, nil
}

// loadBodies resolves the starting bodies. A scenario file wins over the
// preset; the "manual" preset prompts on in/out.
func loadBodies(preset, path string, in io.Reader, out io.Writer) ([]*physics.Body, string, error) {
	if path != "" {
		_, bodies, err := scenario.Load(path)
		if err != nil {
			return nil, "", err
		}
		return bodies, path, nil
	}

	if strings.EqualFold(preset, "manual") {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		bodies, err := scenario.NewPrompter(in, out, rng).Manual()
		if err != nil {
			return nil, "", fmt.Errorf("manual setup: %w", err)
		}
		return bodies, "manual setup", nil
	}

	bodies, err := scenario.Preset(preset)
	if err != nil {
		return nil, "", err
	}
	return bodies, "preset " + strings.ToLower(preset), nil
}
