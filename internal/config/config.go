// Package config loads runtime settings from defaults, an optional YAML
// file, LSGRAVITY_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/litescript/ls-gravity/internal/logging"
	"github.com/litescript/ls-gravity/internal/physics"
)

const (
	// FileName is the config file base name searched for when no explicit
	// path is given.
	FileName = "ls-gravity"
	// EnvPrefix prefixes environment overrides, e.g. LSGRAVITY_UI_FPS.
	EnvPrefix = "LSGRAVITY"

	// MaxStepsPerFrame caps the speed multiplier.
	MaxStepsPerFrame = 64
)

// Config holds all runtime settings.
type Config struct {
	Simulation Simulation `mapstructure:"simulation" yaml:"simulation"`
	UI         UI         `mapstructure:"ui" yaml:"ui"`
	Log        Log        `mapstructure:"log" yaml:"log"`
}

// Simulation configures the physics system.
type Simulation struct {
	Timestep      float64 `mapstructure:"timestep" yaml:"timestep"`       // seconds per step
	TrailLimit    int     `mapstructure:"trail_limit" yaml:"trail_limit"` // points per body
	StepsPerFrame int     `mapstructure:"steps_per_frame" yaml:"steps_per_frame"`
}

// UI configures the terminal front end.
type UI struct {
	FPS   int  `mapstructure:"fps" yaml:"fps"`
	Mouse bool `mapstructure:"mouse" yaml:"mouse"`
}

// Log configures logging.
type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Simulation: Simulation{
			Timestep:      physics.DefaultTimestep,
			TrailLimit:    physics.DefaultTrailLimit,
			StepsPerFrame: 1,
		},
		UI: UI{
			FPS:   60,
			Mouse: true,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"timestep":        "simulation.timestep",
	"trail-limit":     "simulation.trail_limit",
	"steps-per-frame": "simulation.steps_per_frame",
	"fps":             "ui.fps",
	"mouse":           "ui.mouse",
	"log-level":       "log.level",
	"log-file":        "log.file",
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// Path is an explicit config file. When empty, ls-gravity.yaml is
	// searched in $HOME/.ls-gravity and the working directory, and a
	// missing file is not an error.
	Path string
	// Flags, if set, override file and environment values for any flag
	// named in flagKeys that the user actually set.
	Flags *pflag.FlagSet
}

// Load resolves the configuration.
func Load(opts LoadOptions) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if opts.Path != "" {
		v.SetConfigFile(opts.Path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, "."+FileName))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.Path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			f := opts.Flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("simulation.timestep", d.Simulation.Timestep)
	v.SetDefault("simulation.trail_limit", d.Simulation.TrailLimit)
	v.SetDefault("simulation.steps_per_frame", d.Simulation.StepsPerFrame)
	v.SetDefault("ui.fps", d.UI.FPS)
	v.SetDefault("ui.mouse", d.UI.Mouse)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	var errs []error
	if !(c.Simulation.Timestep > 0) {
		errs = append(errs, fmt.Errorf("simulation.timestep must be positive, got %v", c.Simulation.Timestep))
	}
	if c.Simulation.TrailLimit <= 0 {
		errs = append(errs, fmt.Errorf("simulation.trail_limit must be positive, got %d", c.Simulation.TrailLimit))
	}
	if c.Simulation.StepsPerFrame < 1 || c.Simulation.StepsPerFrame > MaxStepsPerFrame {
		errs = append(errs, fmt.Errorf("simulation.steps_per_frame must be in 1..%d, got %d", MaxStepsPerFrame, c.Simulation.StepsPerFrame))
	}
	if c.UI.FPS <= 0 {
		errs = append(errs, fmt.Errorf("ui.fps must be positive, got %d", c.UI.FPS))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// LogLevel returns the parsed log level.
func (c Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Log.Level)
	return level
}
