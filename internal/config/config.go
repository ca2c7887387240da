package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joshajohnson/WarGames-SAO/internal/types"
)

// Divider kinds
const (
	DividerHalving = "halving"
	DividerPeriod  = "period"
)

// Animation modes
const (
	ModeCycle    = "cycle"
	ModePingPong = "pingpong"
)

// Frame tables
const (
	TableSequence = "sequence"
	TableGames    = "games"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	Bus       types.BusConfig       `json:"bus"`
	Timer     types.TimerConfig     `json:"timer"`
	Animation types.AnimationConfig `json:"animation"`
}

// LoadConfig loads the configuration from a file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	if err := json.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadOrDefault loads the configuration from path. Only a missing file falls
// back to DefaultConfig; a file that exists but cannot be decoded or fails
// validation is an error, so unconfigured lines are never driven.
func LoadOrDefault(path string) (cfg *Config, fromFile bool, err error) {
	cfg, err = LoadConfig(path)
	if err == nil {
		return cfg, true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), false, nil
	}
	return nil, false, err
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Bus: types.BusConfig{
			Chip:     "gpiochip0",
			Lines:    []int{5, 6, 13, 19, 26, 21},
			Consumer: "wargames-sao",
		},
		Timer: types.TimerConfig{
			OscillatorHz: 32000000,
			Prescaler:    256,
			Divider:      DividerHalving,
			Ratio:        2,
			Period:       1,
		},
		Animation: types.AnimationConfig{
			Mode:          ModePingPong,
			Table:         TableGames,
			UpdateRate:    60,
			RampStep:      3,
			MinUpdateRate: 1,
			SettleDelayUS: 500,
		},
	}
}

// Validate checks the configuration for values the firmware cannot run with
func (c *Config) Validate() error {
	if len(c.Bus.Lines) != types.BusWidth {
		return fmt.Errorf("%w: bus needs %d lines, got %d", ErrInvalidConfig, types.BusWidth, len(c.Bus.Lines))
	}
	seen := make(map[int]bool, len(c.Bus.Lines))
	for _, l := range c.Bus.Lines {
		if l < 0 || seen[l] {
			return fmt.Errorf("%w: bad or duplicate line %d", ErrInvalidConfig, l)
		}
		seen[l] = true
	}

	switch c.Timer.Prescaler {
	case 1, 2, 4, 8, 16, 32, 64, 128, 256:
	default:
		return fmt.Errorf("%w: prescaler must be a power of two up to 256, got %d", ErrInvalidConfig, c.Timer.Prescaler)
	}
	if c.Timer.OscillatorHz <= 0 {
		return fmt.Errorf("%w: oscillator_hz must be positive", ErrInvalidConfig)
	}
	switch c.Timer.Divider {
	case DividerHalving:
		if c.Timer.Ratio < 1 || c.Timer.Ratio > 255 {
			return fmt.Errorf("%w: ratio must be between 1 and 255", ErrInvalidConfig)
		}
	case DividerPeriod:
		if c.Timer.Period < 1 || c.Timer.Period > 255 {
			return fmt.Errorf("%w: period must be between 1 and 255", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown divider %q", ErrInvalidConfig, c.Timer.Divider)
	}

	a := c.Animation
	if a.Mode != ModeCycle && a.Mode != ModePingPong {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, a.Mode)
	}
	if a.Table != TableSequence && a.Table != TableGames {
		return fmt.Errorf("%w: unknown table %q", ErrInvalidConfig, a.Table)
	}
	if a.UpdateRate < 1 || a.UpdateRate > 255 {
		return fmt.Errorf("%w: update_rate must be between 1 and 255", ErrInvalidConfig)
	}
	if a.RampStep < 0 || a.MinUpdateRate < 1 || a.MinUpdateRate > a.UpdateRate {
		return fmt.Errorf("%w: bad ramp (step %d, min %d)", ErrInvalidConfig, a.RampStep, a.MinUpdateRate)
	}
	if a.SettleDelayUS < 0 {
		return fmt.Errorf("%w: settle_delay_us must not be negative", ErrInvalidConfig)
	}

	return nil
}
