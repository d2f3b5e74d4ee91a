// Package config provides YAML-based settings loading and difficulty
// presets for the hanoi game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-hanoi/internal/core"
)

// ErrInvalid is returned by Validate for settings that cannot be played.
var ErrInvalid = errors.New("config: invalid settings")

// Settings contains everything the game reads from configuration.
type Settings struct {
	DiskCapacity  int         `yaml:"disk_capacity"`
	RenderPlain   bool        `yaml:"render_plain"`
	InterfaceMode string      `yaml:"interface_mode"`
	TimeLimit     int         `yaml:"time_limit"` // Seconds, 0 = none
	PlayerName    string      `yaml:"player_name"`
	Lives         int         `yaml:"lives"`
	Hold          HoldSeconds `yaml:"message_hold"`
}

// HoldSeconds is how long each message screen stays up.
type HoldSeconds struct {
	Win     int `yaml:"win"`
	Loss    int `yaml:"loss"`
	Warning int `yaml:"warning"`
	Error   int `yaml:"error"`
	Info    int `yaml:"info"`
}

// Durations returns the hold times keyed by message kind name.
func (h HoldSeconds) Durations() map[string]time.Duration {
	return map[string]time.Duration{
		"win":          time.Duration(h.Win) * time.Second,
		"loss":         time.Duration(h.Loss) * time.Second,
		"warning":      time.Duration(h.Warning) * time.Second,
		"error":        time.Duration(h.Error) * time.Second,
		"info":         time.Duration(h.Info) * time.Second,
		"confirmation": 0,
	}
}

// Profile returns the glyph profile selected by RenderPlain.
func (s Settings) Profile() core.Profile {
	if s.RenderPlain {
		return core.ProfilePlain
	}
	return core.ProfileBlock
}

// Mode parses InterfaceMode.
func (s Settings) Mode() (core.InterfaceMode, error) {
	return core.ParseInterfaceMode(s.InterfaceMode)
}

// TimeLimitDuration returns TimeLimit as a duration.
func (s Settings) TimeLimitDuration() time.Duration {
	return time.Duration(s.TimeLimit) * time.Second
}

// Validate checks the settings independently of the terminal.
func (s Settings) Validate() error {
	if s.DiskCapacity < 1 {
		return fmt.Errorf("%w: disk_capacity must be positive, got %d", ErrInvalid, s.DiskCapacity)
	}
	if s.Lives < 1 {
		return fmt.Errorf("%w: lives must be positive, got %d", ErrInvalid, s.Lives)
	}
	if s.TimeLimit < 0 {
		return fmt.Errorf("%w: time_limit must not be negative, got %d", ErrInvalid, s.TimeLimit)
	}
	if _, err := s.Mode(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Runtime builds the rendering context for these settings.
func (s Settings) Runtime(seed int64) (core.RuntimeConfig, error) {
	mode, err := s.Mode()
	if err != nil {
		return core.RuntimeConfig{}, err
	}
	return core.RuntimeConfig{
		Profile: s.Profile(),
		Mode:    mode,
		Disks:   s.DiskCapacity,
		Seed:    seed,
	}, nil
}
