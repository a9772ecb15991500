package game

import (
	"errors"
	"fmt"
)

// Config controls the window and host. Simulation constants are fixed in
// package cubes.
type Config struct {
	Width  int
	Height int
	Title  string
	VSync  bool
	// DebugUI enables the ImGui overlay.
	DebugUI bool
	// TPS is the number of updates per second.
	TPS int
	// LogInterval is how often a summary line is logged; zero disables it.
	LogInterval float64
}

// DefaultConfig returns a 1280x720 vsynced window at 60 TPS with the overlay on.
func DefaultConfig() Config {
	return Config{
		Width:       1280,
		Height:      720,
		Title:       "Cube Spawn",
		VSync:       true,
		DebugUI:     true,
		TPS:         60,
		LogInterval: 5,
	}
}

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps must be positive, got %d", c.TPS))
	}
	if c.LogInterval < 0 {
		errs = append(errs, fmt.Errorf("log interval must not be negative, got %v", c.LogInterval))
	}
	return errors.Join(errs...)
}
