package game

import "valet/sim"

// Config holds the shell configuration
type Config struct {
	// Screen dimensions (logical resolution)
	ScreenWidth  int
	ScreenHeight int

	// Ticks between repeats of a held menu action
	MenuRepeat int

	// Number of snowflakes drawn when the Snow variant is active
	SnowCount int

	// High score rows shown on the results screen
	TopScores int

	// Directory for CPU profiles captured on slow ticks, empty disables
	ProfileDir string
}

// DefaultConfig returns the default shell configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  1280,
		ScreenHeight: 720,
		MenuRepeat:   sim.DefaultMenuRepeat,
		SnowCount:    140,
		TopScores:    5,
	}
}

// ConfigFromSettings derives the shell configuration from application settings
func ConfigFromSettings(s sim.Settings) Config {
	c := DefaultConfig()
	if s.Width > 0 && s.Height > 0 {
		c.ScreenWidth = s.Width
		c.ScreenHeight = s.Height
	}
	return c
}
