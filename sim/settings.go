package sim

import (
	"fmt"
	"math"

	"github.com/spf13/viper"
)

// Options are the player-facing presentation options
type Options struct {
	ScreenShake  float64 `mapstructure:"screenShake"`
	MasterVolume float64 `mapstructure:"masterVolume"`
}

// Normalize clamps options into range, replacing NaN with the default
func (o Options) Normalize() Options {
	if math.IsNaN(o.ScreenShake) {
		o.ScreenShake = 1
	}
	if math.IsNaN(o.MasterVolume) {
		o.MasterVolume = 1
	}
	o.ScreenShake = clamp(o.ScreenShake, 0, 2)
	o.MasterVolume = clamp(o.MasterVolume, 0, 1)
	return o
}

// ScoringConfig is the config-file view of ScoringRules
type ScoringConfig struct {
	Tolerance      float64 `mapstructure:"tolerance"`
	AngleTolerance float64 `mapstructure:"angleTolerance"`
	OverlapPolicy  string  `mapstructure:"overlapPolicy"`
}

// ModeSettings holds car budgets per mode
type ModeSettings struct {
	SingleplayerCars int `mapstructure:"singleplayerCars"`
	MultiplayerCars  int `mapstructure:"multiplayerCars"`
}

// Settings is the full application configuration
type Settings struct {
	LogLevel string        `mapstructure:"logLevel"`
	Width    int           `mapstructure:"width"`
	Height   int           `mapstructure:"height"`
	ScoresDB string        `mapstructure:"scoresDb"`
	Options  Options       `mapstructure:"options"`
	Variants Variants      `mapstructure:"variants"`
	Scoring  ScoringConfig `mapstructure:"scoring"`
	Mode     ModeSettings  `mapstructure:"mode"`
}

// MaxSpecialSpaces caps VIP and Handicap space counts
const MaxSpecialSpaces = 4

// DefaultSettings returns the shipped configuration
func DefaultSettings() Settings {
	rules := DefaultScoringRules()
	return Settings{
		LogLevel: "info",
		Width:    1280,
		Height:   720,
		ScoresDB: "valet-scores.db",
		Options:  Options{ScreenShake: 1, MasterVolume: 1},
		Variants: Variants{
			Snow:          ToggleRandom,
			RandomParking: ToggleRandom,
			RoadCones:     ToggleRandom,
			NoBrakes:      ToggleRandom,
			CarWash:       ToggleRandom,
			Lakeside:      ToggleRandom,
			Bombs:         ToggleRandom,
			FreeMoney:     ToggleRandom,
			Obstacles:     ToggleRandom,

			VIPSpaces:      1,
			HandicapSpaces: 1,
		},
		Scoring: ScoringConfig{
			Tolerance:      rules.Tolerance,
			AngleTolerance: rules.AngleTolerance,
			OverlapPolicy:  rules.Policy.String(),
		},
		Mode: ModeSettings{SingleplayerCars: 24, MultiplayerCars: 16},
	}
}

// SetDefaults registers every default on v so env and flags can override them
func SetDefaults(v *viper.Viper) {
	d := DefaultSettings()
	v.SetDefault("logLevel", d.LogLevel)
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("scoresDb", d.ScoresDB)
	v.SetDefault("options.screenShake", d.Options.ScreenShake)
	v.SetDefault("options.masterVolume", d.Options.MasterVolume)
	for _, name := range variantNames {
		v.SetDefault("variants."+name, string(ToggleRandom))
	}
	v.SetDefault("variants.vipSpaces", d.Variants.VIPSpaces)
	v.SetDefault("variants.handicapSpaces", d.Variants.HandicapSpaces)
	v.SetDefault("scoring.tolerance", d.Scoring.Tolerance)
	v.SetDefault("scoring.angleTolerance", d.Scoring.AngleTolerance)
	v.SetDefault("scoring.overlapPolicy", d.Scoring.OverlapPolicy)
	v.SetDefault("mode.singleplayerCars", d.Mode.SingleplayerCars)
	v.SetDefault("mode.multiplayerCars", d.Mode.MultiplayerCars)
}

// LoadSettings decodes and validates settings from v
func LoadSettings(v *viper.Viper) (Settings, error) {
	SetDefaults(v)
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s.Normalize()
}

// Normalize clamps numeric ranges and validates enumerations
func (s Settings) Normalize() (Settings, error) {
	d := DefaultSettings()
	s.Options = s.Options.Normalize()

	if err := s.Variants.Validate(); err != nil {
		return Settings{}, err
	}
	s.Variants.VIPSpaces = max(0, min(s.Variants.VIPSpaces, MaxSpecialSpaces))
	s.Variants.HandicapSpaces = max(0, min(s.Variants.HandicapSpaces, MaxSpecialSpaces))

	if _, err := ParseOverlapPolicy(s.Scoring.OverlapPolicy); err != nil {
		return Settings{}, err
	}
	if s.Scoring.Tolerance <= 0 {
		s.Scoring.Tolerance = d.Scoring.Tolerance
	}
	if s.Scoring.AngleTolerance <= 0 {
		s.Scoring.AngleTolerance = d.Scoring.AngleTolerance
	}
	s.Scoring.AngleTolerance = math.Min(s.Scoring.AngleTolerance, 90)

	if s.Mode.SingleplayerCars <= 0 {
		s.Mode.SingleplayerCars = d.Mode.SingleplayerCars
	}
	if s.Mode.MultiplayerCars <= 0 {
		s.Mode.MultiplayerCars = d.Mode.MultiplayerCars
	}
	if s.Width <= 0 || s.Height <= 0 {
		s.Width, s.Height = d.Width, d.Height
	}
	return s, nil
}

// Rules builds scoring rules from the config view
func (s Settings) Rules() ScoringRules {
	r := DefaultScoringRules()
	if s.Scoring.Tolerance > 0 {
		r.Tolerance = s.Scoring.Tolerance
	}
	if s.Scoring.AngleTolerance > 0 {
		r.AngleTolerance = s.Scoring.AngleTolerance
	}
	if p, err := ParseOverlapPolicy(s.Scoring.OverlapPolicy); err == nil {
		r.Policy = p
	}
	return r
}
