package sim

// ModeConfig configures the generic round runner
type ModeConfig struct {
	Name      string
	CarBudget int
	MapPool   []string
	Rules     ScoringRules
	Variants  Variants
	// Solo restricts the round to the first active player
	Solo bool
}

// Singleplayer is the solo high-score mode
func Singleplayer() ModeConfig {
	return ModeConfig{
		Name:      "Solo Valet",
		CarBudget: 24,
		MapPool:   []string{"BasicSingleplayer"},
		Rules:     DefaultScoringRules(),
		Solo:      true,
	}
}

// Multiplayer is the local head-to-head mode with a shared car budget
func Multiplayer(cars int) ModeConfig {
	return ModeConfig{
		Name:      "Versus Valet",
		CarBudget: cars,
		MapPool:   []string{"BasicArena"},
		Rules:     DefaultScoringRules(),
	}
}

// ModesFromSettings returns the solo and versus modes configured by s
func ModesFromSettings(s Settings) (ModeConfig, ModeConfig) {
	solo := Singleplayer()
	solo.CarBudget = s.Mode.SingleplayerCars
	solo.Rules = s.Rules()
	solo.Variants = s.Variants

	versus := Multiplayer(s.Mode.MultiplayerCars)
	versus.Rules = s.Rules()
	versus.Variants = s.Variants
	return solo, versus
}
