package sim

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings(viper.New())
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
	assert.Equal(t, DefaultScoringRules(), s.Rules())

	for i, toggle := range s.Variants.toggles() {
		assert.Equal(t, ToggleRandom, *toggle, variantNames[i])
	}
	assert.Equal(t, 1, s.Variants.VIPSpaces)
	assert.Equal(t, 1, s.Variants.HandicapSpaces)
}

func TestLoadSettings_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "valet.yaml")
	content := `
logLevel: debug
options:
  screenShake: 5
  masterVolume: -1
variants:
  snow: "Yes"
  bombs: random
  noBrakes: "No"
  vipSpaces: 9
  handicapSpaces: 2
scoring:
  angleTolerance: 45
  overlapPolicy: closest
mode:
  singleplayerCars: 12
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	s, err := LoadSettings(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 2.0, s.Options.ScreenShake)
	assert.Equal(t, 0.0, s.Options.MasterVolume)
	assert.Equal(t, ToggleYes, s.Variants.Snow)
	assert.Equal(t, ToggleRandom, s.Variants.Bombs)
	assert.Equal(t, ToggleNo, s.Variants.NoBrakes)
	assert.Equal(t, MaxSpecialSpaces, s.Variants.VIPSpaces)
	assert.Equal(t, 2, s.Variants.HandicapSpaces)
	assert.Equal(t, 12, s.Mode.SingleplayerCars)
	assert.Equal(t, 16, s.Mode.MultiplayerCars)

	rules := s.Rules()
	assert.Equal(t, 45.0, rules.AngleTolerance)
	assert.Equal(t, Closest, rules.Policy)
}

func TestLoadSettings_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("variants.snow", "sometimes")
	_, err := LoadSettings(v)
	assert.ErrorContains(t, err, "variants.snow")

	v = viper.New()
	v.Set("scoring.overlapPolicy", "whoever")
	_, err = LoadSettings(v)
	assert.Error(t, err)
}

func TestOptions_Normalize(t *testing.T) {
	o := Options{ScreenShake: math.NaN(), MasterVolume: 0.4}.Normalize()
	assert.Equal(t, Options{ScreenShake: 1, MasterVolume: 0.4}, o)
	o = Options{ScreenShake: -3, MasterVolume: 7}.Normalize()
	assert.Equal(t, Options{ScreenShake: 0, MasterVolume: 1}, o)
}

func TestToggle(t *testing.T) {
	rng := newTestRand()
	assert.True(t, ToggleYes.Resolve(rng))
	assert.False(t, ToggleNo.Resolve(rng))
	assert.False(t, Toggle("").Resolve(rng))

	seen := map[bool]int{}
	for i := 0; i < 200; i++ {
		seen[ToggleRandom.Resolve(rng)]++
	}
	assert.Positive(t, seen[true])
	assert.Positive(t, seen[false])
}

func TestScaleShake(t *testing.T) {
	tests := []struct {
		shake    float64
		frames   int
		strength float64
	}{
		{0, 6, 0},
		{0.5, 7, 2.5},
		{1, 8, 5},
		{2, 10, 10},
	}
	for _, tt := range tests {
		f, s := ScaleShake(8, 5, tt.shake)
		assert.Equal(t, tt.frames, f, "screenShake %v", tt.shake)
		assert.InDelta(t, tt.strength, s, 1e-9)
	}
}

func TestActiveVariants(t *testing.T) {
	a := ActiveVariants{Snow: true, NoBrakes: true, Bombs: true}
	h := a.Handling()
	assert.True(t, h.NoBrakes)
	assert.Equal(t, 0.5, h.RollingScale)
	assert.Equal(t, 0.8, h.TurnScale)
	assert.Equal(t, []string{"snow", "noBrakes", "bombs"}, a.Names())
	assert.Equal(t, DefaultHandling(), ActiveVariants{}.Handling())
}
