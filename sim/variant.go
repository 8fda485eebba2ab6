package sim

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Toggle is a Yes/No/Random variant switch
type Toggle string

const (
	ToggleNo     Toggle = "No"
	ToggleYes    Toggle = "Yes"
	ToggleRandom Toggle = "Random"
)

// ParseToggle accepts the toggle names case-insensitively; empty means No
func ParseToggle(s string) (Toggle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "no", "false", "off":
		return ToggleNo, nil
	case "yes", "true", "on":
		return ToggleYes, nil
	case "random":
		return ToggleRandom, nil
	}
	return ToggleNo, fmt.Errorf("invalid toggle %q", s)
}

// Resolve turns the toggle into a concrete on/off choice
func (t Toggle) Resolve(rng *rand.Rand) bool {
	switch t {
	case ToggleYes:
		return true
	case ToggleRandom:
		return rng.Intn(2) == 1
	}
	return false
}

var variantNames = []string{
	"snow", "randomParking", "roadCones", "noBrakes", "carWash",
	"lakeside", "bombs", "freeMoney", "obstacles",
}

// Variants are the configured gameplay modifiers
type Variants struct {
	Snow           Toggle `mapstructure:"snow"`
	RandomParking  Toggle `mapstructure:"randomParking"`
	RoadCones      Toggle `mapstructure:"roadCones"`
	NoBrakes       Toggle `mapstructure:"noBrakes"`
	CarWash        Toggle `mapstructure:"carWash"`
	Lakeside       Toggle `mapstructure:"lakeside"`
	Bombs          Toggle `mapstructure:"bombs"`
	FreeMoney      Toggle `mapstructure:"freeMoney"`
	Obstacles      Toggle `mapstructure:"obstacles"`
	VIPSpaces      int    `mapstructure:"vipSpaces"`
	HandicapSpaces int    `mapstructure:"handicapSpaces"`
}

func (v *Variants) toggles() []*Toggle {
	return []*Toggle{
		&v.Snow, &v.RandomParking, &v.RoadCones, &v.NoBrakes, &v.CarWash,
		&v.Lakeside, &v.Bombs, &v.FreeMoney, &v.Obstacles,
	}
}

// Validate canonicalizes every toggle, failing on unknown values
func (v *Variants) Validate() error {
	for i, t := range v.toggles() {
		parsed, err := ParseToggle(string(*t))
		if err != nil {
			return fmt.Errorf("variants.%s: %w", variantNames[i], err)
		}
		*t = parsed
	}
	return nil
}

// ActiveVariants are the variants chosen for one round
type ActiveVariants struct {
	Snow           bool
	RandomParking  bool
	RoadCones      bool
	NoBrakes       bool
	CarWash        bool
	Lakeside       bool
	Bombs          bool
	FreeMoney      bool
	Obstacles      bool
	VIPSpaces      int
	HandicapSpaces int
}

// Resolve rolls every Random toggle once
func (v Variants) Resolve(rng *rand.Rand) ActiveVariants {
	return ActiveVariants{
		Snow:           v.Snow.Resolve(rng),
		RandomParking:  v.RandomParking.Resolve(rng),
		RoadCones:      v.RoadCones.Resolve(rng),
		NoBrakes:       v.NoBrakes.Resolve(rng),
		CarWash:        v.CarWash.Resolve(rng),
		Lakeside:       v.Lakeside.Resolve(rng),
		Bombs:          v.Bombs.Resolve(rng),
		FreeMoney:      v.FreeMoney.Resolve(rng),
		Obstacles:      v.Obstacles.Resolve(rng),
		VIPSpaces:      v.VIPSpaces,
		HandicapSpaces: v.HandicapSpaces,
	}
}

// Snow handling modifiers
const (
	snowRollingScale = 0.5
	snowTurnScale    = 0.8
)

// Handling returns the vehicle modifiers for these variants
func (a ActiveVariants) Handling() Handling {
	h := DefaultHandling()
	h.NoBrakes = a.NoBrakes
	if a.Snow {
		h.RollingScale = snowRollingScale
		h.TurnScale = snowTurnScale
	}
	return h
}

// Names lists the enabled variants
func (a ActiveVariants) Names() []string {
	flags := []bool{
		a.Snow, a.RandomParking, a.RoadCones, a.NoBrakes, a.CarWash,
		a.Lakeside, a.Bombs, a.FreeMoney, a.Obstacles,
	}
	var names []string
	for i, on := range flags {
		if on {
			names = append(names, variantNames[i])
		}
	}
	return names
}

// ScaleShake applies the screen shake option to a shake request
func ScaleShake(frames, strength int, screenShake float64) (int, float64) {
	f := float64(frames)*3/4 + float64(frames)/4*screenShake
	return int(math.Round(f)), float64(strength) * screenShake
}
