package sim

import "image/color"

// ArchetypeID names a car archetype
type ArchetypeID int

const (
	ArchetypeRedCar ArchetypeID = iota
	ArchetypeBlueCar
	ArchetypeGreenCar
	ArchetypeOrangeCar
	ArchetypeRedStripeCar
	ArchetypeSedan // unowned obstacle cars
	ArchetypeCount
)

// Tuning defaults applied to any archetype field left at zero
const (
	DefaultThrust           = 400.0
	DefaultBrakeForce       = 0.5
	DefaultManualBrakeForce = 30.0
	DefaultTurnAngle        = 70.0
	DefaultReverseThrustMod = 4.0
	DefaultThrustLossMult   = 0.3
	DefaultMass             = 1.0
	DefaultDamping          = 0.8
	DefaultAngularDamping   = 0.1
	HaltedAngularDamping    = 0.9

	DefaultCarWidth  = 34.0
	DefaultCarLength = 64.0
)

// Archetype holds the tuning constants for a car
type Archetype struct {
	ID               ArchetypeID
	Name             string
	Thrust           float64
	BrakeForce       float64
	ManualBrakeForce float64
	TurnAngle        float64
	ReverseThrustMod float64
	ThrustLossMult   float64
	Mass             float64
	Damping          float64
	Width            float64
	Length           float64
	Color            color.RGBA
}

// GetArchetype returns the configuration for an archetype with defaults applied
func GetArchetype(id ArchetypeID) Archetype {
	var a Archetype
	switch id {
	case ArchetypeRedCar:
		a = Archetype{ID: id, Name: "Red Car", Color: color.RGBA{214, 48, 49, 255}}
	case ArchetypeBlueCar:
		a = Archetype{ID: id, Name: "Blue Car", Color: color.RGBA{9, 132, 227, 255}}
	case ArchetypeGreenCar:
		a = Archetype{ID: id, Name: "Green Car", Color: color.RGBA{0, 184, 148, 255}}
	case ArchetypeOrangeCar:
		a = Archetype{ID: id, Name: "Orange Car", Color: color.RGBA{253, 150, 68, 255}}
	case ArchetypeRedStripeCar:
		a = Archetype{ID: id, Name: "Striped Car", Color: color.RGBA{232, 67, 147, 255}, Thrust: 440}
	case ArchetypeSedan:
		a = Archetype{ID: id, Name: "Sedan", Color: color.RGBA{99, 110, 114, 255}, Mass: 1.5}
	default:
		return GetArchetype(ArchetypeRedCar)
	}
	return a.withDefaults()
}

func (a Archetype) withDefaults() Archetype {
	def := func(v *float64, d float64) {
		if *v == 0 {
			*v = d
		}
	}
	def(&a.Thrust, DefaultThrust)
	def(&a.BrakeForce, DefaultBrakeForce)
	def(&a.ManualBrakeForce, DefaultManualBrakeForce)
	def(&a.TurnAngle, DefaultTurnAngle)
	def(&a.ReverseThrustMod, DefaultReverseThrustMod)
	def(&a.ThrustLossMult, DefaultThrustLossMult)
	def(&a.Mass, DefaultMass)
	def(&a.Damping, DefaultDamping)
	def(&a.Width, DefaultCarWidth)
	def(&a.Length, DefaultCarLength)
	return a
}

// PlayerColor is the color slot of a player
type PlayerColor int

const (
	PlayerRed PlayerColor = iota
	PlayerBlue
	PlayerGreen
	PlayerYellow
)

// MaxPlayers is the number of local player slots
const MaxPlayers = 4

// NoPlayer marks an unowned vehicle
const NoPlayer = -1

// ColorForPlayer returns the color slot of a player index
func ColorForPlayer(player int) PlayerColor {
	return PlayerColor(((player % MaxPlayers) + MaxPlayers) % MaxPlayers)
}

// String returns the color name
func (c PlayerColor) String() string {
	switch c {
	case PlayerRed:
		return "Red"
	case PlayerBlue:
		return "Blue"
	case PlayerGreen:
		return "Green"
	case PlayerYellow:
		return "Yellow"
	}
	return "Unknown"
}

// BaseArchetype maps a player color to its own car
func BaseArchetype(c PlayerColor) ArchetypeID {
	switch c {
	case PlayerBlue:
		return ArchetypeBlueCar
	case PlayerGreen:
		return ArchetypeGreenCar
	case PlayerYellow:
		return ArchetypeOrangeCar
	default:
		return ArchetypeRedCar
	}
}
