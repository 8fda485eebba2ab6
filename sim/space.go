package sim

import (
	"math/rand"

	"github.com/samber/lo"
)

// SpaceKind tags a parking space with its scoring rule
type SpaceKind int

const (
	SpacePlain SpaceKind = iota
	SpaceHandicap
	SpaceVIP
)

// String returns the kind name
func (k SpaceKind) String() string {
	switch k {
	case SpaceHandicap:
		return "Handicap"
	case SpaceVIP:
		return "VIP"
	default:
		return "Plain"
	}
}

// Parking space size in pixels
const (
	SpaceWidth  = 46.0
	SpaceLength = 76.0
)

// ScoreData is the result of a space for the current round
type ScoreData struct {
	Player int
	Score  int
}

// ParkingSpace is a marked space on the map
type ParkingSpace struct {
	Index int
	Pos   Vec2
	Angle float64 // degrees
	W, H  float64
	Kind  SpaceKind
	Score ScoreData
}

// NewSpaces builds plain spaces from level data
func NewSpaces(defs []SpaceDef) []*ParkingSpace {
	spaces := make([]*ParkingSpace, len(defs))
	for i, d := range defs {
		spaces[i] = &ParkingSpace{
			Index: i,
			Pos:   d.Pos,
			Angle: d.Angle,
			W:     SpaceWidth,
			H:     SpaceLength,
			Score: ScoreData{Player: NoPlayer},
		}
	}
	return spaces
}

// ResetScore clears the space result for a new round
func (s *ParkingSpace) ResetScore() {
	s.Score = ScoreData{Player: NoPlayer}
}

// Scored reports whether a player took this space
func (s *ParkingSpace) Scored() bool {
	return s.Score.Player != NoPlayer
}

// AssignSpaceKinds marks numHandicap random spaces as Handicap and numVIP
// other random spaces as VIP. Counts are clamped to the available spaces.
func AssignSpaceKinds(spaces []*ParkingSpace, numHandicap, numVIP int, rng *rand.Rand) {
	n := len(spaces)
	numHandicap = max(0, min(numHandicap, n))
	numVIP = max(0, min(numVIP, n-numHandicap))

	for _, s := range spaces {
		s.Kind = SpacePlain
	}
	order := rng.Perm(n)
	for i, idx := range order {
		switch {
		case i < numHandicap:
			spaces[idx].Kind = SpaceHandicap
		case i < numHandicap+numVIP:
			spaces[idx].Kind = SpaceVIP
		}
	}
}

// CountKind returns how many spaces have kind k
func CountKind(spaces []*ParkingSpace, k SpaceKind) int {
	return lo.CountBy(spaces, func(s *ParkingSpace) bool { return s.Kind == k })
}
