package sim

import (
	"fmt"
	"math"
	"strings"
)

// OverlapPolicy decides which car takes a space when several qualify
type OverlapPolicy int

const (
	// LastMatch lets the last qualifying car in spawn order win
	LastMatch OverlapPolicy = iota
	// FirstMatch keeps the first qualifying car
	FirstMatch
	// Closest keeps the car nearest the space center
	Closest
)

// String returns the policy name
func (p OverlapPolicy) String() string {
	switch p {
	case FirstMatch:
		return "FirstMatch"
	case Closest:
		return "Closest"
	default:
		return "LastMatch"
	}
}

// ParseOverlapPolicy parses a policy name, case-insensitively
func ParseOverlapPolicy(s string) (OverlapPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lastmatch", "last":
		return LastMatch, nil
	case "firstmatch", "first":
		return FirstMatch, nil
	case "closest":
		return Closest, nil
	}
	return LastMatch, fmt.Errorf("unknown overlap policy %q", s)
}

// Band scores
const (
	ScoreNear = 10
	ScoreMid  = 5
	ScoreFar  = 2
	ScoreEdge = 1
)

// ScoringRules are the tunable parameters of the parking scorer
type ScoringRules struct {
	Tolerance       float64 // px between centers
	AngleTolerance  float64 // degrees
	BandNear        float64 // fractions of Tolerance
	BandMid         float64
	BandFar         float64
	HandicapPenalty int
	VIPMultiplier   int
	Policy          OverlapPolicy
}

// DefaultScoringRules returns the shipped scoring parameters
func DefaultScoringRules() ScoringRules {
	return ScoringRules{
		Tolerance:       32,
		AngleTolerance:  20,
		BandNear:        0.25,
		BandMid:         0.5,
		BandFar:         0.75,
		HandicapPenalty: -20,
		VIPMultiplier:   5,
		Policy:          LastMatch,
	}
}

// SpaceResult is the score a space awards
type SpaceResult struct {
	Space  int
	Player int
	Score  int
	Kind   SpaceKind
}

// NormalizeAngle folds an angle in degrees into (-90, 90] so the two
// opposite orientations of a car in a space compare equal
func NormalizeAngle(a float64) float64 {
	a = WrapDegrees(a)
	if a > 90 {
		a -= 180
	} else if a <= -90 {
		a += 180
	}
	return a
}

// AngleDelta returns the difference between two normalized angles, in [0, 90]
func AngleDelta(a, b float64) float64 {
	d := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	return math.Min(d, 180-d)
}

// BandScore maps a distance inside tolerance to a band score
func (r ScoringRules) BandScore(dist float64) int {
	switch {
	case dist <= r.Tolerance*r.BandNear:
		return ScoreNear
	case dist <= r.Tolerance*r.BandMid:
		return ScoreMid
	case dist <= r.Tolerance*r.BandFar:
		return ScoreFar
	default:
		return ScoreEdge
	}
}

// ScorePair returns the score a car earns in a space and whether it qualifies
func (r ScoringRules) ScorePair(space *ParkingSpace, v *Vehicle) (int, float64, bool) {
	dist := space.Pos.Sub(v.Body.Pos).Len()
	if dist > r.Tolerance {
		return 0, dist, false
	}
	if space.Kind == SpaceHandicap {
		return r.HandicapPenalty, dist, true
	}
	if AngleDelta(v.Body.AngleDegrees(), space.Angle) > r.AngleTolerance {
		return 0, dist, false
	}
	score := r.BandScore(dist)
	if space.Kind == SpaceVIP {
		score *= r.VIPMultiplier
	}
	return score, dist, true
}

// ScoreSpaces resets every space and scores it against the vehicles.
// Vehicles must be in spawn order. Unowned vehicles never score.
// Each space awards at most one player.
func ScoreSpaces(spaces []*ParkingSpace, vehicles []*Vehicle, rules ScoringRules) []SpaceResult {
	var results []SpaceResult
	for _, s := range spaces {
		s.ResetScore()
		best := math.Inf(1)
		for _, v := range vehicles {
			if !v.Owned() {
				continue
			}
			score, dist, ok := rules.ScorePair(s, v)
			if !ok {
				continue
			}
			switch rules.Policy {
			case FirstMatch:
				if s.Scored() {
					continue
				}
			case Closest:
				if dist >= best {
					continue
				}
				best = dist
			}
			s.Score = ScoreData{Player: v.Player, Score: score}
		}
		if s.Scored() {
			results = append(results, SpaceResult{Space: s.Index, Player: s.Score.Player, Score: s.Score.Score, Kind: s.Kind})
		}
	}
	return results
}

// SoloMessage picks the single-player verdict for a total score
func SoloMessage(score int) string {
	switch {
	case score < 0:
		return "Terrible!"
	case score < 20:
		return "Not great."
	case score < 50:
		return "Okay."
	case score < 100:
		return "Good!"
	case score < 150:
		return "Great!"
	case score < 200:
		return "Amazing!"
	default:
		return "Valet Legend!"
	}
}

// VersusMessage names the winner among the active players
func VersusMessage(totals [MaxPlayers]int, active []int) string {
	if len(active) == 0 {
		return "No players!"
	}
	best := active[0]
	tie := false
	for _, p := range active[1:] {
		switch {
		case totals[p] > totals[best]:
			best, tie = p, false
		case totals[p] == totals[best]:
			tie = true
		}
	}
	if tie {
		return "Tie!"
	}
	return fmt.Sprintf("Player %d wins!", best+1)
}

// NoPointsMessage is shown when no car parked anywhere
const NoPointsMessage = "No points!"
