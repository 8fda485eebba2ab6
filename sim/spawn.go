package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/samber/lo"
)

var (
	// archetypeWeights picks between the player's own car and the striped wildcard
	archetypeWeights = []float64{0.9, 0.1}
	speedTiers       = []float64{80, 70, 60}
)

// Pre-wave delay bounds
const (
	MinWaveDelay = 500 * time.Millisecond
	MaxWaveDelay = 1300 * time.Millisecond
)

// WeightedSelect draws an index with probability proportional to its weight
func WeightedSelect(weights []float64, rng *rand.Rand) int {
	if len(weights) == 0 {
		return -1
	}
	r := rng.Float64() * lo.Sum(weights)
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}

// ChooseArchetype picks the car for a player: usually their own color,
// sometimes the striped wildcard
func ChooseArchetype(c PlayerColor, rng *rand.Rand) ArchetypeID {
	candidates := []ArchetypeID{BaseArchetype(c), ArchetypeRedStripeCar}
	return candidates[WeightedSelect(archetypeWeights, rng)]
}

// SpawnCandidates returns the spawn indices a player may use.
// rank is the player's position among the active players.
func SpawnCandidates(spawns []SpawnPoint, activePlayers, player, rank int) []int {
	idx := lo.Range(len(spawns))
	switch {
	case activePlayers <= 1:
		return idx
	case activePlayers == 2:
		return lo.Filter(idx, func(i int, _ int) bool { return i/2 == rank })
	default:
		return lo.Filter(idx, func(i int, _ int) bool { return spawns[i].Player == player })
	}
}

// ChooseSpawnPoint picks a spawn point for a player uniformly from its candidates
func ChooseSpawnPoint(level Level, activePlayers, player, rank int, rng *rand.Rand) (SpawnPoint, error) {
	candidates := SpawnCandidates(level.Spawns, activePlayers, player, rank)
	if len(candidates) == 0 {
		return SpawnPoint{}, fmt.Errorf("map %s, player %d: %w", level.Name, player, ErrNoSpawn)
	}
	return level.Spawns[candidates[rng.Intn(len(candidates))]], nil
}

// SpawnVelocity returns the launch velocity for a spawn point, pointing the
// way the spawn faces
func SpawnVelocity(sp SpawnPoint, rng *rand.Rand) Vec2 {
	speed := sp.MinVelX + rng.Float64()*(sp.MaxVelX-sp.MinVelX)
	speed *= speedTiers[rng.Intn(len(speedTiers))]
	return Forward(degToRad(sp.Angle)).Scale(speed)
}

// WaveDelay returns a random pause before the next wave
func WaveDelay(rng *rand.Rand) time.Duration {
	span := int64(MaxWaveDelay - MinWaveDelay)
	return MinWaveDelay + time.Duration(rng.Int63n(span+1))
}
