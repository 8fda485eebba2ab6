package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChooseArchetype_WeightedFrequency(t *testing.T) {
	rng := newTestRand()
	const draws = 10000
	wild := 0
	for i := 0; i < draws; i++ {
		id := ChooseArchetype(PlayerBlue, rng)
		require.Contains(t, []ArchetypeID{ArchetypeBlueCar, ArchetypeRedStripeCar}, id)
		if id == ArchetypeRedStripeCar {
			wild++
		}
	}
	assert.InDelta(t, 0.1, float64(wild)/draws, 0.02)
}

func TestBaseArchetype(t *testing.T) {
	assert.Equal(t, ArchetypeRedCar, BaseArchetype(PlayerRed))
	assert.Equal(t, ArchetypeBlueCar, BaseArchetype(PlayerBlue))
	assert.Equal(t, ArchetypeGreenCar, BaseArchetype(PlayerGreen))
	assert.Equal(t, ArchetypeOrangeCar, BaseArchetype(PlayerYellow))
}

func TestWeightedSelect(t *testing.T) {
	rng := newTestRand()
	assert.Equal(t, -1, WeightedSelect(nil, rng))
	for i := 0; i < 100; i++ {
		assert.Equal(t, 1, WeightedSelect([]float64{0, 1, 0}, rng))
	}
}

func TestSpawnCandidates(t *testing.T) {
	spawns := BasicArena().Spawns
	tests := []struct {
		name     string
		active   int
		player   int
		rank     int
		expected []int
	}{
		{"solo takes any", 1, 0, 0, []int{0, 1, 2, 3}},
		{"two players, first side", 2, 0, 0, []int{0, 1}},
		{"two players, second side", 2, 3, 1, []int{2, 3}},
		{"three players by tag", 3, 2, 1, []int{2}},
		{"four players by tag", 4, 3, 3, []int{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SpawnCandidates(spawns, tt.active, tt.player, tt.rank))
		})
	}
}

func TestChooseSpawnPoint_NoSpawn(t *testing.T) {
	level := BasicSingleplayer()
	_, err := ChooseSpawnPoint(level, 3, 2, 2, newTestRand())
	require.ErrorIs(t, err, ErrNoSpawn)
	assert.Contains(t, err.Error(), "BasicSingleplayer")
}

func TestSpawnVelocity(t *testing.T) {
	rng := newTestRand()
	for i := 0; i < 200; i++ {
		right := SpawnVelocity(SpawnPoint{Angle: 90, MinVelX: 4, MaxVelX: 6}, rng)
		assert.Greater(t, right.X, 0.0)
		assert.InDelta(t, 0, right.Y, 1e-9)
		speed := right.Len()
		assert.GreaterOrEqual(t, speed, 4*60.0-1e-9)
		assert.LessOrEqual(t, speed, 6*80.0+1e-9)

		left := SpawnVelocity(SpawnPoint{Angle: -90, MinVelX: 4, MaxVelX: 6}, rng)
		assert.Less(t, left.X, 0.0)
	}
}

func TestWaveDelay_Bounds(t *testing.T) {
	rng := newTestRand()
	for i := 0; i < 500; i++ {
		d := WaveDelay(rng)
		assert.GreaterOrEqual(t, d, MinWaveDelay)
		assert.LessOrEqual(t, d, MaxWaveDelay)
	}
}

func TestForward(t *testing.T) {
	up := Forward(0)
	assert.InDelta(t, 0, up.X, 1e-9)
	assert.InDelta(t, -1, up.Y, 1e-9)
	right := Forward(math.Pi / 2)
	assert.InDelta(t, 1, right.X, 1e-9)
	assert.InDelta(t, 0, right.Y, 1e-9)
}
