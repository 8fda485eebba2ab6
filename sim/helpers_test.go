package sim

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testDT = 1.0 / 60

type fakeShaker struct {
	calls [][2]int
}

func (f *fakeShaker) Shake(frames, strength int) {
	f.calls = append(f.calls, [2]int{frames, strength})
}

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func newTestSession() *Session {
	s := NewSession(DefaultSettings(), zerolog.Nop(), 7)
	s.Levels["TestLot"] = testLot
	return s
}

// testLot has two spaces and a single spawn lane, no walls
func testLot() Level {
	return Level{
		Name:   "TestLot",
		Width:  1000,
		Height: 1000,
		Spaces: []SpaceDef{
			{Pos: Vec2{500, 300}, Angle: 0},
			{Pos: Vec2{500, 700}, Angle: 0},
		},
		Spawns: []SpawnPoint{
			{Pos: Vec2{100, 500}, Angle: 90, MinVelX: 4, MaxVelX: 6, Player: 0},
		},
		Zone: Rect{X: 100, Y: 100, W: 800, H: 800},
	}
}

func testMode(cars int) ModeConfig {
	m := Singleplayer()
	m.MapPool = []string{"TestLot"}
	m.CarBudget = cars
	return m
}

// newTestCar spawns a default red car at the center of a 1000x1000 world
func newTestCar(angle float64) (*Vehicle, *World) {
	w := NewWorld(Rect{W: 1000, H: 1000})
	var ids IDSource
	v := SpawnVehicle(w, &ids, GetArchetype(ArchetypeRedCar), Vec2{500, 500}, Vec2{}, angle, 0)
	return v, w
}

// tickUntil ticks r until cond holds, failing after limit ticks
func tickUntil(t *testing.T, r *Round, limit int, cond func() bool) {
	t.Helper()
	for i := 0; i < limit; i++ {
		if cond() {
			return
		}
		require.NoError(t, r.Tick(testDT))
	}
	require.True(t, cond(), "condition not reached after %d ticks", limit)
}
