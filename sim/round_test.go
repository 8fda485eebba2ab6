package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// park moves the first car of the current wave onto a space and stops it
func park(v *Vehicle, s *ParkingSpace, angle float64) {
	v.Body.Pos = s.Pos
	v.Body.Angle = degToRad(angle)
	v.Halt()
}

func TestRound_SoloHandicapAndPlain(t *testing.T) {
	s := newTestSession()
	s.Join(0)
	mode := testMode(2)
	mode.Variants.HandicapSpaces = 1

	r, err := s.Start(mode, NewScriptedInput())
	require.NoError(t, err)
	assert.Equal(t, PhasePlaying, r.Phase())
	require.Len(t, r.Spaces, 2)

	var handicap, plain *ParkingSpace
	for _, sp := range r.Spaces {
		if sp.Kind == SpaceHandicap {
			handicap = sp
		} else {
			plain = sp
		}
	}
	require.NotNil(t, handicap)
	require.NotNil(t, plain)

	tickUntil(t, r, 120, func() bool { return r.Wave() == 1 })
	require.Len(t, r.InFlight(), 1)
	carA := r.InFlight()[0]
	assert.Equal(t, 0, carA.Player)
	park(carA, handicap, 37)

	tickUntil(t, r, 120, func() bool { return r.Wave() == 2 })
	carB := r.InFlight()[0]
	require.NotSame(t, carA, carB)
	park(carB, plain, plain.Angle+180)
	assert.Zero(t, r.CarsLeft())

	tickUntil(t, r, 30, func() bool { return r.Phase() == PhaseSettling })
	tickUntil(t, r, 200, func() bool { return r.Phase() == PhaseScoring })
	assert.Equal(t, ScoreData{Player: 0, Score: -20}, handicap.Score)
	assert.Equal(t, ScoreData{Player: 0, Score: 10}, plain.Score)
	assert.Len(t, r.Results(), 2)

	tickUntil(t, r, 200, func() bool { return r.Phase() == PhaseRoundComplete })
	assert.Equal(t, 2, r.Revealed())
	assert.Equal(t, -10, s.Totals()[0])
	assert.Equal(t, "Terrible!", r.Message())

	assert.False(t, r.Finished())
	for i := 0; i < 120; i++ {
		require.NoError(t, r.Tick(testDT))
	}
	assert.Equal(t, PhaseRoundComplete, r.Phase(), "results wait for confirm")
	r.Acknowledge()
	assert.True(t, r.Finished())
}

func TestRound_RevealIsStaggered(t *testing.T) {
	s := newTestSession()
	s.Join(0)
	r, err := s.Start(testMode(2), NewScriptedInput())
	require.NoError(t, err)

	tickUntil(t, r, 120, func() bool { return r.Wave() == 1 })
	park(r.InFlight()[0], r.Spaces[0], 0)
	tickUntil(t, r, 120, func() bool { return r.Wave() == 2 })
	park(r.InFlight()[0], r.Spaces[1], 0)

	tickUntil(t, r, 300, func() bool { return r.Phase() == PhaseScoring })
	tickUntil(t, r, 5, func() bool { return r.Revealed() == 1 })
	assert.Equal(t, 10, s.Totals()[0])
	for i := 0; i < 60; i++ {
		require.NoError(t, r.Tick(testDT))
	}
	assert.Equal(t, 1, r.Revealed(), "second space waits for the stagger")
	tickUntil(t, r, 60, func() bool { return r.Phase() == PhaseRoundComplete })
	assert.Equal(t, 20, s.Totals()[0])
	assert.Equal(t, "Okay.", r.Message())
}

func TestRound_OffscreenCarDespawnsAndScoresNothing(t *testing.T) {
	s := newTestSession()
	s.Join(0)
	r, err := s.Start(testMode(1), NewScriptedInput())
	require.NoError(t, err)

	tickUntil(t, r, 120, func() bool { return r.Wave() == 1 })
	car := r.InFlight()[0]
	car.Body.Pos = Vec2{-300, 500}
	require.NoError(t, r.Tick(testDT))
	assert.True(t, car.Halted())
	assert.Len(t, r.Vehicles(), 1)

	tickUntil(t, r, 150, func() bool { return len(r.Vehicles()) == 0 })
	assert.NotContains(t, r.World.Bodies(), car.Body)

	tickUntil(t, r, 300, func() bool { return r.Phase() == PhaseRoundComplete })
	assert.Empty(t, r.Results())
	assert.Equal(t, NoPointsMessage, r.Message())
}

func TestRound_NoSpawnIsFatal(t *testing.T) {
	s := newTestSession()
	s.Join(0)
	s.Join(1)
	s.Join(2)
	mode := Multiplayer(6)
	mode.MapPool = []string{"TestLot"}

	r, err := s.Start(mode, NewScriptedInput())
	require.NoError(t, err)

	var tickErr error
	for i := 0; i < 200 && tickErr == nil; i++ {
		tickErr = r.Tick(testDT)
	}
	require.ErrorIs(t, tickErr, ErrNoSpawn)
	assert.ErrorIs(t, r.Tick(testDT), ErrNoSpawn, "error sticks")
}

func TestSession_StartErrors(t *testing.T) {
	t.Run("no players", func(t *testing.T) {
		s := newTestSession()
		_, err := s.Start(testMode(2), NewScriptedInput())
		assert.ErrorIs(t, err, ErrNoPlayers)
	})
	t.Run("empty map pool", func(t *testing.T) {
		s := newTestSession()
		s.Join(0)
		mode := testMode(2)
		mode.MapPool = nil
		_, err := s.Start(mode, NewScriptedInput())
		assert.ErrorIs(t, err, ErrNoMap)
	})
	t.Run("unknown map", func(t *testing.T) {
		s := newTestSession()
		s.Join(0)
		mode := testMode(2)
		mode.MapPool = []string{"Atlantis"}
		_, err := s.Start(mode, NewScriptedInput())
		assert.ErrorIs(t, err, ErrUnknownLevel)
	})
	t.Run("double start", func(t *testing.T) {
		s := newTestSession()
		s.Join(0)
		_, err := s.Start(testMode(2), NewScriptedInput())
		require.NoError(t, err)
		_, err = s.Start(testMode(2), NewScriptedInput())
		assert.ErrorIs(t, err, ErrSessionStarted)

		s.End()
		_, err = s.Start(testMode(2), NewScriptedInput())
		assert.NoError(t, err)
	})
}

func TestRound_TeardownCancelsTimers(t *testing.T) {
	s := newTestSession()
	s.Join(0)
	r, err := s.Start(testMode(4), NewScriptedInput())
	require.NoError(t, err)

	require.NoError(t, r.Tick(testDT))
	require.True(t, r.waves.IsFiringNextRound())
	require.Positive(t, r.sched.Pending())

	s.End()
	assert.Zero(t, r.sched.Pending())
	assert.Empty(t, r.World.Bodies())
	assert.Nil(t, s.Round())

	for i := 0; i < 120; i++ {
		require.NoError(t, r.Tick(testDT))
	}
	assert.Zero(t, r.Wave(), "no wave spawns after teardown")
}

func TestRound_PauseFreezesTime(t *testing.T) {
	s := newTestSession()
	s.Join(0)
	r, err := s.Start(testMode(4), NewScriptedInput())
	require.NoError(t, err)
	tickUntil(t, r, 120, func() bool { return r.Wave() == 1 })

	car := r.InFlight()[0]
	pos, elapsed := car.Body.Pos, r.Elapsed()
	r.SetPaused(true)
	for i := 0; i < 60; i++ {
		require.NoError(t, r.Tick(testDT))
	}
	assert.Equal(t, pos, car.Body.Pos)
	assert.Equal(t, elapsed, r.Elapsed())

	r.SetPaused(false)
	require.NoError(t, r.Tick(testDT))
	assert.NotEqual(t, pos, car.Body.Pos)
}

func TestRound_VersusWaves(t *testing.T) {
	s := newTestSession()
	s.Join(0)
	s.Join(3)
	r, err := s.Start(Multiplayer(4), NewScriptedInput())
	require.NoError(t, err)
	assert.Equal(t, "BasicArena", r.Level.Name)
	assert.Equal(t, []int{0, 3}, r.Players())

	tickUntil(t, r, 120, func() bool { return r.Wave() == 1 })
	cars := r.InFlight()
	require.Len(t, cars, 2)
	assert.Equal(t, 0, cars[0].Player)
	assert.Equal(t, 3, cars[1].Player)
	assert.Greater(t, cars[0].Body.Vel.X, 0.0, "left side drives right")
	assert.Less(t, cars[1].Body.Vel.X, 0.0, "right side drives left")
	assert.Equal(t, 2, r.CarsLeft())
}

func TestRound_Variants(t *testing.T) {
	s := newTestSession()
	s.Join(0)
	mode := Singleplayer()
	mode.Variants = Variants{
		Obstacles: ToggleYes, RoadCones: ToggleYes, FreeMoney: ToggleYes,
		Bombs: ToggleYes, Snow: ToggleYes, VIPSpaces: 2, HandicapSpaces: 1,
	}
	r, err := s.Start(mode, NewScriptedInput())
	require.NoError(t, err)

	assert.Len(t, r.Coins, coinCount)
	assert.Len(t, r.Cones, coneCount)
	assert.Len(t, r.Vehicles(), obstacleCount)
	for _, v := range r.Vehicles() {
		assert.False(t, v.Owned())
		assert.True(t, v.Halted())
	}
	assert.Equal(t, 2, CountKind(r.Spaces, SpaceVIP))
	assert.Equal(t, 1, CountKind(r.Spaces, SpaceHandicap))

	tickUntil(t, r, 120, func() bool { return r.Wave() == 1 })
	assert.Equal(t, snowTurnScale, r.InFlight()[0].Handling.TurnScale)

	tickUntil(t, r, 60*10, func() bool { return len(r.Blasts) > 0 })
	assert.True(t, s.Shaking())
}

func TestRound_CoinGoesToFirstToucher(t *testing.T) {
	s := newTestSession()
	s.Join(0)
	mode := testMode(3)
	mode.Variants.FreeMoney = ToggleYes
	r, err := s.Start(mode, NewScriptedInput())
	require.NoError(t, err)
	require.Len(t, r.Coins, coinCount)

	tickUntil(t, r, 120, func() bool { return r.Wave() == 1 })
	car := r.InFlight()[0]
	coin := r.Coins[0]
	car.Body.Pos = coin.Body.Pos
	require.NoError(t, r.Tick(testDT))

	assert.True(t, coin.Taken)
	assert.Equal(t, CoinValue, s.Totals()[0])
	assert.NotContains(t, r.World.Bodies(), coin.Body)
}
