package sim

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Phase is the state of a round
type Phase int

const (
	PhaseInit Phase = iota
	PhasePlaying
	PhaseSettling
	PhaseScoring
	PhaseRoundComplete
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "Init"
	case PhasePlaying:
		return "Playing"
	case PhaseSettling:
		return "Settling"
	case PhaseScoring:
		return "Scoring"
	case PhaseRoundComplete:
		return "RoundComplete"
	}
	return "Unknown"
}

// Round timing
const (
	ScoringGraceDelay = 2000 * time.Millisecond
	RevealStagger     = 1250 * time.Millisecond
)

// Round runs one game of a mode: waves of cars, then scoring
type Round struct {
	ID       uuid.UUID
	Mode     ModeConfig
	Level    Level
	Variants ActiveVariants
	World    *World
	Spaces   []*ParkingSpace
	Coins    []*Coin
	Cones    []*Body
	Blasts   []Blast

	session  *Session
	input    Actions
	log      zerolog.Logger
	sched    *Scheduler
	waves    *WaveController
	players  []int
	vehicles []*Vehicle
	byID     map[EntityID]*Vehicle
	phase    Phase
	paused   bool
	results  []SpaceResult
	revealed int
	message  string
	finished bool
	torn     bool
	err      error
}

func newRound(s *Session, mode ModeConfig, in Actions) (*Round, error) {
	r := &Round{
		ID:      uuid.New(),
		Mode:    mode,
		session: s,
		input:   in,
		sched:   NewScheduler(),
		byID:    make(map[EntityID]*Vehicle),
		phase:   PhaseInit,
	}
	r.log = s.Log.With().Str("round", r.ID.String()).Str("mode", mode.Name).Logger()
	if err := r.init(); err != nil {
		return nil, err
	}
	return r, nil
}

// init loads the map and resets per-round state
func (r *Round) init() error {
	rng := r.session.rng

	active := r.session.ActivePlayers()
	if len(active) == 0 {
		return ErrNoPlayers
	}
	if r.Mode.Solo {
		active = active[:1]
	}
	r.players = active

	if len(r.Mode.MapPool) == 0 {
		return ErrNoMap
	}
	name := r.Mode.MapPool[rng.Intn(len(r.Mode.MapPool))]
	level, err := r.session.Levels.Load(name)
	if err != nil {
		return err
	}
	r.Level = level
	r.session.resetScores()

	r.Variants = r.Mode.Variants.Resolve(rng)
	r.World = NewWorld(level.Field())
	for _, wall := range level.Walls {
		r.World.AddBody(BodyDef{
			Pos:      Vec2{wall.X + wall.W/2, wall.Y + wall.H/2},
			W:        wall.W,
			H:        wall.H,
			Static:   true,
			Category: CategoryWall,
			Mask:     CategoryCar | CategoryCone,
		})
	}
	r.World.OnBeginContact(r.onContact)

	r.Spaces = NewSpaces(level.Spaces)
	if r.Variants.RandomParking {
		r.jitterSpaces()
	}
	AssignSpaceKinds(r.Spaces, r.Variants.HandicapSpaces, r.Variants.VIPSpaces, rng)

	if r.Variants.Obstacles {
		r.placeObstacles()
	}
	if r.Variants.RoadCones {
		r.placeCones()
	}
	if r.Variants.FreeMoney {
		r.placeCoins()
	}
	if r.Variants.Bombs {
		r.scheduleBomb()
	}

	r.waves = NewWaveController(r.Mode.CarBudget)
	r.phase = PhasePlaying

	r.log.Info().
		Str("map", level.Name).
		Ints("players", r.players).
		Int("cars", r.Mode.CarBudget).
		Int("handicap", CountKind(r.Spaces, SpaceHandicap)).
		Int("vip", CountKind(r.Spaces, SpaceVIP)).
		Strs("variants", r.Variants.Names()).
		Msg("level loaded")
	return nil
}

// Tick advances the round by dt seconds. A non-nil error is fatal.
func (r *Round) Tick(dt float64) error {
	if r.err != nil || r.torn {
		return r.err
	}
	if r.paused {
		return nil
	}

	r.sched.Advance(Seconds(dt))
	if r.err != nil {
		return r.err
	}

	if r.phase == PhasePlaying {
		switch r.waves.Poll() {
		case WaveFire:
			r.sched.After(WaveDelay(r.session.rng), r.spawnWave)
		case WaveFinish:
			r.done()
		}
	}

	field := r.Level.Field()
	for _, v := range r.waves.InFlight {
		if v.Tick(r.input, field) {
			r.log.Debug().Uint64("car", uint64(v.ID)).Int("player", v.Player).Msg("car left the field")
			r.scheduleDespawn(v)
		}
	}

	r.World.Step(dt)
	r.tickBlasts(dt)
	return r.err
}

func (r *Round) fail(err error) {
	if r.err == nil {
		r.err = err
		r.log.Error().Err(err).Msg("round failed")
	}
}

func (r *Round) spawnWave() {
	rng := r.session.rng
	handling := r.Variants.Handling()
	cars := make([]*Vehicle, 0, len(r.players))
	for rank, p := range r.players {
		sp, err := ChooseSpawnPoint(r.Level, len(r.players), p, rank, rng)
		if err != nil {
			r.fail(err)
			return
		}
		arch := GetArchetype(ChooseArchetype(ColorForPlayer(p), rng))
		v := SpawnVehicle(r.World, &r.session.ids, arch, sp.Pos, SpawnVelocity(sp, rng), sp.Angle, p)
		v.Handling = handling
		v.Shaker = r.session
		r.addVehicle(v)
		cars = append(cars, v)
	}
	r.waves.Launched(cars)
	r.log.Info().Int("wave", r.waves.Wave).Int("carsLeft", r.waves.CarsLeft).Msg("wave spawned")
}

func (r *Round) addVehicle(v *Vehicle) {
	r.vehicles = append(r.vehicles, v)
	r.byID[v.ID] = v
}

func (r *Round) removeVehicle(v *Vehicle) {
	r.World.RemoveBody(v.Body)
	delete(r.byID, v.ID)
	r.vehicles = lo.Without(r.vehicles, v)
	r.waves.Forget(v)
}

func (r *Round) scheduleDespawn(v *Vehicle) {
	r.sched.After(OffscreenDespawnDelay, func() {
		r.removeVehicle(v)
	})
}

// done is called once the budget is spent and the last wave settled
func (r *Round) done() {
	r.phase = PhaseSettling
	r.log.Info().Int("waves", r.waves.Wave).Msg("round done, settling")
	r.sched.After(ScoringGraceDelay, r.score)
}

func (r *Round) score() {
	r.phase = PhaseScoring
	r.results = ScoreSpaces(r.Spaces, r.vehicles, r.Mode.Rules)
	if len(r.results) == 0 {
		r.message = NoPointsMessage
		r.complete()
		return
	}
	for i, res := range r.results {
		r.sched.After(time.Duration(i)*RevealStagger, func() {
			r.session.AddScore(res.Player, res.Score)
			r.revealed++
			r.log.Debug().
				Int("space", res.Space).
				Str("kind", res.Kind.String()).
				Int("player", res.Player).
				Int("score", res.Score).
				Msg("space scored")
			if r.revealed == len(r.results) {
				r.complete()
			}
		})
	}
}

func (r *Round) complete() {
	r.phase = PhaseRoundComplete
	totals := r.session.Totals()
	if r.message == "" {
		if r.Mode.Solo {
			r.message = SoloMessage(totals[r.players[0]])
		} else {
			r.message = VersusMessage(totals, r.players)
		}
	}
	r.log.Info().
		Ints("totals", totals[:]).
		Str("message", r.message).
		Msg("round complete")
}

// Acknowledge confirms the results screen
func (r *Round) Acknowledge() {
	if r.phase == PhaseRoundComplete {
		r.finished = true
	}
}

// Finished reports whether the results were acknowledged
func (r *Round) Finished() bool { return r.finished }

// SetPaused freezes or resumes the round and its physics
func (r *Round) SetPaused(paused bool) {
	r.paused = paused
	if r.World != nil {
		r.World.Paused = paused
	}
}

// Paused reports whether the round is frozen
func (r *Round) Paused() bool { return r.paused }

// Teardown cancels every pending timer and empties the world
func (r *Round) Teardown() {
	if r.torn {
		return
	}
	r.torn = true
	r.sched.CancelAll()
	for _, b := range append([]*Body(nil), r.World.Bodies()...) {
		r.World.RemoveBody(b)
	}
	r.vehicles = nil
	clear(r.byID)
	r.log.Debug().Msg("round torn down")
}

// Phase returns the current phase
func (r *Round) Phase() Phase { return r.phase }

// Players returns the player indices taking part
func (r *Round) Players() []int { return r.players }

// Vehicles returns every live vehicle in spawn order
func (r *Round) Vehicles() []*Vehicle { return r.vehicles }

// InFlight returns the cars of the current wave
func (r *Round) InFlight() []*Vehicle { return r.waves.InFlight }

// CarsLeft returns the remaining spawn budget
func (r *Round) CarsLeft() int { return max(0, r.waves.CarsLeft) }

// Wave returns how many waves have spawned
func (r *Round) Wave() int { return r.waves.Wave }

// Results returns the space results, available from the Scoring phase
func (r *Round) Results() []SpaceResult { return r.results }

// Revealed returns how many results have been applied to the totals
func (r *Round) Revealed() int { return r.revealed }

// Message returns the end-of-round verdict
func (r *Round) Message() string { return r.message }

// Elapsed returns the simulated time since the round started
func (r *Round) Elapsed() time.Duration { return r.sched.Now() }

// Err returns the fatal error that stopped the round, if any
func (r *Round) Err() error { return r.err }

func (r *Round) onContact(a, b *Body) {
	va, vb := r.byID[a.UserData], r.byID[b.UserData]
	switch {
	case va != nil && vb != nil:
		va.HandleCarCollision()
		vb.HandleCarCollision()
	case va != nil:
		r.hit(va, b)
	case vb != nil:
		r.hit(vb, a)
	}
}

func (r *Round) hit(v *Vehicle, other *Body) {
	switch other.Category {
	case CategoryWall:
		v.HandleWallCollision()
	case CategoryCone:
		v.HandleCarCollision()
	case CategorySensor:
		r.collectCoin(v, other)
	}
}

// String summarizes the round for logs
func (r *Round) String() string {
	return fmt.Sprintf("%s on %s (%s, wave %d, %d cars left)", r.Mode.Name, r.Level.Name, r.phase, r.Wave(), r.CarsLeft())
}
