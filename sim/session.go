package sim

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/rs/zerolog"
)

type shakeState struct {
	frames   int
	strength float64
}

// Session is the state shared across rounds: joined players, running
// totals, menu control and the random source. The application builds one.
type Session struct {
	Log      zerolog.Logger
	Settings Settings
	Levels   LevelCatalog
	// MenuController is the player whose input drives menus, or NoPlayer for anyone
	MenuController int

	rng    *rand.Rand
	fx     *rand.Rand
	ids    IDSource
	joined [MaxPlayers]bool
	totals [MaxPlayers]int
	shake  shakeState
	round  *Round
}

// NewSession creates a session. seed drives every gameplay random choice.
func NewSession(settings Settings, log zerolog.Logger, seed int64) *Session {
	return &Session{
		Log:            log,
		Settings:       settings,
		Levels:         BuiltinLevels(),
		MenuController: NoPlayer,
		rng:            rand.New(rand.NewSource(seed)),
		fx:             rand.New(rand.NewSource(seed + 1)),
	}
}

// Rand returns the gameplay random source
func (s *Session) Rand() *rand.Rand { return s.rng }

// Join adds a player slot. It reports whether the player was newly joined.
func (s *Session) Join(player int) bool {
	if player < 0 || player >= MaxPlayers || s.joined[player] {
		return false
	}
	s.joined[player] = true
	s.Log.Info().Int("player", player).Msg("player joined")
	return true
}

// Leave frees a player slot
func (s *Session) Leave(player int) {
	if player >= 0 && player < MaxPlayers {
		s.joined[player] = false
	}
}

// Joined reports whether a player slot is taken
func (s *Session) Joined(player int) bool {
	return player >= 0 && player < MaxPlayers && s.joined[player]
}

// ActivePlayers returns the joined player indices in order
func (s *Session) ActivePlayers() []int {
	var active []int
	for p, ok := range s.joined {
		if ok {
			active = append(active, p)
		}
	}
	sort.Ints(active)
	return active
}

// Totals returns the running per-player scores
func (s *Session) Totals() [MaxPlayers]int { return s.totals }

// AddScore adds delta to a player's running total
func (s *Session) AddScore(player, delta int) {
	if player < 0 || player >= MaxPlayers {
		return
	}
	s.totals[player] += delta
}

func (s *Session) resetScores() {
	s.totals = [MaxPlayers]int{}
}

// Shake requests a camera shake, scaled by the screen shake option
func (s *Session) Shake(frames, strength int) {
	f, st := ScaleShake(frames, strength, s.Settings.Options.ScreenShake)
	if f <= 0 || st <= 0 {
		return
	}
	s.shake.frames = max(s.shake.frames, f)
	if st > s.shake.strength {
		s.shake.strength = st
	}
}

// ShakeOffset consumes one frame of shake and returns the camera offset
func (s *Session) ShakeOffset() (float64, float64) {
	if s.shake.frames <= 0 {
		s.shake = shakeState{}
		return 0, 0
	}
	s.shake.frames--
	st := s.shake.strength
	return (s.fx.Float64()*2 - 1) * st, (s.fx.Float64()*2 - 1) * st
}

// Shaking reports whether a shake is in progress
func (s *Session) Shaking() bool { return s.shake.frames > 0 }

// Start begins a round of mode, reading gameplay input from in
func (s *Session) Start(mode ModeConfig, in Actions) (*Round, error) {
	if s.round != nil {
		return nil, ErrSessionStarted
	}
	r, err := newRound(s, mode, in)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", mode.Name, err)
	}
	s.round = r
	return r, nil
}

// Round returns the running round, if any
func (s *Session) Round() *Round { return s.round }

// End tears down the running round
func (s *Session) End() {
	if s.round == nil {
		return
	}
	s.round.Teardown()
	s.round = nil
}
