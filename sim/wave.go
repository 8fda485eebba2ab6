package sim

import "github.com/samber/lo"

// DefaultSettleThreshold is the per-axis speed under which a car counts as stopped
const DefaultSettleThreshold = 20.0

// WaveDecision is what the controller wants to do this tick
type WaveDecision int

const (
	WaveWait WaveDecision = iota
	WaveFire
	WaveFinish
)

// WaveController tracks the car budget and the wave in flight
type WaveController struct {
	CarsLeft        int
	Wave            int
	InFlight        []*Vehicle
	SettleThreshold float64

	firing bool
	done   bool
}

// NewWaveController creates a controller with a car budget
func NewWaveController(budget int) *WaveController {
	return &WaveController{CarsLeft: budget, SettleThreshold: DefaultSettleThreshold}
}

// ShouldFireNextWave reports whether the current wave has settled
func (w *WaveController) ShouldFireNextWave() bool {
	return lo.EveryBy(w.InFlight, func(v *Vehicle) bool {
		return v.Settled(w.SettleThreshold)
	})
}

// IsFiringNextRound reports whether a wave spawn is pending
func (w *WaveController) IsFiringNextRound() bool { return w.firing }

// Done reports whether the budget is spent and the last wave settled
func (w *WaveController) Done() bool { return w.done }

// Poll decides once per tick whether to spawn, finish or keep waiting.
// WaveFire marks a spawn as pending until Launched is called.
// WaveFinish is returned exactly once.
func (w *WaveController) Poll() WaveDecision {
	if w.done || w.firing || !w.ShouldFireNextWave() {
		return WaveWait
	}
	if w.CarsLeft <= 0 {
		w.done = true
		w.HaltInFlight()
		return WaveFinish
	}
	w.firing = true
	return WaveFire
}

// Launched records a spawned wave, halting the previous one
func (w *WaveController) Launched(cars []*Vehicle) {
	w.HaltInFlight()
	w.InFlight = cars
	w.CarsLeft -= len(cars)
	w.Wave++
	w.firing = false
}

// HaltInFlight stops every car of the current wave
func (w *WaveController) HaltInFlight() {
	for _, v := range w.InFlight {
		v.Halt()
	}
}

// Forget drops a vehicle from the wave, used when it despawns
func (w *WaveController) Forget(v *Vehicle) {
	w.InFlight = lo.Without(w.InFlight, v)
}
