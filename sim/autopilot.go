package sim

import (
	"math"
)

const (
	autopilotDeadZone   = 6.0 // degrees
	autopilotBrakeRange = 80.0
)

// Autopilot drives every car of a round toward the nearest free space
type Autopilot struct {
	round   *Round
	held    map[actionKey]bool
	targets map[EntityID]int
}

// NewAutopilot creates an autopilot with no round attached
func NewAutopilot() *Autopilot {
	return &Autopilot{
		held:    make(map[actionKey]bool),
		targets: make(map[EntityID]int),
	}
}

// Attach points the autopilot at a round
func (a *Autopilot) Attach(r *Round) {
	a.round = r
	clear(a.targets)
	clear(a.held)
}

// IsActionHeld implements Actions
func (a *Autopilot) IsActionHeld(action Action, player int) bool {
	return a.held[actionKey{action, player}]
}

// Update decides the actions for this tick. Call before Round.Tick.
func (a *Autopilot) Update() {
	clear(a.held)
	if a.round == nil || a.round.phase != PhasePlaying {
		return
	}
	for _, v := range a.round.InFlight() {
		if v.Halted() {
			continue
		}
		a.steer(v)
	}
}

func (a *Autopilot) steer(v *Vehicle) {
	idx, ok := a.targets[v.ID]
	if !ok || a.taken(idx, v) {
		idx = a.pick(v)
		if idx < 0 {
			a.held[actionKey{ActionBrake, v.Player}] = true
			return
		}
		a.targets[v.ID] = idx
	}
	target := a.round.Spaces[idx]

	d := target.Pos.Sub(v.Body.Pos)
	dist := d.Len()
	bearing := radToDeg(math.Atan2(d.X, -d.Y))
	diff := WrapDegrees(bearing - v.Body.AngleDegrees())
	if v.Thrust() < 0 {
		diff = -diff
	}

	switch {
	case diff > autopilotDeadZone:
		a.held[actionKey{ActionSteerRight, v.Player}] = true
	case diff < -autopilotDeadZone:
		a.held[actionKey{ActionSteerLeft, v.Player}] = true
	}
	if dist < autopilotBrakeRange || math.Abs(diff) > 120 {
		a.held[actionKey{ActionBrake, v.Player}] = true
	}
}

// taken reports whether another car already sits in or targets space idx
func (a *Autopilot) taken(idx int, self *Vehicle) bool {
	s := a.round.Spaces[idx]
	for _, o := range a.round.Vehicles() {
		if o == self {
			continue
		}
		if o.Halted() && o.Body.Pos.Sub(s.Pos).Len() < a.round.Mode.Rules.Tolerance {
			return true
		}
		if t, ok := a.targets[o.ID]; ok && t == idx && !o.Halted() {
			return true
		}
	}
	return false
}

// pick returns the nearest free non-handicap space, or -1
func (a *Autopilot) pick(v *Vehicle) int {
	best, bestDist := -1, math.Inf(1)
	for i, s := range a.round.Spaces {
		if s.Kind == SpaceHandicap || a.taken(i, v) {
			continue
		}
		if d := s.Pos.Sub(v.Body.Pos).Len(); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
