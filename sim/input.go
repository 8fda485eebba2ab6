package sim

// Action is a logical input action
type Action int

const (
	ActionSteerLeft Action = iota
	ActionSteerRight
	ActionBrake
	ActionPause
	ActionDebug
	ActionConfirm
	ActionBack
	ActionUp
	ActionDown
	ActionCount
)

// String returns the action name
func (a Action) String() string {
	switch a {
	case ActionSteerLeft:
		return "SteerLeft"
	case ActionSteerRight:
		return "SteerRight"
	case ActionBrake:
		return "Brake"
	case ActionPause:
		return "Pause"
	case ActionDebug:
		return "Debug"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	}
	return "Unknown"
}

// Actions reports whether a logical action is held by a player.
// It is polled once per tick.
type Actions interface {
	IsActionHeld(action Action, player int) bool
}

type actionKey struct {
	action Action
	player int
}

// ScriptedInput is an Actions implementation driven by code
type ScriptedInput struct {
	held map[actionKey]bool
}

// NewScriptedInput creates an input with nothing held
func NewScriptedInput() *ScriptedInput {
	return &ScriptedInput{held: make(map[actionKey]bool)}
}

// Hold marks an action as held for a player
func (s *ScriptedInput) Hold(action Action, player int) {
	s.held[actionKey{action, player}] = true
}

// Release marks an action as released for a player
func (s *ScriptedInput) Release(action Action, player int) {
	delete(s.held, actionKey{action, player})
}

// Clear releases everything
func (s *ScriptedInput) Clear() {
	clear(s.held)
}

// IsActionHeld implements Actions
func (s *ScriptedInput) IsActionHeld(action Action, player int) bool {
	return s.held[actionKey{action, player}]
}

// DefaultMenuRepeat is the number of ticks between repeats of a held menu action
const DefaultMenuRepeat = 12

// MenuInput debounces menu navigation on top of raw held state.
// A press registers on the first tick it is held and then once every
// repeat ticks while it stays held.
type MenuInput struct {
	src    Actions
	repeat int
	ticks  map[actionKey]int
}

// NewMenuInput wraps src with menu debouncing
func NewMenuInput(src Actions, repeat int) *MenuInput {
	if repeat <= 0 {
		repeat = DefaultMenuRepeat
	}
	return &MenuInput{src: src, repeat: repeat, ticks: make(map[actionKey]int)}
}

// Update samples the source. Call once per tick before querying Pressed.
func (m *MenuInput) Update() {
	for a := Action(0); a < ActionCount; a++ {
		for p := 0; p < MaxPlayers; p++ {
			k := actionKey{a, p}
			if m.src.IsActionHeld(a, p) {
				m.ticks[k]++
			} else {
				delete(m.ticks, k)
			}
		}
	}
}

// Pressed reports a debounced press for this tick
func (m *MenuInput) Pressed(action Action, player int) bool {
	n := m.ticks[actionKey{action, player}]
	if n == 0 {
		return false
	}
	return (n-1)%m.repeat == 0
}

// PressedAny returns the first player with a debounced press, or NoPlayer
func (m *MenuInput) PressedAny(action Action) int {
	for p := 0; p < MaxPlayers; p++ {
		if m.Pressed(action, p) {
			return p
		}
	}
	return NoPlayer
}
