package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"valet/sim"
)

// Input is a source of held actions that is sampled once per tick
type Input interface {
	sim.Actions
	Update()
}

// KeyBindings maps each action to the keys that trigger it for one player
type KeyBindings map[sim.Action][]ebiten.Key

// DefaultKeyBindings returns the keyboard layout for up to four players
// sharing one keyboard. Player 0 also owns the global menu keys.
func DefaultKeyBindings() [sim.MaxPlayers]KeyBindings {
	return [sim.MaxPlayers]KeyBindings{
		{
			sim.ActionSteerLeft:  {ebiten.KeyArrowLeft},
			sim.ActionSteerRight: {ebiten.KeyArrowRight},
			sim.ActionBrake:      {ebiten.KeyArrowDown},
			sim.ActionUp:         {ebiten.KeyArrowUp},
			sim.ActionDown:       {ebiten.KeyArrowDown},
			sim.ActionConfirm:    {ebiten.KeyEnter},
			sim.ActionBack:       {ebiten.KeyEscape},
			sim.ActionPause:      {ebiten.KeyP},
			sim.ActionDebug:      {ebiten.KeyF3},
		},
		{
			sim.ActionSteerLeft:  {ebiten.KeyA},
			sim.ActionSteerRight: {ebiten.KeyD},
			sim.ActionBrake:      {ebiten.KeyS},
			sim.ActionUp:         {ebiten.KeyW},
			sim.ActionDown:       {ebiten.KeyS},
			sim.ActionConfirm:    {ebiten.KeySpace},
			sim.ActionBack:       {ebiten.KeyQ},
			sim.ActionPause:      {ebiten.KeyTab},
		},
		{
			sim.ActionSteerLeft:  {ebiten.KeyJ},
			sim.ActionSteerRight: {ebiten.KeyL},
			sim.ActionBrake:      {ebiten.KeyK},
			sim.ActionUp:         {ebiten.KeyI},
			sim.ActionDown:       {ebiten.KeyK},
			sim.ActionConfirm:    {ebiten.KeyH},
			sim.ActionBack:       {ebiten.KeyU},
			sim.ActionPause:      {ebiten.KeyO},
		},
		{
			sim.ActionSteerLeft:  {ebiten.KeyNumpad4},
			sim.ActionSteerRight: {ebiten.KeyNumpad6},
			sim.ActionBrake:      {ebiten.KeyNumpad5},
			sim.ActionUp:         {ebiten.KeyNumpad8},
			sim.ActionDown:       {ebiten.KeyNumpad5},
			sim.ActionConfirm:    {ebiten.KeyNumpadEnter},
			sim.ActionBack:       {ebiten.KeyNumpad0},
			sim.ActionPause:      {ebiten.KeyNumpadAdd},
		},
	}
}

var gamepadButtons = map[sim.Action][]ebiten.StandardGamepadButton{
	sim.ActionSteerLeft:  {ebiten.StandardGamepadButtonLeftLeft},
	sim.ActionSteerRight: {ebiten.StandardGamepadButtonLeftRight},
	sim.ActionBrake:      {ebiten.StandardGamepadButtonRightLeft, ebiten.StandardGamepadButtonFrontBottomLeft},
	sim.ActionUp:         {ebiten.StandardGamepadButtonLeftTop},
	sim.ActionDown:       {ebiten.StandardGamepadButtonLeftBottom},
	sim.ActionConfirm:    {ebiten.StandardGamepadButtonRightBottom},
	sim.ActionBack:       {ebiten.StandardGamepadButtonRightRight},
	sim.ActionPause:      {ebiten.StandardGamepadButtonCenterRight},
	sim.ActionDebug:      {ebiten.StandardGamepadButtonCenterLeft},
}

// stickThreshold is the analog deflection that counts as a held direction
const stickThreshold = 0.5

// EbitenInput reads keyboard and gamepad state. The n-th connected
// standard gamepad drives player n in addition to that player's keys.
type EbitenInput struct {
	Bindings [sim.MaxPlayers]KeyBindings

	keys     []ebiten.Key
	pressed  map[ebiten.Key]bool
	gamepads []ebiten.GamepadID
}

// NewEbitenInput creates an input source with the default bindings
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{
		Bindings: DefaultKeyBindings(),
		keys:     make([]ebiten.Key, 0, 16),
		pressed:  make(map[ebiten.Key]bool),
	}
}

// Update samples the keyboard and the connected gamepads
func (in *EbitenInput) Update() {
	in.keys = inpututil.AppendPressedKeys(in.keys[:0])
	clear(in.pressed)
	for _, k := range in.keys {
		in.pressed[k] = true
	}
	in.gamepads = ebiten.AppendGamepadIDs(in.gamepads[:0])
}

// IsActionHeld implements sim.Actions
func (in *EbitenInput) IsActionHeld(action sim.Action, player int) bool {
	if player < 0 || player >= sim.MaxPlayers {
		return false
	}
	for _, k := range in.Bindings[player][action] {
		if in.pressed[k] {
			return true
		}
	}
	if player >= len(in.gamepads) {
		return false
	}
	id := in.gamepads[player]
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return false
	}
	for _, b := range gamepadButtons[action] {
		if ebiten.IsStandardGamepadButtonPressed(id, b) {
			return true
		}
	}
	x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	switch action {
	case sim.ActionSteerLeft:
		return x < -stickThreshold
	case sim.ActionSteerRight:
		return x > stickThreshold
	case sim.ActionUp:
		return y < -stickThreshold
	case sim.ActionDown:
		return y > stickThreshold
	}
	return false
}
