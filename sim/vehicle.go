package sim

import (
	"math"
	"time"
)

const (
	// TurnRateScale converts turn angle units to radians per second
	TurnRateScale = 0.05
	// MinTurnWheelPercent keeps a sliver of steering at zero thrust
	MinTurnWheelPercent = 0.05
	// CollisionIFrames is the wall-collision cooldown in ticks
	CollisionIFrames = 10
	// OffscreenDespawnDelay is how long a car that left the field lingers
	OffscreenDespawnDelay = 2000 * time.Millisecond

	turningBleedMult = 3.0
	wallBaseLoss     = 50.0
	carBumpLoss      = 20.0
)

// Shaker receives camera shake requests
type Shaker interface {
	Shake(frames, strength int)
}

// Handling holds per-round modifiers to vehicle control
type Handling struct {
	NoBrakes     bool
	RollingScale float64
	TurnScale    float64
}

// DefaultHandling leaves the archetype untouched
func DefaultHandling() Handling {
	return Handling{RollingScale: 1, TurnScale: 1}
}

// Vehicle is a controlled car
type Vehicle struct {
	ID        EntityID
	Archetype Archetype
	Player    int
	Body      *Body
	Handling  Handling
	Shaker    Shaker

	thrust           float64
	baseThrust       float64
	brakeForce       float64
	manualBrakeForce float64
	turnAngle        float64
	reverseThrustMod float64
	thrustLossMult   float64

	halted           bool
	collisionIFrames int
	wheelAngle       float64
}

// SpawnVehicle creates a vehicle body in the world. angle is in degrees.
func SpawnVehicle(w *World, ids *IDSource, arch Archetype, pos, vel Vec2, angle float64, player int) *Vehicle {
	arch = arch.withDefaults()
	id := ids.Next()
	body := w.AddBody(BodyDef{
		Pos:            pos,
		Angle:          degToRad(angle),
		Vel:            vel,
		W:              arch.Width,
		H:              arch.Length,
		Mass:           arch.Mass,
		Damping:        arch.Damping,
		AngularDamping: DefaultAngularDamping,
		Category:       CategoryCar,
		Mask:           CategoryAll,
		UserData:       id,
	})
	return &Vehicle{
		ID:               id,
		Archetype:        arch,
		Player:           player,
		Body:             body,
		Handling:         DefaultHandling(),
		thrust:           arch.Thrust,
		baseThrust:       arch.Thrust,
		brakeForce:       arch.BrakeForce,
		manualBrakeForce: arch.ManualBrakeForce,
		turnAngle:        arch.TurnAngle,
		reverseThrustMod: arch.ReverseThrustMod,
		thrustLossMult:   arch.ThrustLossMult,
	}
}

// Thrust returns the current signed forward force
func (v *Vehicle) Thrust() float64 { return v.thrust }

// Halted reports whether the vehicle has stopped for good
func (v *Vehicle) Halted() bool { return v.halted }

// WheelAngle returns the visual front-wheel angle
func (v *Vehicle) WheelAngle() float64 { return v.wheelAngle }

// Owned reports whether a player drives this vehicle
func (v *Vehicle) Owned() bool { return v.Player >= 0 }

// Tick applies one step of input and thrust. It reports whether the vehicle
// left the field this tick, in which case it has been halted.
func (v *Vehicle) Tick(in Actions, field Rect) bool {
	if v.collisionIFrames > 0 {
		v.collisionIFrames--
	}
	if v.halted {
		return false
	}

	left := in.IsActionHeld(ActionSteerLeft, v.Player)
	right := in.IsActionHeld(ActionSteerRight, v.Player)

	var angle float64
	switch {
	case left && !right:
		angle = -v.turnAngle
	case right && !left:
		angle = v.turnAngle
	}

	if angle != 0 {
		turn := v.dampenTurn(angle * v.Handling.TurnScale)
		v.Body.RotateRight(turn * TurnRateScale)
		v.wheelAngle = turn / 2
	} else {
		v.Body.SetZeroRotation()
		v.wheelAngle = 0
	}

	v.Body.Thrust(v.thrust)

	if !v.Handling.NoBrakes && in.IsActionHeld(ActionBrake, v.Player) {
		v.loseThrust(v.manualBrakeForce)
	}

	bleed := v.brakeForce * v.Handling.RollingScale
	if left || right {
		bleed *= turningBleedMult
	}
	v.loseThrust(bleed)

	if v.offscreen(field) {
		v.Halt()
		return true
	}
	return false
}

// dampenTurn scales steering by how much thrust is left, counter-steering
// while reversing
func (v *Vehicle) dampenTurn(angle float64) float64 {
	pct := MinTurnWheelPercent
	if v.baseThrust != 0 {
		pct = math.Max(MinTurnWheelPercent, math.Abs(v.thrust)/v.baseThrust)
	}
	turn := angle * pct
	if v.thrust < 0 {
		turn = -turn
	}
	return turn
}

func (v *Vehicle) offscreen(field Rect) bool {
	b := v.Body.Bounds()
	return b.X > field.X+field.W || b.X+b.W < field.X ||
		b.Y > field.Y+field.H || b.Y+b.H < field.Y
}

// HandleWallCollision reacts to hitting a wall. Glancing hits bleed thrust,
// square hits bounce the car into reverse.
func (v *Vehicle) HandleWallCollision() {
	if v.halted || v.collisionIFrames > 0 {
		return
	}
	v.collisionIFrames = CollisionIFrames

	clean := math.Mod(math.Abs(v.Body.AngleDegrees()), 90)
	if clean >= 20 && clean <= 70 {
		loss := wallBaseLoss
		if clean >= 30 && clean <= 60 {
			loss -= 10
		}
		if clean >= 40 && clean <= 50 {
			loss -= 20
		}
		v.loseThrust(loss)
		return
	}

	v.reverseThrust()
	v.shake(5, 5)
}

// HandleCarCollision reacts to bumping another car
func (v *Vehicle) HandleCarCollision() {
	if v.halted {
		return
	}
	v.loseThrust(carBumpLoss)
	v.shake(2, 1)
}

// loseThrust bleeds thrust toward zero, much faster while reversing
func (v *Vehicle) loseThrust(amount float64) {
	lost := amount * v.thrustLossMult
	if v.thrust < 0 {
		v.thrust = math.Min(0, v.thrust+lost*v.reverseThrustMod)
		return
	}
	v.thrust = math.Max(0, v.thrust-lost)
}

func (v *Vehicle) reverseThrust() {
	v.thrust = -v.thrust / v.reverseThrustMod
}

// Halt stops the vehicle permanently
func (v *Vehicle) Halt() {
	if v.halted {
		return
	}
	v.halted = true
	v.thrust = 0
	v.wheelAngle = 0
	v.Body.Vel = Vec2{}
	v.Body.ClearForce()
	v.Body.SetZeroRotation()
	v.Body.AngularDamping = HaltedAngularDamping
}

// Settled reports whether the vehicle moves slower than threshold on both axes
func (v *Vehicle) Settled(threshold float64) bool {
	return math.Abs(v.Body.Vel.X) < threshold && math.Abs(v.Body.Vel.Y) < threshold
}

func (v *Vehicle) shake(frames, strength int) {
	if v.Shaker != nil {
		v.Shaker.Shake(frames, strength)
	}
}
