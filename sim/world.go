package sim

import (
	"math"

	"github.com/solarlune/resolv"
)

// Category is a collision category bitmask
type Category uint32

const (
	CategoryCar Category = 1 << iota
	CategoryWall
	CategorySensor
	CategoryCone
)

// CategoryAll matches every category
const CategoryAll = CategoryCar | CategoryWall | CategorySensor | CategoryCone

var categoryTags = []struct {
	cat Category
	tag string
}{
	{CategoryCar, "car"},
	{CategoryWall, "wall"},
	{CategorySensor, "sensor"},
	{CategoryCone, "cone"},
}

// Tags returns the resolv tags for every category set in c
func (c Category) Tags() []string {
	var tags []string
	for _, ct := range categoryTags {
		if c&ct.cat != 0 {
			tags = append(tags, ct.tag)
		}
	}
	return tags
}

const (
	spaceMargin = 256
	spaceCell   = 32

	// DefaultRestitution is the bounce applied to solid contacts
	DefaultRestitution = 0.8
)

// BodyDef describes a body. Shape and collision filter are applied together
// when the body is added so it never exists with a partial filter.
type BodyDef struct {
	Pos            Vec2
	Angle          float64 // radians
	Vel            Vec2
	W, H           float64
	Mass           float64
	Damping        float64
	AngularDamping float64
	Static         bool
	Sensor         bool
	Category       Category
	Mask           Category
	UserData       EntityID
}

// Body is a rigid oriented box in the world
type Body struct {
	Pos            Vec2
	Vel            Vec2
	Angle          float64 // radians
	AngularVel     float64
	W, H           float64
	Mass           float64
	Damping        float64
	AngularDamping float64
	Static         bool
	Sensor         bool
	Category       Category
	Mask           Category
	UserData       EntityID

	seq   uint64
	force Vec2
	obj   *resolv.Object
	world *World
}

// Thrust pushes the body along its forward vector
func (b *Body) Thrust(force float64) {
	b.force = b.force.Add(Forward(b.Angle).Scale(force))
}

// ClearForce drops any force queued for the next step
func (b *Body) ClearForce() {
	b.force = Vec2{}
}

// RotateRight sets the angular velocity in radians per second
func (b *Body) RotateRight(rate float64) {
	b.AngularVel = rate
}

// SetZeroRotation stops any spin
func (b *Body) SetZeroRotation() {
	b.AngularVel = 0
}

// ApplyImpulse changes velocity by j / mass
func (b *Body) ApplyImpulse(j Vec2) {
	inv := b.invMass()
	b.Vel = b.Vel.Add(j.Scale(inv))
}

// AngleDegrees returns the body angle in degrees wrapped to (-180, 180]
func (b *Body) AngleDegrees() float64 {
	return WrapDegrees(radToDeg(b.Angle))
}

// Forward returns the body's heading
func (b *Body) Forward() Vec2 {
	return Forward(b.Angle)
}

// Bounds returns the axis-aligned box enclosing the rotated body
func (b *Body) Bounds() Rect {
	ex, ey := b.extents()
	return Rect{X: b.Pos.X - ex, Y: b.Pos.Y - ey, W: ex * 2, H: ey * 2}
}

func (b *Body) extents() (float64, float64) {
	s, c := math.Abs(math.Sin(b.Angle)), math.Abs(math.Cos(b.Angle))
	hw, hh := b.W/2, b.H/2
	return c*hw + s*hh, s*hw + c*hh
}

func (b *Body) invMass() float64 {
	if b.Static || b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

// accepts reports whether the filters of both bodies admit each other
func (b *Body) accepts(o *Body) bool {
	return b.Mask&o.Category != 0 && o.Mask&b.Category != 0
}

func (b *Body) sync() {
	r := b.Bounds()
	origin := b.world.field
	b.obj.X = r.X - origin.X + spaceMargin
	b.obj.Y = r.Y - origin.Y + spaceMargin
	b.obj.W = r.W
	b.obj.H = r.H
	b.obj.Update()
}

// ContactFunc receives the two bodies of a contact
type ContactFunc func(a, b *Body)

type pairKey struct {
	lo, hi uint64
}

type contact struct {
	key  pairKey
	a, b *Body
}

// World is the shared rigid-body simulation
type World struct {
	Restitution float64
	Paused      bool

	field    Rect
	space    *resolv.Space
	bodies   []*Body
	nextSeq  uint64
	touching []contact
	onBegin  []ContactFunc
	onEnd    []ContactFunc
}

// NewWorld creates a world covering field, with a margin so bodies slightly
// outside the field still collide
func NewWorld(field Rect) *World {
	w := int(field.W) + spaceMargin*2
	h := int(field.H) + spaceMargin*2
	return &World{
		Restitution: DefaultRestitution,
		field:       field,
		space:       resolv.NewSpace(w, h, spaceCell, spaceCell),
	}
}

// Field returns the rectangle the world was built for
func (w *World) Field() Rect {
	return w.field
}

// AddBody creates a body from def and registers it for collisions
func (w *World) AddBody(def BodyDef) *Body {
	w.nextSeq++
	b := &Body{
		Pos:            def.Pos,
		Vel:            def.Vel,
		Angle:          def.Angle,
		W:              def.W,
		H:              def.H,
		Mass:           def.Mass,
		Damping:        def.Damping,
		AngularDamping: def.AngularDamping,
		Static:         def.Static,
		Sensor:         def.Sensor,
		Category:       def.Category,
		Mask:           def.Mask,
		UserData:       def.UserData,
		seq:            w.nextSeq,
		world:          w,
	}
	b.obj = resolv.NewObject(0, 0, def.W, def.H, def.Category.Tags()...)
	b.obj.Data = b
	w.space.Add(b.obj)
	b.sync()
	w.bodies = append(w.bodies, b)
	return b
}

// RemoveBody takes a body out of the world. Contacts involving it are dropped
// without an end event.
func (w *World) RemoveBody(b *Body) {
	for i, o := range w.bodies {
		if o == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	if b.obj.Space != nil {
		w.space.Remove(b.obj)
	}
	kept := make([]contact, 0, len(w.touching))
	for _, c := range w.touching {
		if c.a != b && c.b != b {
			kept = append(kept, c)
		}
	}
	w.touching = kept
}

// Bodies returns the live bodies in insertion order
func (w *World) Bodies() []*Body {
	return w.bodies
}

// OnBeginContact registers a callback fired when two bodies start touching
func (w *World) OnBeginContact(fn ContactFunc) {
	w.onBegin = append(w.onBegin, fn)
}

// OnEndContact registers a callback fired when two bodies stop touching
func (w *World) OnEndContact(fn ContactFunc) {
	w.onEnd = append(w.onEnd, fn)
}

// Step integrates all bodies by dt seconds, resolves collisions and fires
// contact events
func (w *World) Step(dt float64) {
	if w.Paused || dt <= 0 {
		return
	}

	for _, b := range w.bodies {
		if !b.Static {
			w.integrate(b, dt)
		}
		b.force = Vec2{}
	}

	current := w.detect()

	prev := make(map[pairKey]bool, len(w.touching))
	for _, c := range w.touching {
		prev[c.key] = true
	}
	now := make(map[pairKey]bool, len(current))
	for _, c := range current {
		now[c.key] = true
	}
	ended := w.touching
	w.touching = current

	for _, c := range current {
		if !prev[c.key] {
			for _, fn := range w.onBegin {
				fn(c.a, c.b)
			}
		}
	}
	for _, c := range ended {
		if !now[c.key] {
			for _, fn := range w.onEnd {
				fn(c.a, c.b)
			}
		}
	}
}

func (w *World) integrate(b *Body, dt float64) {
	inv := b.invMass()
	b.Vel = b.Vel.Add(b.force.Scale(inv * dt))
	b.Vel = b.Vel.Scale(math.Pow(1-clamp(b.Damping, 0, 1), dt))
	b.AngularVel *= math.Pow(1-clamp(b.AngularDamping, 0, 1), dt)
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	b.Angle += b.AngularVel * dt
	b.sync()
}

func (w *World) detect() []contact {
	var found []contact
	seen := make(map[pairKey]bool)
	for _, a := range w.bodies {
		if a.Static {
			continue
		}
		coll := a.obj.Check(0, 0)
		if coll == nil {
			continue
		}
		for _, o := range coll.Objects {
			b, ok := o.Data.(*Body)
			if !ok || b == a || !a.accepts(b) {
				continue
			}
			key := makePairKey(a, b)
			if seen[key] {
				continue
			}
			m, hit := collide(a, b)
			if !hit {
				continue
			}
			seen[key] = true
			found = append(found, contact{key: key, a: a, b: b})
			if !a.Sensor && !b.Sensor {
				w.resolve(a, b, m)
			}
		}
	}
	return found
}

// resolve separates two overlapping bodies and applies a restitution impulse
func (w *World) resolve(a, b *Body, m manifold) {
	invA, invB := a.invMass(), b.invMass()
	total := invA + invB
	if total == 0 {
		return
	}

	corr := m.Normal.Scale(m.Depth / total)
	a.Pos = a.Pos.Sub(corr.Scale(invA))
	b.Pos = b.Pos.Add(corr.Scale(invB))
	a.sync()
	b.sync()

	rv := b.Vel.Sub(a.Vel).Dot(m.Normal)
	if rv >= 0 {
		return
	}
	j := -(1 + w.Restitution) * rv / total
	imp := m.Normal.Scale(j)
	a.Vel = a.Vel.Sub(imp.Scale(invA))
	b.Vel = b.Vel.Add(imp.Scale(invB))
}

func makePairKey(a, b *Body) pairKey {
	if a.seq < b.seq {
		return pairKey{a.seq, b.seq}
	}
	return pairKey{b.seq, a.seq}
}
