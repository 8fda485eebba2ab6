package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorld_ThrustAndDamping(t *testing.T) {
	w := NewWorld(Rect{W: 500, H: 500})
	b := w.AddBody(BodyDef{Pos: Vec2{250, 250}, W: 10, H: 10, Mass: 2, Category: CategoryCar, Mask: CategoryAll})

	b.Thrust(400)
	w.Step(testDT)
	assert.InDelta(t, 0, b.Vel.X, 1e-9)
	assert.InDelta(t, -200*testDT, b.Vel.Y, 1e-9, "forward is up at angle zero")

	b.Vel = Vec2{100, 0}
	b.Damping = 0.8
	w.Step(1)
	assert.InDelta(t, 20, b.Vel.X, 1e-9)
}

func TestWorld_Rotation(t *testing.T) {
	w := NewWorld(Rect{W: 500, H: 500})
	b := w.AddBody(BodyDef{Pos: Vec2{250, 250}, W: 10, H: 10, Mass: 1, Category: CategoryCar, Mask: CategoryAll})

	b.RotateRight(math.Pi / 2)
	w.Step(1)
	assert.InDelta(t, 90, b.AngleDegrees(), 1e-9)

	b.SetZeroRotation()
	w.Step(1)
	assert.InDelta(t, 90, b.AngleDegrees(), 1e-9)
}

func TestWorld_PausedDoesNotStep(t *testing.T) {
	w := NewWorld(Rect{W: 500, H: 500})
	b := w.AddBody(BodyDef{Pos: Vec2{250, 250}, Vel: Vec2{100, 0}, W: 10, H: 10, Mass: 1, Category: CategoryCar, Mask: CategoryAll})
	w.Paused = true
	w.Step(testDT)
	assert.Equal(t, Vec2{250, 250}, b.Pos)
}

func TestWorld_WallContactBouncesOnce(t *testing.T) {
	w := NewWorld(Rect{W: 400, H: 200})
	car := w.AddBody(BodyDef{Pos: Vec2{50, 100}, Vel: Vec2{300, 0}, W: 20, H: 20, Mass: 1, Category: CategoryCar, Mask: CategoryAll})
	wall := w.AddBody(BodyDef{Pos: Vec2{110, 100}, W: 20, H: 100, Static: true, Category: CategoryWall, Mask: CategoryCar})

	var begins, ends int
	w.OnBeginContact(func(a, b *Body) {
		begins++
		assert.ElementsMatch(t, []*Body{car, wall}, []*Body{a, b})
	})
	w.OnEndContact(func(a, b *Body) { ends++ })

	for i := 0; i < 60; i++ {
		w.Step(testDT)
	}
	assert.Equal(t, 1, begins)
	assert.Equal(t, 1, ends)
	assert.Less(t, car.Vel.X, 0.0)
	assert.InDelta(t, 300*DefaultRestitution, -car.Vel.X, 1e-6)
	assert.Equal(t, Vec2{110, 100}, wall.Pos)
}

func TestWorld_SensorsDoNotPush(t *testing.T) {
	w := NewWorld(Rect{W: 400, H: 200})
	car := w.AddBody(BodyDef{Pos: Vec2{50, 100}, Vel: Vec2{300, 0}, W: 20, H: 20, Mass: 1, Category: CategoryCar, Mask: CategoryAll})
	w.AddBody(BodyDef{Pos: Vec2{90, 100}, W: 20, H: 20, Static: true, Sensor: true, Category: CategorySensor, Mask: CategoryCar})

	var begins int
	w.OnBeginContact(func(a, b *Body) { begins++ })
	for i := 0; i < 30; i++ {
		w.Step(testDT)
	}
	assert.Equal(t, 1, begins)
	assert.InDelta(t, 300, car.Vel.X, 1e-9)
}

func TestWorld_MaskFilters(t *testing.T) {
	w := NewWorld(Rect{W: 400, H: 200})
	w.AddBody(BodyDef{Pos: Vec2{50, 100}, Vel: Vec2{300, 0}, W: 20, H: 20, Mass: 1, Category: CategoryCone, Mask: CategoryCar})
	w.AddBody(BodyDef{Pos: Vec2{90, 100}, W: 20, H: 100, Static: true, Category: CategoryWall, Mask: CategoryCar})

	var begins int
	w.OnBeginContact(func(a, b *Body) { begins++ })
	for i := 0; i < 30; i++ {
		w.Step(testDT)
	}
	assert.Zero(t, begins)
}

func TestWorld_CarsPushEachOther(t *testing.T) {
	w := NewWorld(Rect{W: 400, H: 200})
	a := w.AddBody(BodyDef{Pos: Vec2{50, 100}, Vel: Vec2{200, 0}, W: 20, H: 20, Mass: 1, Category: CategoryCar, Mask: CategoryAll})
	b := w.AddBody(BodyDef{Pos: Vec2{100, 100}, W: 20, H: 20, Mass: 1, Category: CategoryCar, Mask: CategoryAll})

	for i := 0; i < 30; i++ {
		w.Step(testDT)
	}
	assert.Greater(t, b.Vel.X, a.Vel.X)
	assert.Greater(t, b.Pos.X, 100.0)
}

func TestWorld_RemoveBodyDuringContact(t *testing.T) {
	w := NewWorld(Rect{W: 400, H: 200})
	w.AddBody(BodyDef{Pos: Vec2{50, 100}, Vel: Vec2{300, 0}, W: 20, H: 20, Mass: 1, Category: CategoryCar, Mask: CategoryAll})
	coin := w.AddBody(BodyDef{Pos: Vec2{90, 100}, W: 20, H: 20, Static: true, Sensor: true, Category: CategorySensor, Mask: CategoryCar})

	w.OnBeginContact(func(a, b *Body) {
		if a == coin || b == coin {
			w.RemoveBody(coin)
		}
	})
	require.NotPanics(t, func() {
		for i := 0; i < 30; i++ {
			w.Step(testDT)
		}
	})
	assert.Len(t, w.Bodies(), 1)
}

func TestCollide_RotatedBoxes(t *testing.T) {
	w := NewWorld(Rect{W: 200, H: 200})
	a := w.AddBody(BodyDef{Pos: Vec2{50, 50}, W: 10, H: 10, Static: true})
	b := w.AddBody(BodyDef{Pos: Vec2{62, 50}, Angle: math.Pi / 4, W: 10, H: 10, Static: true})
	assert.True(t, Overlaps(a, b), "diamond corner reaches into the square")

	b.Pos = Vec2{63, 50}
	assert.False(t, Overlaps(a, b))

	b.Angle = 0
	b.Pos = Vec2{59, 50}
	m, hit := collide(a, b)
	require.True(t, hit)
	assert.InDelta(t, 1, m.Depth, 1e-9)
	assert.InDelta(t, 1, m.Normal.X, 1e-9)
}

func TestBody_Bounds(t *testing.T) {
	w := NewWorld(Rect{W: 200, H: 200})
	b := w.AddBody(BodyDef{Pos: Vec2{100, 100}, Angle: math.Pi / 2, W: 20, H: 60, Static: true})
	r := b.Bounds()
	assert.InDelta(t, 60, r.W, 1e-9)
	assert.InDelta(t, 20, r.H, 1e-9)
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct{ in, out float64 }{
		{0, 0}, {180, 180}, {-180, 180}, {190, -170}, {-190, 170}, {540, 180}, {725, 5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.out, WrapDegrees(tt.in), 1e-9, "WrapDegrees(%v)", tt.in)
	}
}
