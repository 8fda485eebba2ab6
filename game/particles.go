package game

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"valet/sim"
)

// Particle is a single exhaust puff in field coordinates
type Particle struct {
	pos      sim.Vec2
	vel      sim.Vec2
	age      float64 // seconds
	lifetime float64 // seconds
	size     float64
}

// IsAlive returns true if the particle is still alive
func (p *Particle) IsAlive() bool {
	return p.age < p.lifetime
}

// Exhaust emits smoke from the tail of every car that still has thrust
type Exhaust struct {
	particles    []Particle
	maxParticles int
	rate         float64 // puffs per second at full thrust
	timers       map[sim.EntityID]float64
	rng          *rand.Rand
}

var colorExhaust = color.NRGBA{180, 180, 180, 140}

// NewExhaust creates an exhaust system
func NewExhaust(rng *rand.Rand) *Exhaust {
	return &Exhaust{
		maxParticles: 400,
		rate:         30,
		timers:       make(map[sim.EntityID]float64),
		rng:          rng,
	}
}

// Update emits for the cars in flight and ages existing puffs
func (e *Exhaust) Update(dt float64, cars []*sim.Vehicle) {
	for _, v := range cars {
		if v.Halted() || v.Thrust() <= 0 {
			delete(e.timers, v.ID)
			continue
		}
		strength := math.Min(1, v.Thrust()/v.Archetype.Thrust)
		e.timers[v.ID] += dt * strength
		n := int(e.rate * e.timers[v.ID])
		if n == 0 {
			continue
		}
		e.timers[v.ID] -= float64(n) / e.rate
		for i := 0; i < n && len(e.particles) < e.maxParticles; i++ {
			e.emit(v)
		}
	}

	alive := e.particles[:0]
	for _, p := range e.particles {
		p.age += dt
		p.pos = p.pos.Add(p.vel.Scale(dt))
		if p.IsAlive() {
			alive = append(alive, p)
		}
	}
	e.particles = alive
}

func (e *Exhaust) emit(v *sim.Vehicle) {
	b := v.Body
	back := b.Forward().Scale(-b.H / 2)
	spread := (e.rng.Float64() - 0.5) * 0.6
	dir := sim.Forward(b.Angle + math.Pi + spread)
	speed := 20 + e.rng.Float64()*30
	e.particles = append(e.particles, Particle{
		pos:      b.Pos.Add(back),
		vel:      dir.Scale(speed).Add(b.Vel.Scale(0.3)),
		lifetime: 0.4 + e.rng.Float64()*0.4,
		size:     2 + e.rng.Float64()*2,
	})
}

// Len returns the number of live puffs
func (e *Exhaust) Len() int { return len(e.particles) }

// Draw renders the puffs, fading them out with age
func (e *Exhaust) Draw(screen *ebiten.Image, cam *Camera) {
	for _, p := range e.particles {
		fade := 1 - p.age/p.lifetime
		c := colorExhaust
		c.A = uint8(float64(c.A) * fade)
		x, y := cam.WorldToScreen(p.pos)
		vector.DrawFilledCircle(screen, x, y, float32(p.size*(2-fade)*cam.Scale), c, true)
	}
}
