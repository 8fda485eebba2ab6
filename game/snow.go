package game

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	snowFallSpeed = 40.0
	snowSway      = 18.0
)

var colorSnow = color.RGBA{240, 245, 255, 200}

type flake struct {
	x, y   float64
	speed  float64
	phase  float64
	radius float32
}

// Snow is the falling snow overlay for the Snow variant. Flakes wrap
// around the screen so the field stays evenly covered.
type Snow struct {
	flakes []flake
	w, h   float64
	t      float64
}

// NewSnow scatters count flakes over a w x h screen
func NewSnow(count, w, h int, rng *rand.Rand) *Snow {
	s := &Snow{flakes: make([]flake, count), w: float64(w), h: float64(h)}
	for i := range s.flakes {
		s.flakes[i] = flake{
			x:      rng.Float64() * s.w,
			y:      rng.Float64() * s.h,
			speed:  0.6 + rng.Float64()*0.8,
			phase:  rng.Float64() * 2 * math.Pi,
			radius: float32(1 + rng.Float64()*2),
		}
	}
	return s
}

// Update drifts every flake by dt seconds
func (s *Snow) Update(dt float64) {
	s.t += dt
	for i := range s.flakes {
		f := &s.flakes[i]
		f.y += snowFallSpeed * f.speed * dt
		f.x += math.Sin(s.t+f.phase) * snowSway * dt

		if f.y > s.h {
			f.y -= s.h
		}
		if f.x < 0 {
			f.x += s.w
		}
		if f.x > s.w {
			f.x -= s.w
		}
	}
}

// Draw paints the flakes in screen space
func (s *Snow) Draw(screen *ebiten.Image) {
	for _, f := range s.flakes {
		vector.DrawFilledCircle(screen, float32(f.x), float32(f.y), f.radius, colorSnow, true)
	}
}
