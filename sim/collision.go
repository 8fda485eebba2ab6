package sim

import "math"

// manifold is the minimum translation between two overlapping boxes.
// Normal points from the first body toward the second.
type manifold struct {
	Normal Vec2
	Depth  float64
}

// Corners returns the four corners of the rotated body
func (b *Body) Corners() [4]Vec2 {
	dir := Forward(b.Angle)
	fwd := dir.Scale(b.H / 2)
	right := dir.Perp().Scale(b.W / 2)
	return [4]Vec2{
		b.Pos.Add(fwd).Add(right),
		b.Pos.Add(fwd).Sub(right),
		b.Pos.Sub(fwd).Sub(right),
		b.Pos.Sub(fwd).Add(right),
	}
}

func project(pts [4]Vec2, axis Vec2) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		d := p.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// collide runs a separating axis test between two oriented boxes
func collide(a, b *Body) (manifold, bool) {
	fa, fb := Forward(a.Angle), Forward(b.Angle)
	axes := [4]Vec2{fa, fa.Perp(), fb, fb.Perp()}
	ca, cb := a.Corners(), b.Corners()

	best := math.Inf(1)
	var normal Vec2
	for _, ax := range axes {
		minA, maxA := project(ca, ax)
		minB, maxB := project(cb, ax)
		o := math.Min(maxA, maxB) - math.Max(minA, minB)
		if o <= 0 {
			return manifold{}, false
		}
		if o < best {
			best = o
			normal = ax
		}
	}
	if b.Pos.Sub(a.Pos).Dot(normal) < 0 {
		normal = normal.Scale(-1)
	}
	return manifold{Normal: normal, Depth: best}, true
}

// Overlaps reports whether two bodies intersect, ignoring collision filters
func Overlaps(a, b *Body) bool {
	_, hit := collide(a, b)
	return hit
}
