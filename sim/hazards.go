package sim

import (
	"math"
	"time"
)

// Coin is a FreeMoney pickup
type Coin struct {
	ID    EntityID
	Body  *Body
	Value int
	Taken bool
}

// Blast is a bomb detonation kept around briefly for drawing
type Blast struct {
	Pos    Vec2
	Radius float64
	TTL    float64
}

const (
	CoinValue = 5
	coinCount = 3
	coinSize  = 18.0

	coneCount = 6
	coneSize  = 14.0

	obstacleCount = 3

	bombRadius   = 140.0
	bombForce    = 600.0
	bombMinDelay = 4 * time.Second
	bombMaxDelay = 8 * time.Second
	blastTTL     = 0.5

	parkingJitter = 6.0
)

// randomZonePoint returns a point in the open zone at least clearance away
// from every space center, falling back to the last draw
func (r *Round) randomZonePoint(clearance float64) Vec2 {
	rng := r.session.rng
	z := r.Level.Zone
	var p Vec2
	for range 20 {
		p = Vec2{z.X + rng.Float64()*z.W, z.Y + rng.Float64()*z.H}
		free := true
		for _, s := range r.Spaces {
			if s.Pos.Sub(p).Len() < clearance {
				free = false
				break
			}
		}
		if free {
			return p
		}
	}
	return p
}

func (r *Round) jitterSpaces() {
	rng := r.session.rng
	for _, s := range r.Spaces {
		s.Pos = s.Pos.Add(Vec2{(rng.Float64()*2 - 1) * parkingJitter, (rng.Float64()*2 - 1) * parkingJitter})
		if rng.Intn(2) == 1 {
			s.Angle = WrapDegrees(s.Angle + 180)
		}
	}
}

// placeObstacles parks unowned cars in random spaces
func (r *Round) placeObstacles() {
	rng := r.session.rng
	arch := GetArchetype(ArchetypeSedan)
	order := rng.Perm(len(r.Spaces))
	for _, idx := range order[:min(obstacleCount, len(order))] {
		s := r.Spaces[idx]
		v := SpawnVehicle(r.World, &r.session.ids, arch, s.Pos, Vec2{}, s.Angle, NoPlayer)
		v.Halt()
		r.addVehicle(v)
	}
}

func (r *Round) placeCones() {
	for range coneCount {
		b := r.World.AddBody(BodyDef{
			Pos:            r.randomZonePoint(SpaceLength),
			W:              coneSize,
			H:              coneSize,
			Mass:           0.3,
			Damping:        0.9,
			AngularDamping: 0.9,
			Category:       CategoryCone,
			Mask:           CategoryCar | CategoryWall | CategoryCone,
			UserData:       r.session.ids.Next(),
		})
		r.Cones = append(r.Cones, b)
	}
}

func (r *Round) placeCoins() {
	for range coinCount {
		id := r.session.ids.Next()
		b := r.World.AddBody(BodyDef{
			Pos:      r.randomZonePoint(SpaceWidth),
			W:        coinSize,
			H:        coinSize,
			Static:   true,
			Sensor:   true,
			Category: CategorySensor,
			Mask:     CategoryCar,
			UserData: id,
		})
		r.Coins = append(r.Coins, &Coin{ID: id, Body: b, Value: CoinValue})
	}
}

func (r *Round) collectCoin(v *Vehicle, sensor *Body) {
	if !v.Owned() {
		return
	}
	for _, c := range r.Coins {
		if c.Body != sensor || c.Taken {
			continue
		}
		c.Taken = true
		r.World.RemoveBody(sensor)
		r.session.AddScore(v.Player, c.Value)
		r.log.Debug().Int("player", v.Player).Int("value", c.Value).Msg("coin collected")
		return
	}
}

func (r *Round) scheduleBomb() {
	rng := r.session.rng
	delay := bombMinDelay + time.Duration(rng.Int63n(int64(bombMaxDelay-bombMinDelay)))
	r.sched.After(delay, func() {
		if r.phase != PhasePlaying {
			return
		}
		r.detonate(r.randomZonePoint(0))
		r.scheduleBomb()
	})
}

// detonate pushes every moving body away from at, harder the closer it is
func (r *Round) detonate(at Vec2) {
	for _, b := range r.World.Bodies() {
		if b.Static {
			continue
		}
		d := b.Pos.Sub(at)
		dist := d.Len()
		if dist == 0 || dist >= bombRadius {
			continue
		}
		falloff := 1 - dist/bombRadius
		b.ApplyImpulse(d.Normalize().Scale(bombForce * falloff * b.Mass))
	}
	r.Blasts = append(r.Blasts, Blast{Pos: at, Radius: bombRadius, TTL: blastTTL})
	r.session.Shake(12, 8)
	r.log.Debug().Float64("x", at.X).Float64("y", at.Y).Msg("bomb")
}

func (r *Round) tickBlasts(dt float64) {
	kept := r.Blasts[:0]
	for _, b := range r.Blasts {
		b.TTL = math.Max(0, b.TTL-dt)
		if b.TTL > 0 {
			kept = append(kept, b)
		}
	}
	r.Blasts = kept
}
