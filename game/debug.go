package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"valet/sim"
)

var (
	colorDebugCar    = color.RGBA{0, 255, 0, 255}
	colorDebugStatic = color.RGBA{255, 0, 255, 255}
	colorDebugSensor = color.RGBA{0, 255, 255, 255}
	colorDebugSpace  = color.RGBA{255, 255, 0, 255}
)

// DebugState holds debug toggles
type DebugState struct {
	ShowBodies bool
}

// Toggle flips the body outline overlay
func (d *DebugState) Toggle() {
	d.ShowBodies = !d.ShowBodies
}

// DrawDebug outlines every physics body and the scoring radius of each space
func (r *Renderer) DrawDebug(screen *ebiten.Image, round *sim.Round) {
	cam := r.camera
	for _, b := range round.World.Bodies() {
		clr := colorDebugCar
		switch {
		case b.Sensor:
			clr = colorDebugSensor
		case b.Static:
			clr = colorDebugStatic
		}
		pts := b.Corners()
		for i := range pts {
			ax, ay := cam.WorldToScreen(pts[i])
			bx, by := cam.WorldToScreen(pts[(i+1)%4])
			vector.StrokeLine(screen, ax, ay, bx, by, 1, clr, false)
		}
	}

	tol := round.Mode.Rules.Tolerance
	for _, sp := range round.Spaces {
		x, y := cam.WorldToScreen(sp.Pos)
		vector.StrokeCircle(screen, x, y, float32(tol*cam.Scale), 1, colorDebugSpace, false)
	}

	for _, v := range round.InFlight() {
		x, y := cam.WorldToScreen(v.Body.Pos)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.0f w%.0f", v.Thrust(), v.WheelAngle()), int(x)+20, int(y))
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  bodies %d  %s  t=%s",
		ebiten.ActualTPS(), len(round.World.Bodies()), round.Phase(), round.Elapsed()), 8, int(cam.Height)-20)
}
