package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"valet/sim"
)

var (
	colorAsphalt   = color.RGBA{52, 54, 58, 255}
	colorWall      = color.RGBA{120, 110, 96, 255}
	colorLine      = color.RGBA{230, 230, 230, 255}
	colorHandicap  = color.RGBA{60, 120, 230, 255}
	colorVIP       = color.RGBA{240, 200, 40, 255}
	colorCoin      = color.RGBA{255, 215, 0, 255}
	colorCone      = color.RGBA{255, 120, 20, 255}
	colorBlast     = color.RGBA{255, 90, 40, 200}
	colorText      = color.RGBA{255, 255, 255, 255}
	colorDim       = color.RGBA{160, 160, 170, 255}
	colorHighlight = color.RGBA{255, 220, 90, 255}
	colorShade     = color.RGBA{0, 0, 0, 160}
)

var playerColors = [sim.MaxPlayers]color.RGBA{
	{214, 48, 49, 255},
	{9, 132, 227, 255},
	{0, 184, 148, 255},
	{253, 203, 110, 255},
}

// Camera maps field coordinates to the screen. The field is scaled to fit
// and centered; the shake offset is applied on top.
type Camera struct {
	Scale            float64
	OffsetX, OffsetY float64
	ShakeX, ShakeY   float64
	Width            float64 // Viewport width
	Height           float64 // Viewport height
}

// NewCamera creates a camera for a width x height viewport
func NewCamera(width, height float64) *Camera {
	return &Camera{Scale: 1, Width: width, Height: height}
}

// Fit scales and centers field inside the viewport
func (c *Camera) Fit(field sim.Rect) {
	if field.W <= 0 || field.H <= 0 {
		return
	}
	c.Scale = math.Min(c.Width/field.W, c.Height/field.H)
	c.OffsetX = (c.Width-field.W*c.Scale)/2 - field.X*c.Scale
	c.OffsetY = (c.Height-field.H*c.Scale)/2 - field.Y*c.Scale
}

// WorldToScreen converts field coordinates to screen coordinates
func (c *Camera) WorldToScreen(p sim.Vec2) (float32, float32) {
	return float32(p.X*c.Scale + c.OffsetX + c.ShakeX), float32(p.Y*c.Scale + c.OffsetY + c.ShakeY)
}

// Renderer draws rounds and menus
type Renderer struct {
	camera *Camera
	face   *text.GoXFace
	cars   map[sim.ArchetypeID]*ebiten.Image
}

// NewRenderer creates a new renderer
func NewRenderer(camera *Camera) *Renderer {
	return &Renderer{
		camera: camera,
		face:   text.NewGoXFace(basicfont.Face7x13),
		cars:   make(map[sim.ArchetypeID]*ebiten.Image),
	}
}

func (r *Renderer) carImage(id sim.ArchetypeID) *ebiten.Image {
	if img, ok := r.cars[id]; ok {
		return img
	}
	var img *ebiten.Image
	if sprite, err := ArchetypeSprite(id); err == nil {
		img = ebiten.NewImageFromImage(sprite)
	} else {
		a := sim.GetArchetype(id)
		img = ebiten.NewImage(int(a.Width), int(a.Length))
		img.Fill(a.Color)
	}
	r.cars[id] = img
	return img
}

// Text draws s with its top-left corner at x, y
func (r *Renderer) Text(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, r.face, op)
}

// TextCentered draws s horizontally centered on x
func (r *Renderer) TextCentered(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	w, _ := text.Measure(s, r.face, 0)
	r.Text(dst, s, x-w/2, y, clr)
}

// RenderRound draws the field and everything on it
func (r *Renderer) RenderRound(screen *ebiten.Image, round *sim.Round) {
	cam := r.camera
	cam.Fit(round.Level.Field())
	screen.Fill(colorAsphalt)

	for _, w := range round.Level.Walls {
		x, y := cam.WorldToScreen(sim.Vec2{X: w.X, Y: w.Y})
		vector.DrawFilledRect(screen, x, y, float32(w.W*cam.Scale), float32(w.H*cam.Scale), colorWall, false)
	}

	for _, sp := range round.Spaces {
		r.drawSpace(screen, sp)
	}
	for _, c := range round.Coins {
		if c.Taken {
			continue
		}
		x, y := cam.WorldToScreen(c.Body.Pos)
		vector.DrawFilledCircle(screen, x, y, float32(c.Body.W/2*cam.Scale), colorCoin, true)
	}
	for _, b := range round.Cones {
		x, y := cam.WorldToScreen(b.Pos)
		vector.DrawFilledCircle(screen, x, y, float32(b.W/2*cam.Scale), colorCone, true)
	}
	for _, v := range round.Vehicles() {
		r.drawVehicle(screen, v)
	}
	for _, bl := range round.Blasts {
		x, y := cam.WorldToScreen(bl.Pos)
		vector.StrokeCircle(screen, x, y, float32(bl.Radius*cam.Scale), 4, colorBlast, true)
	}

	r.drawReveals(screen, round)
}

func (r *Renderer) drawSpace(screen *ebiten.Image, sp *sim.ParkingSpace) {
	clr := colorLine
	switch sp.Kind {
	case sim.SpaceHandicap:
		clr = colorHandicap
	case sim.SpaceVIP:
		clr = colorVIP
	}
	pts := boxCorners(sp.Pos, sp.Angle*math.Pi/180, sp.W, sp.H)
	// open end faces the lane: skip the edge between the two front corners
	for i := 1; i < 4; i++ {
		ax, ay := r.camera.WorldToScreen(pts[i])
		bx, by := r.camera.WorldToScreen(pts[(i+1)%4])
		vector.StrokeLine(screen, ax, ay, bx, by, 2, clr, true)
	}
}

func (r *Renderer) drawVehicle(screen *ebiten.Image, v *sim.Vehicle) {
	img := r.carImage(v.Archetype.ID)
	b := v.Body
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(iw)/2, -float64(ih)/2)
	op.GeoM.Scale(b.W/float64(iw), b.H/float64(ih))
	op.GeoM.Rotate(b.Angle)
	op.GeoM.Scale(r.camera.Scale, r.camera.Scale)
	x, y := r.camera.WorldToScreen(b.Pos)
	op.GeoM.Translate(float64(x), float64(y))
	if v.Halted() && v.Owned() {
		op.ColorScale.Scale(0.85, 0.85, 0.85, 1)
	}
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// drawReveals labels every space scored so far with its points
func (r *Renderer) drawReveals(screen *ebiten.Image, round *sim.Round) {
	results := round.Results()
	n := min(round.Revealed(), len(results))
	for _, res := range results[:n] {
		if res.Space < 0 || res.Space >= len(round.Spaces) {
			continue
		}
		sp := round.Spaces[res.Space]
		x, y := r.camera.WorldToScreen(sp.Pos)
		label := fmt.Sprintf("%+d", res.Score)
		w, h := text.Measure(label, r.face, 0)
		vector.DrawFilledRect(screen, x-float32(w/2)-3, y-float32(h/2)-2, float32(w)+6, float32(h)+4, colorShade, false)
		r.TextCentered(screen, label, float64(x), float64(y)-h/2, playerColors[res.Player%sim.MaxPlayers])
	}
}

// RenderHUD draws the per-player totals and round status along the top edge
func (r *Renderer) RenderHUD(screen *ebiten.Image, s *sim.Session, round *sim.Round) {
	totals := s.Totals()
	x := 16.0
	for _, p := range round.Players() {
		r.Text(screen, fmt.Sprintf("P%d %s: %d", p+1, sim.ColorForPlayer(p), totals[p]), x, 4, playerColors[p])
		x += 150
	}
	status := fmt.Sprintf("%s  wave %d  cars left %d", round.Level.Name, round.Wave(), round.CarsLeft())
	if names := round.Variants.Names(); len(names) > 0 {
		status += fmt.Sprintf("  %v", names)
	}
	r.Text(screen, status, x+20, 4, colorDim)

	if round.Phase() == sim.PhaseSettling {
		r.TextCentered(screen, "Parking...", r.camera.Width/2, 40, colorHighlight)
	}
}

// RenderPause draws the pause menu over the round
func (r *Renderer) RenderPause(screen *ebiten.Image, menu *sim.PauseMenu) {
	vector.DrawFilledRect(screen, 0, 0, float32(r.camera.Width), float32(r.camera.Height), colorShade, false)
	cx, cy := r.camera.Width/2, r.camera.Height/2
	r.TextCentered(screen, fmt.Sprintf("Paused by player %d", menu.Owner()+1), cx, cy-50, colorText)
	for i, item := range sim.PauseItems {
		clr := color.Color(colorDim)
		if i == menu.Selected {
			clr = colorHighlight
			item = "> " + item + " <"
		}
		r.TextCentered(screen, item, cx, cy+float64(i)*20, clr)
	}
}

// Results is what the results screen shows besides the round itself
type Results struct {
	Message string
	Totals  [sim.MaxPlayers]int
	Players []int
	Best    *int
	Top     []int
}

// RenderResults draws the round complete panel
func (r *Renderer) RenderResults(screen *ebiten.Image, res Results) {
	cx, cy := r.camera.Width/2, r.camera.Height/2
	pw, ph := 360.0, 120.0+float64(len(res.Players)+len(res.Top))*18
	vector.DrawFilledRect(screen, float32(cx-pw/2), float32(cy-ph/2), float32(pw), float32(ph), colorShade, false)
	vector.StrokeRect(screen, float32(cx-pw/2), float32(cy-ph/2), float32(pw), float32(ph), 2, colorLine, false)

	y := cy - ph/2 + 14
	r.TextCentered(screen, res.Message, cx, y, colorHighlight)
	y += 28
	for _, p := range res.Players {
		r.TextCentered(screen, fmt.Sprintf("Player %d: %d", p+1, res.Totals[p]), cx, y, playerColors[p])
		y += 18
	}
	if res.Best != nil {
		y += 6
		r.TextCentered(screen, fmt.Sprintf("Best: %d", *res.Best), cx, y, colorText)
		y += 18
		for i, s := range res.Top {
			r.TextCentered(screen, fmt.Sprintf("%d. %d", i+1, s), cx, y, colorDim)
			y += 18
		}
	}
	r.TextCentered(screen, "Press Confirm", cx, cy+ph/2-22, colorDim)
}

// Title is the state shown on the title screen
type Title struct {
	Modes    []string
	Selected int
	Joined   [sim.MaxPlayers]bool
	Err      string
}

// RenderTitle draws the title screen
func (r *Renderer) RenderTitle(screen *ebiten.Image, t Title) {
	screen.Fill(colorAsphalt)
	cx := r.camera.Width / 2
	y := r.camera.Height/3 - 40
	r.TextCentered(screen, "V A L E T", cx, y, colorHighlight)
	y += 40
	for i, m := range t.Modes {
		clr := color.Color(colorDim)
		if i == t.Selected {
			clr = colorHighlight
			m = "> " + m + " <"
		}
		r.TextCentered(screen, m, cx, y, clr)
		y += 20
	}
	y += 30
	for p := 0; p < sim.MaxPlayers; p++ {
		label := fmt.Sprintf("Player %d: press Confirm to join", p+1)
		clr := color.Color(colorDim)
		if t.Joined[p] {
			label = fmt.Sprintf("Player %d: %s, ready", p+1, sim.ColorForPlayer(p))
			clr = playerColors[p]
		}
		r.TextCentered(screen, label, cx, y, clr)
		y += 18
	}
	if t.Err != "" {
		r.TextCentered(screen, t.Err, cx, y+20, colorCone)
	}
}

// boxCorners returns the corners of a w x h box centered on pos and
// rotated by angle radians, starting front-left and going clockwise.
func boxCorners(pos sim.Vec2, angle, w, h float64) [4]sim.Vec2 {
	dir := sim.Forward(angle)
	fwd := dir.Scale(h / 2)
	right := dir.Perp().Scale(w / 2)
	return [4]sim.Vec2{
		pos.Add(fwd).Sub(right),
		pos.Add(fwd).Add(right),
		pos.Sub(fwd).Add(right),
		pos.Sub(fwd).Sub(right),
	}
}
