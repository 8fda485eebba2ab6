package game

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"valet/sim"
)

// carSVG is a top-down car facing up in a 34x64 box. %s is the body fill.
const carSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 34 64" width="34" height="64">
  <rect x="1" y="1" width="32" height="62" rx="7" ry="7" fill="%s" stroke="#000000" stroke-width="1.5"/>
  <rect x="4" y="16" width="26" height="9" rx="2" ry="2" fill="#283440"/>
  <rect x="5" y="51" width="24" height="6" rx="2" ry="2" fill="#283440"/>
  <rect x="4" y="2" width="6" height="3" fill="#fff0aa"/>
  <rect x="24" y="2" width="6" height="3" fill="#fff0aa"/>
</svg>`

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// CarSprite rasterizes the car outline in the given body color at w x h
func CarSprite(body color.RGBA, w, h int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(fmt.Sprintf(carSVG, hexColor(body))))
	if err != nil {
		return nil, fmt.Errorf("parse car svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

// ArchetypeSprite renders the sprite of a car archetype at its body size
func ArchetypeSprite(id sim.ArchetypeID) (*image.RGBA, error) {
	a := sim.GetArchetype(id)
	return CarSprite(a.Color, int(a.Width), int(a.Length))
}
