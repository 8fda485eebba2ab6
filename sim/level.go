package sim

import (
	"fmt"
	"sort"
)

// SpawnPoint is where a wave car enters the field
type SpawnPoint struct {
	Pos     Vec2
	Angle   float64 // degrees
	MinVelX float64
	MaxVelX float64
	Player  int // owning player tag for games with more than two players
}

// SpaceDef is a parking space position from level data
type SpaceDef struct {
	Pos   Vec2
	Angle float64 // degrees
}

// Level is the static layout of a map
type Level struct {
	Name   string
	Width  float64
	Height float64
	Walls  []Rect
	Spaces []SpaceDef
	Spawns []SpawnPoint
	// Zone is the open interior used to place hazards and pickups
	Zone Rect
}

// Field returns the visible playfield
func (l Level) Field() Rect {
	return Rect{W: l.Width, H: l.Height}
}

// LevelCatalog maps level names to constructors
type LevelCatalog map[string]func() Level

// BuiltinLevels returns the shipped maps
func BuiltinLevels() LevelCatalog {
	return LevelCatalog{
		"BasicArena":        BasicArena,
		"BasicSingleplayer": BasicSingleplayer,
	}
}

// Load builds a level by name
func (c LevelCatalog) Load(name string) (Level, error) {
	fn, ok := c[name]
	if !ok {
		return Level{}, fmt.Errorf("load level %q: %w", name, ErrUnknownLevel)
	}
	return fn(), nil
}

// Names returns the catalog names sorted
func (c LevelCatalog) Names() []string {
	names := make([]string, 0, len(c))
	for n := range c {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadLevel builds a built-in level by name
func LoadLevel(name string) (Level, error) {
	return BuiltinLevels().Load(name)
}

const (
	fieldWidth  = 1280.0
	fieldHeight = 720.0
	wallThick   = 12.0
	sideWidth   = 120.0
	laneTop     = 140.0
	laneBottom  = 640.0
	laneHalf    = 30.0
)

// parkingBlock lays out two back-to-back double rows of spaces
func parkingBlock(perRow int, rows ...float64) []SpaceDef {
	var defs []SpaceDef
	step := SpaceWidth + 2
	startX := fieldWidth/2 - float64(perRow-1)*step/2
	for _, y := range rows {
		for i := 0; i < perRow; i++ {
			x := startX + float64(i)*step
			defs = append(defs,
				SpaceDef{Pos: Vec2{x, y}, Angle: 0},
				SpaceDef{Pos: Vec2{x, y + SpaceLength}, Angle: 180},
			)
		}
	}
	return defs
}

// sideColumn builds a wall column with open lanes at laneTop and laneBottom
func sideColumn(x float64) []Rect {
	return []Rect{
		{X: x, Y: wallThick, W: sideWidth, H: laneTop - laneHalf - wallThick},
		{X: x, Y: laneTop + laneHalf, W: sideWidth, H: laneBottom - laneTop - laneHalf*2},
		{X: x, Y: laneBottom + laneHalf, W: sideWidth, H: fieldHeight - wallThick - laneBottom - laneHalf},
	}
}

func borderWalls() []Rect {
	return []Rect{
		{X: 0, Y: 0, W: fieldWidth, H: wallThick},
		{X: 0, Y: fieldHeight - wallThick, W: fieldWidth, H: wallThick},
	}
}

func openZone() Rect {
	return Rect{X: sideWidth + 20, Y: wallThick + 20, W: fieldWidth - 2*sideWidth - 40, H: fieldHeight - 2*wallThick - 40}
}

// BasicArena is the head-to-head map: lanes enter from both sides,
// spawns 0 and 1 on the left, 2 and 3 on the right
func BasicArena() Level {
	walls := borderWalls()
	walls = append(walls, sideColumn(0)...)
	walls = append(walls, sideColumn(fieldWidth-sideWidth)...)

	return Level{
		Name:   "BasicArena",
		Width:  fieldWidth,
		Height: fieldHeight,
		Walls:  walls,
		Spaces: parkingBlock(10, 230, 450),
		Spawns: []SpawnPoint{
			{Pos: Vec2{60, laneTop}, Angle: 90, MinVelX: 4, MaxVelX: 6, Player: 0},
			{Pos: Vec2{60, laneBottom}, Angle: 90, MinVelX: 4, MaxVelX: 6, Player: 1},
			{Pos: Vec2{fieldWidth - 60, laneTop}, Angle: -90, MinVelX: 4, MaxVelX: 6, Player: 2},
			{Pos: Vec2{fieldWidth - 60, laneBottom}, Angle: -90, MinVelX: 4, MaxVelX: 6, Player: 3},
		},
		Zone: openZone(),
	}
}

// BasicSingleplayer is the solo map with lanes on the left only
func BasicSingleplayer() Level {
	walls := borderWalls()
	walls = append(walls, sideColumn(0)...)
	walls = append(walls, Rect{X: fieldWidth - sideWidth, Y: wallThick, W: sideWidth, H: fieldHeight - 2*wallThick})

	return Level{
		Name:   "BasicSingleplayer",
		Width:  fieldWidth,
		Height: fieldHeight,
		Walls:  walls,
		Spaces: parkingBlock(8, 230, 450),
		Spawns: []SpawnPoint{
			{Pos: Vec2{60, laneTop}, Angle: 90, MinVelX: 4, MaxVelX: 6, Player: 0},
			{Pos: Vec2{60, laneBottom}, Angle: 90, MinVelX: 4, MaxVelX: 6, Player: 0},
		},
		Zone: openZone(),
	}
}
