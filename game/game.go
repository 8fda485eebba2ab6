package game

import (
	"context"
	"errors"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"valet/scores"
	"valet/sim"
)

// tickDT is the fixed simulation step
const tickDT = 1.0 / float64(ebiten.DefaultTPS)

type scene int

const (
	sceneTitle scene = iota
	scenePlaying
)

// ScoreBoard is the high score storage used by solo rounds
type ScoreBoard interface {
	Save(ctx context.Context, rec *scores.Record) error
	Best(ctx context.Context, mapName string) (scores.Record, bool, error)
	Top(ctx context.Context, mapName string, n int) ([]scores.Record, error)
}

// Game is the ebiten shell around a session
type Game struct {
	config   Config
	session  *sim.Session
	input    Input
	menu     *sim.MenuInput
	pause    *sim.PauseMenu
	renderer *Renderer
	camera   *Camera
	debug    DebugState
	board    ScoreBoard
	log      zerolog.Logger

	modes    []sim.ModeConfig
	selected int
	scene    scene
	notice   string

	snow     *Snow
	exhaust  *Exhaust
	fx       *rand.Rand
	profiler *Profiler
	ticks    int
	recorded bool
	results  Results
}

// NewGame creates the shell. board may be nil to disable high scores.
func NewGame(config Config, session *sim.Session, input Input, board ScoreBoard) *Game {
	solo, versus := sim.ModesFromSettings(session.Settings)
	camera := NewCamera(float64(config.ScreenWidth), float64(config.ScreenHeight))
	g := &Game{
		config:   config,
		session:  session,
		input:    input,
		menu:     sim.NewMenuInput(input, config.MenuRepeat),
		pause:    sim.NewPauseMenu(session),
		renderer: NewRenderer(camera),
		camera:   camera,
		board:    board,
		log:      session.Log,
		modes:    []sim.ModeConfig{solo, versus},
		fx:       rand.New(rand.NewSource(1)),
	}
	if config.ProfileDir != "" {
		g.profiler = NewProfiler(config.ProfileDir, session.Log)
	}
	return g
}

// menuPressed returns the player that pressed action this tick. With a
// menu controller set, only that player counts.
func (g *Game) menuPressed(action sim.Action) int {
	if c := g.session.MenuController; c != sim.NoPlayer {
		if g.menu.Pressed(action, c) {
			return c
		}
		return sim.NoPlayer
	}
	return g.menu.PressedAny(action)
}

// Update advances the game by one tick
func (g *Game) Update() error {
	g.input.Update()
	g.menu.Update()
	g.ticks++
	g.watchTickRate()

	if g.menu.PressedAny(sim.ActionDebug) != sim.NoPlayer {
		g.debug.Toggle()
	}

	switch g.scene {
	case sceneTitle:
		return g.updateTitle()
	case scenePlaying:
		return g.updatePlaying()
	}
	return nil
}

// watchTickRate captures a profile when the game falls behind, once warmed up
func (g *Game) watchTickRate() {
	if g.profiler == nil || g.ticks < 5*ebiten.DefaultTPS {
		return
	}
	if tps := ebiten.ActualTPS(); tps < slowTPS {
		if err := g.profiler.Capture("slow-tick"); err != nil {
			g.log.Debug().Err(err).Float64("tps", tps).Msg("profile skipped")
		}
	}
}

func (g *Game) updateTitle() error {
	for p := 0; p < sim.MaxPlayers; p++ {
		if g.menu.Pressed(sim.ActionConfirm, p) {
			if g.session.Join(p) {
				g.notice = ""
				continue
			}
			return g.start()
		}
		if g.menu.Pressed(sim.ActionBack, p) && g.session.Joined(p) {
			g.session.Leave(p)
		}
	}

	switch {
	case g.menuPressed(sim.ActionUp) != sim.NoPlayer:
		g.selected = (g.selected + len(g.modes) - 1) % len(g.modes)
	case g.menuPressed(sim.ActionDown) != sim.NoPlayer:
		g.selected = (g.selected + 1) % len(g.modes)
	}
	return nil
}

func (g *Game) start() error {
	mode := g.modes[g.selected]
	round, err := g.session.Start(mode, g.input)
	if errors.Is(err, sim.ErrNoPlayers) {
		g.notice = "Join first!"
		return nil
	}
	if err != nil {
		g.log.Error().Err(err).Str("mode", mode.Name).Msg("Failed to start round")
		return err
	}

	g.scene = scenePlaying
	g.recorded = false
	g.results = Results{}
	g.snow = nil
	g.exhaust = NewExhaust(g.fx)
	if round.Variants.Snow {
		g.snow = NewSnow(g.config.SnowCount, g.config.ScreenWidth, g.config.ScreenHeight, g.fx)
	}
	return nil
}

func (g *Game) toTitle() {
	g.pause.Resume()
	g.session.End()
	g.scene = sceneTitle
	g.snow = nil
	g.exhaust = nil
	g.camera.ShakeX, g.camera.ShakeY = 0, 0
}

func (g *Game) updatePlaying() error {
	round := g.session.Round()
	if round == nil {
		g.scene = sceneTitle
		return nil
	}
	players := round.Players()

	wasPaused := g.pause.Paused()
	switch g.pause.Update(g.menu, players) {
	case sim.PauseMainMenu:
		g.toTitle()
		return nil
	case sim.PauseResume:
		round.SetPaused(false)
	case sim.PauseNone:
		if !wasPaused && g.roundPressed(sim.ActionBack, players) {
			g.toTitle()
			return nil
		}
	}
	if g.pause.Paused() {
		round.SetPaused(true)
		return nil
	}

	if err := round.Tick(tickDT); err != nil {
		return err
	}
	g.exhaust.Update(tickDT, round.InFlight())
	if g.snow != nil {
		g.snow.Update(tickDT)
	}
	g.camera.ShakeX, g.camera.ShakeY = g.session.ShakeOffset()

	if round.Phase() != sim.PhaseRoundComplete {
		return nil
	}
	if !g.recorded {
		g.recorded = true
		g.results = g.record(round)
	}
	if g.roundPressed(sim.ActionConfirm, players) {
		round.Acknowledge()
	}
	if round.Finished() {
		g.toTitle()
	}
	return nil
}

func (g *Game) roundPressed(action sim.Action, players []int) bool {
	for _, p := range players {
		if g.menu.Pressed(action, p) {
			return true
		}
	}
	return false
}

// record builds the results panel and, for solo rounds, stores the score
func (g *Game) record(round *sim.Round) Results {
	res := Results{
		Message: round.Message(),
		Totals:  g.session.Totals(),
		Players: round.Players(),
	}
	if !round.Mode.Solo || g.board == nil || len(res.Players) == 0 {
		return res
	}

	ctx := context.Background()
	mapName := round.Level.Name
	rec := &scores.Record{
		Map:   mapName,
		Mode:  round.Mode.Name,
		Score: res.Totals[res.Players[0]],
		Cars:  round.Mode.CarBudget,
	}
	if err := g.board.Save(ctx, rec); err != nil {
		g.log.Warn().Err(err).Msg("Failed to save score")
		return res
	}
	best, ok, err := g.board.Best(ctx, mapName)
	if err != nil {
		g.log.Warn().Err(err).Msg("Failed to read best score")
		return res
	}
	if !ok {
		return res
	}
	res.Best = &best.Score
	top, err := g.board.Top(ctx, mapName, g.config.TopScores)
	if err != nil {
		g.log.Warn().Err(err).Msg("Failed to read top scores")
		return res
	}
	for _, r := range top {
		res.Top = append(res.Top, r.Score)
	}
	return res
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	round := g.session.Round()
	if g.scene == sceneTitle || round == nil {
		t := Title{Selected: g.selected, Err: g.notice}
		for _, m := range g.modes {
			t.Modes = append(t.Modes, m.Name)
		}
		for p := range t.Joined {
			t.Joined[p] = g.session.Joined(p)
		}
		g.renderer.RenderTitle(screen, t)
		return
	}

	g.renderer.RenderRound(screen, round)
	if g.exhaust != nil {
		g.exhaust.Draw(screen, g.camera)
	}
	if g.snow != nil {
		g.snow.Draw(screen)
	}
	if g.debug.ShowBodies {
		g.renderer.DrawDebug(screen, round)
	}
	g.renderer.RenderHUD(screen, g.session, round)
	if round.Phase() == sim.PhaseRoundComplete {
		g.renderer.RenderResults(screen, g.results)
	}
	if g.pause.Paused() {
		g.renderer.RenderPause(screen, g.pause)
	}
}

// Layout returns the game's screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.ScreenWidth, g.config.ScreenHeight
}
