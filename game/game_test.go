package game

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valet/scores"
	"valet/sim"
)

type scriptedInput struct {
	*sim.ScriptedInput
}

func (scriptedInput) Update() {}

type memBoard struct {
	saved []scores.Record
}

func (m *memBoard) Save(_ context.Context, rec *scores.Record) error {
	m.saved = append(m.saved, *rec)
	return nil
}

func (m *memBoard) Best(ctx context.Context, mapName string) (scores.Record, bool, error) {
	top, _ := m.Top(ctx, mapName, 1)
	if len(top) == 0 {
		return scores.Record{}, false, nil
	}
	return top[0], true, nil
}

func (m *memBoard) Top(_ context.Context, mapName string, n int) ([]scores.Record, error) {
	var out []scores.Record
	for _, r := range m.saved {
		if r.Map == mapName && len(out) < n {
			out = append(out, r)
		}
	}
	return out, nil
}

// brokenBoard saves fine but cannot read scores back
type brokenBoard struct {
	memBoard
}

var errBoardDown = errors.New("board down")

func (b *brokenBoard) Best(context.Context, string) (scores.Record, bool, error) {
	return scores.Record{}, false, errBoardDown
}

func newTestSession(cars int, log zerolog.Logger) *sim.Session {
	settings := sim.DefaultSettings()
	settings.Variants = sim.Variants{}
	settings.Mode.SingleplayerCars = cars
	settings.Mode.MultiplayerCars = cars
	return sim.NewSession(settings, log, 3)
}

func newTestGame(t *testing.T, cars int) (*Game, scriptedInput, *memBoard) {
	t.Helper()
	in := scriptedInput{sim.NewScriptedInput()}
	board := &memBoard{}
	return NewGame(DefaultConfig(), newTestSession(cars, zerolog.Nop()), in, board), in, board
}

// press holds action for one tick and releases it on the next
func press(t *testing.T, g *Game, in scriptedInput, action sim.Action, player int) {
	t.Helper()
	in.Hold(action, player)
	require.NoError(t, g.Update())
	in.Release(action, player)
	require.NoError(t, g.Update())
}

func TestTitleJoinAndStart(t *testing.T) {
	g, in, _ := newTestGame(t, 4)

	press(t, g, in, sim.ActionConfirm, 1)
	assert.True(t, g.session.Joined(1))
	assert.Equal(t, sceneTitle, g.scene)

	press(t, g, in, sim.ActionBack, 1)
	assert.False(t, g.session.Joined(1))

	press(t, g, in, sim.ActionConfirm, 0)
	press(t, g, in, sim.ActionConfirm, 0)
	require.Equal(t, scenePlaying, g.scene)
	require.NotNil(t, g.session.Round())
	assert.Equal(t, "Solo Valet", g.session.Round().Mode.Name)
}

func TestTitleModeSelectionWraps(t *testing.T) {
	g, in, _ := newTestGame(t, 4)
	press(t, g, in, sim.ActionDown, 0)
	assert.Equal(t, 1, g.selected)
	press(t, g, in, sim.ActionDown, 0)
	assert.Equal(t, 0, g.selected)
	press(t, g, in, sim.ActionUp, 0)
	assert.Equal(t, 1, g.selected)
}

func TestBackQuitsToTitle(t *testing.T) {
	g, in, _ := newTestGame(t, 4)
	press(t, g, in, sim.ActionConfirm, 0)
	press(t, g, in, sim.ActionConfirm, 0)
	require.NotNil(t, g.session.Round())

	press(t, g, in, sim.ActionBack, 0)
	assert.Equal(t, sceneTitle, g.scene)
	assert.Nil(t, g.session.Round())
}

func TestPauseMenu(t *testing.T) {
	g, in, _ := newTestGame(t, 4)
	press(t, g, in, sim.ActionConfirm, 0)
	press(t, g, in, sim.ActionConfirm, 0)
	round := g.session.Round()
	require.NotNil(t, round)

	press(t, g, in, sim.ActionPause, 0)
	require.True(t, g.pause.Paused())
	assert.True(t, round.Paused())
	elapsed := round.Elapsed()

	require.NoError(t, g.Update())
	assert.Equal(t, elapsed, round.Elapsed(), "paused rounds do not advance")

	press(t, g, in, sim.ActionPause, 0)
	assert.False(t, round.Paused())

	press(t, g, in, sim.ActionPause, 0)
	press(t, g, in, sim.ActionDown, 0)
	press(t, g, in, sim.ActionConfirm, 0)
	assert.Equal(t, sceneTitle, g.scene)
	assert.Nil(t, g.session.Round())
}

func TestSoloRoundRecordsScore(t *testing.T) {
	g, in, board := newTestGame(t, 1)
	press(t, g, in, sim.ActionConfirm, 0)
	press(t, g, in, sim.ActionConfirm, 0)
	round := g.session.Round()
	require.NotNil(t, round)

	for i := 0; i < 60*60 && round.Phase() != sim.PhaseRoundComplete; i++ {
		require.NoError(t, g.Update())
	}
	require.Equal(t, sim.PhaseRoundComplete, round.Phase())
	require.NoError(t, g.Update())

	require.Len(t, board.saved, 1)
	assert.Equal(t, "BasicSingleplayer", board.saved[0].Map)
	assert.Equal(t, 1, board.saved[0].Cars)
	assert.Equal(t, round.Message(), g.results.Message)
	require.NotNil(t, g.results.Best)

	press(t, g, in, sim.ActionConfirm, 0)
	assert.Equal(t, sceneTitle, g.scene)
	assert.Nil(t, g.session.Round())
}

func TestRecordLogsBestFailure(t *testing.T) {
	var logs bytes.Buffer
	in := scriptedInput{sim.NewScriptedInput()}
	board := &brokenBoard{}
	g := NewGame(DefaultConfig(), newTestSession(1, zerolog.New(&logs)), in, board)

	press(t, g, in, sim.ActionConfirm, 0)
	press(t, g, in, sim.ActionConfirm, 0)
	round := g.session.Round()
	require.NotNil(t, round)

	res := g.record(round)
	assert.Len(t, board.saved, 1)
	assert.Nil(t, res.Best)
	assert.Empty(t, res.Top)
	assert.Contains(t, logs.String(), "Failed to read best score")
	assert.Contains(t, logs.String(), errBoardDown.Error())
}
