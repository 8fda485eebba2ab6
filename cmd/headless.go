package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"valet/game"
	"valet/scores"
	"valet/sim"
)

const headlessDT = 1.0 / 60

// errRoundStuck is returned when a round does not complete in the tick budget
var errRoundStuck = errors.New("round did not complete")

type headlessOptions struct {
	Rounds   int
	Mode     string
	Players  int
	Seed     int64
	Save     bool
	MaxTicks int
}

// roundSummary is the outcome of one headless round
type roundSummary struct {
	Round   int
	Map     string
	Waves   int
	Totals  []int
	Message string
	Ticks   int
}

func newSimCmd() *cobra.Command {
	opts := headlessOptions{}
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "runs rounds headless with every car on autopilot",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			log, err := newLogger(settings.LogLevel)
			if err != nil {
				return err
			}
			if opts.Seed == 0 {
				opts.Seed = time.Now().UnixNano()
			}

			var board game.ScoreBoard
			if opts.Save {
				store, err := scores.NewStore(settings.ScoresDB, log)
				if err != nil {
					log.Error().Err(err).Msg("Could not open score db")
					return err
				}
				defer store.Close()
				board = store
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			_, err = runHeadless(ctx, settings, log, board, opts, cmd.OutOrStdout())
			if err != nil {
				log.Error().Err(err).Msg("Simulation failed")
			}
			return err
		},
	}
	cmd.Flags().IntVar(&opts.Rounds, "rounds", 1, "number of rounds to play")
	cmd.Flags().StringVar(&opts.Mode, "mode", "solo", "game mode (solo or versus)")
	cmd.Flags().IntVar(&opts.Players, "players", 2, "players in versus mode")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "store solo results in the score db")
	cmd.Flags().IntVar(&opts.MaxTicks, "max-ticks", 60*60*20, "tick budget per round")
	return cmd
}

func pickMode(settings sim.Settings, name string) (sim.ModeConfig, error) {
	solo, versus := sim.ModesFromSettings(settings)
	switch strings.ToLower(name) {
	case "solo", "singleplayer":
		return solo, nil
	case "versus", "multiplayer":
		return versus, nil
	}
	return sim.ModeConfig{}, fmt.Errorf("unknown mode %q", name)
}

// runHeadless plays opts.Rounds rounds on autopilot and prints one line per round
func runHeadless(
	ctx context.Context,
	settings sim.Settings,
	log zerolog.Logger,
	board game.ScoreBoard,
	opts headlessOptions,
	out io.Writer,
) ([]roundSummary, error) {
	mode, err := pickMode(settings, opts.Mode)
	if err != nil {
		return nil, err
	}
	players := 1
	if !mode.Solo {
		players = max(1, min(opts.Players, sim.MaxPlayers))
	}
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = 60 * 60 * 20
	}

	session := sim.NewSession(settings, log, opts.Seed)
	for _, p := range lo.Range(players) {
		session.Join(p)
	}
	pilot := sim.NewAutopilot()

	summaries := make([]roundSummary, 0, opts.Rounds)
	for i := 1; i <= opts.Rounds; i++ {
		sum, err := playHeadlessRound(ctx, session, pilot, mode, opts.MaxTicks)
		if err != nil {
			return summaries, fmt.Errorf("round %d: %w", i, err)
		}
		sum.Round = i
		summaries = append(summaries, sum)
		fmt.Fprintf(out, "round %d  %s  waves %d  totals %v  %s\n",
			sum.Round, sum.Map, sum.Waves, sum.Totals, sum.Message)

		if mode.Solo && board != nil {
			rec := &scores.Record{Map: sum.Map, Mode: mode.Name, Score: sum.Totals[0], Cars: mode.CarBudget}
			if err := board.Save(ctx, rec); err != nil {
				return summaries, err
			}
		}
	}
	return summaries, nil
}

func playHeadlessRound(
	ctx context.Context,
	session *sim.Session,
	pilot *sim.Autopilot,
	mode sim.ModeConfig,
	maxTicks int,
) (roundSummary, error) {
	round, err := session.Start(mode, pilot)
	if err != nil {
		return roundSummary{}, err
	}
	defer session.End()
	pilot.Attach(round)

	ticks := 0
	for round.Phase() != sim.PhaseRoundComplete {
		if err := ctx.Err(); err != nil {
			return roundSummary{}, err
		}
		if ticks >= maxTicks {
			return roundSummary{}, fmt.Errorf("%w after %d ticks", errRoundStuck, ticks)
		}
		pilot.Update()
		if err := round.Tick(headlessDT); err != nil {
			return roundSummary{}, err
		}
		ticks++
	}
	round.Acknowledge()

	totals := session.Totals()
	return roundSummary{
		Map:     round.Level.Name,
		Waves:   round.Wave(),
		Totals:  lo.Map(round.Players(), func(p int, _ int) int { return totals[p] }),
		Message: round.Message(),
		Ticks:   ticks,
	}, nil
}
