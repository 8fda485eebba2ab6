package cmd

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"valet/game"
	"valet/scores"
	"valet/sim"
)

func newPlayCmd() *cobra.Command {
	var seed int64
	var profileDir string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "opens the game window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(seed, profileDir)
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().StringVar(&profileDir, "profile-dir", "",
		"capture cpu profiles into this directory when the game slows down")
	return cmd
}

func runPlay(seed int64, profileDir string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	log, err := newLogger(settings.LogLevel)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var board game.ScoreBoard
	store, err := scores.NewStore(settings.ScoresDB, log)
	if err != nil {
		log.Warn().Err(err).Msg("High scores disabled")
	} else {
		defer store.Close()
		board = store
	}

	session := sim.NewSession(settings, log, seed)
	config := game.ConfigFromSettings(settings)
	config.ProfileDir = profileDir
	g := game.NewGame(config, session, game.NewEbitenInput(), board)

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Valet")
	ebiten.SetWindowResizable(true)

	log.Info().Int64("seed", seed).Msg("starting")
	if err := ebiten.RunGame(g); err != nil {
		log.Error().Err(err).Msg("Game stopped")
		return err
	}
	return nil
}
