package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-evo/internal/platform/tui"
)

var (
	flagPlayCompanions int
	flagPlayPolicy     string
	flagPlayGenome     string
	flagPlayFrames     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play with the keyboard",
	Long: `Control the green runner yourself. Companions driven by a policy run
alongside you in the same world.

Controls:
  Space/Up/W - Jump
  Down/S     - Crouch
  P/Esc      - Pause
  R          - Restart (after game over)
  Ctrl+S     - Save a screenshot to ~/.dino/screenshots
  Q/Ctrl+C   - Quit

Examples:
  dino play
  dino play --difficulty hard
  dino play --companions 5 --policy network --genome best.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagPlayCompanions, "companions", 0, "AI runners alongside the player")
	playCmd.Flags().StringVar(&flagPlayPolicy, "policy", "heuristic", "Policy of the companions")
	playCmd.Flags().StringVar(&flagPlayGenome, "genome", "", "Genome file for network companions")
	playCmd.Flags().StringVar(&flagPlayFrames, "frames", "", "Write every frame as text into this directory")
}

func runPlay(cmd *cobra.Command, args []string) {
	logger, closeLog := newViewerLogger("dino-play")
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		exitErr("%v", err)
	}
	network, err := loadNetwork(flagPlayGenome, logger)
	if err != nil {
		exitErr("%v", err)
	}
	recorder, err := tui.NewFrameRecorder(flagPlayFrames, logger)
	if err != nil {
		exitErr("%v", err)
	}

	store := openStore(logger)

	runErr := tui.Run(tui.Options{
		Mode:       tui.ModePlay,
		Config:     cfg,
		Runtime:    runtimeConfig(),
		Policy:     flagPlayPolicy,
		Population: 1 + max(flagPlayCompanions, 0),
		Network:    network,
		Store:      store,
		Recorder:   recorder,
		Logger:     logger,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		exitErr("running game: %v", runErr)
	}
}
