package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-evo/internal/platform/tui"
	"github.com/vovakirdan/dino-evo/internal/registry"
)

var (
	flagWatchEntities int
	flagWatchGenome   string
	flagWatchFrames   string
)

var watchCmd = &cobra.Command{
	Use:   "watch [policy]",
	Short: "Watch a policy play in the terminal",
	Long: `Run a population driven by one policy and display it live. A new
episode starts automatically a moment after everyone has died.

Controls:
  P/Esc      - Pause
  R          - Restart (after game over)
  Ctrl+S     - Save a screenshot to ~/.dino/screenshots
  Q/Ctrl+C   - Quit

Examples:
  dino watch
  dino watch random --entities 30
  dino watch network --genome best.yaml
  dino watch heuristic --frames ./frames`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().IntVarP(&flagWatchEntities, "entities", "n", 10, "Runners on screen")
	watchCmd.Flags().StringVar(&flagWatchGenome, "genome", "", "Genome file for the network policy")
	watchCmd.Flags().StringVar(&flagWatchFrames, "frames", "", "Write every frame as text into this directory")
}

func runWatch(cmd *cobra.Command, args []string) {
	policyID := "heuristic"
	if len(args) == 1 {
		policyID = args[0]
	}
	if !registry.Exists(policyID) {
		fmt.Fprintf(os.Stderr, "Error: unknown policy %q\n", policyID)
		fmt.Fprintln(os.Stderr, "Run 'dino list' to see available policies.")
		os.Exit(1)
	}

	logger, closeLog := newViewerLogger("dino-watch")
	defer closeLog()
	cfg, err := loadConfig()
	if err != nil {
		exitErr("%v", err)
	}
	network, err := loadNetwork(flagWatchGenome, logger)
	if err != nil {
		exitErr("%v", err)
	}
	recorder, err := tui.NewFrameRecorder(flagWatchFrames, logger)
	if err != nil {
		exitErr("%v", err)
	}

	store := openStore(logger)

	runErr := tui.Run(tui.Options{
		Mode:       tui.ModeWatch,
		Config:     cfg,
		Runtime:    runtimeConfig(),
		Policy:     policyID,
		Population: flagWatchEntities,
		Network:    network,
		Store:      store,
		Recorder:   recorder,
		Logger:     logger,
	})

	if store != nil {
		store.Close()
	}
	if recorder != nil {
		logger.Info("frames written", "dir", flagWatchFrames, "saved", recorder.Saved(), "skipped", recorder.Skipped())
	}

	if runErr != nil {
		exitErr("running viewer: %v", runErr)
	}
}
