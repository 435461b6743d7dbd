package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-evo/internal/agent"
	"github.com/vovakirdan/dino-evo/internal/games/dino"
	"github.com/vovakirdan/dino-evo/internal/registry"
	"github.com/vovakirdan/dino-evo/internal/storage"
)

var (
	flagRunEntities int
	flagRunEpisodes int
	flagRunMaxTicks int
	flagRunGenome   string
	flagRunNoStore  bool
)

var runCmd = &cobra.Command{
	Use:   "run <policy>",
	Short: "Evaluate a policy without a display",
	Long: `Run episodes headless and print score, ticks and best fitness for each.
Episode i uses seed + i, so results are reproducible with --seed.

Examples:
  dino run heuristic --episodes 10 --seed 1
  dino run random --entities 50
  dino run network --genome best.yaml --max-ticks 20000`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().IntVarP(&flagRunEntities, "entities", "n", 1, "Runners per episode")
	runCmd.Flags().IntVar(&flagRunEpisodes, "episodes", 1, "Number of episodes")
	runCmd.Flags().IntVar(&flagRunMaxTicks, "max-ticks", 10000, "Stop an episode after this many ticks (0 = no limit)")
	runCmd.Flags().StringVar(&flagRunGenome, "genome", "", "Genome file for the network policy")
	runCmd.Flags().BoolVar(&flagRunNoStore, "no-store", false, "Do not record results in the database")
}

func runRun(cmd *cobra.Command, args []string) {
	policyID := args[0]
	if !registry.Exists(policyID) {
		fmt.Fprintf(os.Stderr, "Error: unknown policy %q\n", policyID)
		fmt.Fprintln(os.Stderr, "Run 'dino list' to see available policies.")
		os.Exit(1)
	}

	logger := newLogger("dino-run")
	cfg, err := loadConfig()
	if err != nil {
		exitErr("%v", err)
	}
	network, err := loadNetwork(flagRunGenome, logger)
	if err != nil {
		exitErr("%v", err)
	}

	var store *storage.Store
	if !flagRunNoStore {
		store = openStore(logger)
		if store != nil {
			defer store.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	base := seed()
	w := dino.New(cfg, base)

	fmt.Printf("  %-4s  %-20s  %-7s  %-8s  %s\n", "#", "Seed", "Score", "Ticks", "Best fitness")
	for ep := 0; ep < flagRunEpisodes; ep++ {
		epSeed := base + int64(ep)
		policies, err := registry.CreateN(policyID, max(flagRunEntities, 1), registry.Options{
			Seed:    epSeed,
			Config:  cfg,
			Network: network,
		})
		if err != nil {
			exitErr("%v", err)
		}

		w.Reseed(epSeed)
		res, err := agent.RunEpisode(ctx, w, policies, flagRunMaxTicks)
		if errors.Is(err, context.Canceled) {
			logger.Warn("interrupted", "episode", ep)
			return
		}
		if err != nil {
			exitErr("episode %d: %v", ep, err)
		}

		fmt.Printf("  %-4d  %-20d  %-7d  %-8d  %.2f\n", ep+1, epSeed, res.Score, res.Ticks, res.BestFitness())

		if store != nil {
			if _, err := store.SaveEpisode(storage.EpisodeRecord{
				Policy:      policyID,
				Seed:        epSeed,
				Entities:    len(policies),
				Score:       res.Score,
				Ticks:       res.Ticks,
				BestFitness: res.BestFitness(),
			}); err != nil {
				logger.Warn("could not save episode", "err", err)
			}
		}
	}
}
