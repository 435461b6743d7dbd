package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-evo/internal/agent"
	"github.com/vovakirdan/dino-evo/internal/evolve"
	"github.com/vovakirdan/dino-evo/internal/storage"
	"github.com/vovakirdan/dino-evo/internal/telemetry"
)

var (
	trainCfg        = evolve.DefaultConfig()
	flagTrainOut    string
	flagTrainCSV    string
	flagTrainReport string
	flagTrainNoDB   bool
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Evolve a neural network controller",
	Long: `Train a population of feed-forward networks with a genetic algorithm.
All networks of a generation run side by side in one world; fitness is the
reward each runner collected before it died.

Outputs:
  --out     best genome as YAML (use with --genome on run/watch/serve)
  --csv     per-generation statistics
  --report  plain-text learning report

Ctrl+C stops after the current generation and still writes the outputs.

Examples:
  dino train
  dino train --population 100 --generations 50 --seed 7
  dino train --trials 4 --workers 4 --csv history.csv`,
	Run: runTrain,
}

func init() {
	f := trainCmd.Flags()
	f.IntVar(&trainCfg.Population, "population", trainCfg.Population, "Networks per generation")
	f.IntVar(&trainCfg.Generations, "generations", trainCfg.Generations, "Number of generations")
	f.IntVar(&trainCfg.Hidden, "hidden", trainCfg.Hidden, "Hidden layer width")
	f.IntVar(&trainCfg.Elite, "elite", trainCfg.Elite, "Individuals copied unchanged into the next generation")
	f.IntVar(&trainCfg.TournamentSize, "tournament", trainCfg.TournamentSize, "Tournament size for parent selection")
	f.Float64Var(&trainCfg.MutationRate, "mutation-rate", trainCfg.MutationRate, "Per-weight mutation probability")
	f.Float64Var(&trainCfg.MutationSigma, "mutation-sigma", trainCfg.MutationSigma, "Standard deviation of mutations")
	f.IntVar(&trainCfg.Trials, "trials", trainCfg.Trials, "Independent worlds per generation")
	f.IntVar(&trainCfg.MaxTicks, "max-ticks", trainCfg.MaxTicks, "Tick limit per trial (0 = no limit)")
	f.IntVar(&trainCfg.Workers, "workers", trainCfg.Workers, "Trials evaluated concurrently")
	f.StringVarP(&flagTrainOut, "out", "o", "best.yaml", "Where to write the best genome")
	f.StringVar(&flagTrainCSV, "csv", "", "Write per-generation statistics to this CSV file")
	f.StringVar(&flagTrainReport, "report", "", "Write a learning report to this file")
	f.BoolVar(&flagTrainNoDB, "no-store", false, "Do not record the run in the database")
}

func runTrain(cmd *cobra.Command, args []string) {
	logger := newLogger("dino-train")

	cfg, err := loadConfig()
	if err != nil {
		exitErr("%v", err)
	}

	runSeed := seed()
	trainer, err := evolve.NewTrainer(trainCfg, cfg, runSeed)
	if err != nil {
		exitErr("%v", err)
	}
	trainer.SetLogger(logger)

	history, err := telemetry.NewHistoryWriter(flagTrainCSV)
	if err != nil {
		exitErr("%v", err)
	}
	defer history.Close()

	var store *storage.Store
	var runID int64
	if !flagTrainNoDB {
		store = openStore(logger)
	}
	if store != nil {
		defer store.Close()
		if runID, err = store.CreateRun(runSeed, trainCfg.Population, trainCfg.Generations); err != nil {
			logger.Warn("could not record run", "err", err)
			store = nil
		}
	}

	trainer.OnGeneration(func(s evolve.GenerationStats) {
		logger.Info("generation",
			"gen", s.Generation,
			"best", s.Best,
			"mean", s.Mean,
			"stddev", s.StdDev,
			"score", s.BestScore,
		)
		if err := history.Write(s); err != nil {
			logger.Warn("could not write history", "err", err)
		}
		if store != nil {
			if err := store.SaveGeneration(runID, s); err != nil {
				logger.Warn("could not save generation", "err", err)
			}
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("training",
		"seed", runSeed,
		"population", trainCfg.Population,
		"generations", trainCfg.Generations,
		"hidden", trainCfg.Hidden,
	)
	res, err := trainer.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		exitErr("training failed: %v", err)
	}
	if err != nil {
		logger.Warn("training interrupted", "generations", len(res.History))
	}

	report := telemetry.BuildReport(res.History)
	if store != nil {
		if err := store.FinishRun(runID, res.Best.Fitness, report.BestScore); err != nil {
			logger.Warn("could not finish run", "err", err)
		}
	}

	if res.BestNetwork == nil {
		logger.Warn("no generation completed, nothing to save")
		return
	}
	if err := agent.SaveGenome(flagTrainOut, res.BestNetwork, res.Best.Fitness, runSeed); err != nil {
		exitErr("%v", err)
	}
	logger.Info("saved best genome", "path", flagTrainOut, "fitness", res.Best.Fitness)

	if flagTrainReport != "" {
		if err := writeReport(flagTrainReport, report); err != nil {
			logger.Warn("could not write report", "err", err)
		}
	} else {
		report.WriteTo(os.Stdout) //nolint:errcheck // Best-effort console output
	}
}

func writeReport(path string, r telemetry.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := r.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
