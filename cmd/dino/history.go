package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dino-evo/internal/platform/tui"
	"github.com/vovakirdan/dino-evo/internal/storage"
	"github.com/vovakirdan/dino-evo/internal/telemetry"
)

var (
	flagHistoryRun   int64
	flagHistoryPlain bool
	flagHistoryLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse stored training runs and episodes",
	Long: `Show training runs, their per-generation statistics and the best
evaluated episodes. An interactive table is shown on a terminal; plain text
is printed when output is redirected or --plain is given.

Examples:
  dino history
  dino history --plain
  dino history --run 3      # Generations and learning report of run 3`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().Int64Var(&flagHistoryRun, "run", 0, "Print the generations of one run")
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print plain text even on a terminal")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Rows per table in plain output")
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr("opening results database: %v", err)
	}
	defer store.Close()

	if flagHistoryRun != 0 {
		if err := printRun(os.Stdout, store, flagHistoryRun); err != nil {
			store.Close()
			exitErr("%v", err)
		}
		return
	}

	if !flagHistoryPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		rc := runtimeConfig()
		if err := tui.RunHistory(store, rc.ScreenW, rc.ScreenH); err != nil {
			store.Close()
			exitErr("running history browser: %v", err)
		}
		return
	}

	if err := printHistory(os.Stdout, store, flagHistoryLimit); err != nil {
		store.Close()
		exitErr("%v", err)
	}
}

func printHistory(w io.Writer, store *storage.Store, limit int) error {
	runs, err := store.Runs(limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Training runs")
	fmt.Fprintln(w)
	if len(runs) == 0 {
		fmt.Fprintln(w, "  No training runs yet. Run 'dino train' to start one.")
	} else {
		fmt.Fprintf(w, "  %-5s  %-20s  %-5s  %-5s  %-10s  %-6s  %s\n", "Run", "Seed", "Pop", "Gens", "Best", "Score", "Date")
		for _, r := range runs {
			status := ""
			if !r.Finished {
				status = " (unfinished)"
			}
			fmt.Fprintf(w, "  %-5d  %-20d  %-5d  %-5d  %-10.2f  %-6d  %s%s\n",
				r.ID, r.Seed, r.Population, r.Generations, r.BestFitness, r.BestScore,
				r.CreatedAt.Format("2006-01-02 15:04"), status)
		}
	}

	episodes, err := store.TopEpisodes("", limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Best episodes")
	fmt.Fprintln(w)
	if len(episodes) == 0 {
		fmt.Fprintln(w, "  No episodes recorded yet. Run 'dino run <policy>' to evaluate one.")
		return nil
	}
	fmt.Fprintf(w, "  %-4s  %-12s  %-6s  %-8s  %-8s  %s\n", "Rank", "Policy", "Score", "Ticks", "Entities", "Date")
	for i, e := range episodes {
		fmt.Fprintf(w, "  %-4d  %-12s  %-6d  %-8d  %-8d  %s\n",
			i+1, e.Policy, e.Score, e.Ticks, e.Entities, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.AllPolicyStats()
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	for _, info := range sortedPolicies(stats) {
		fmt.Fprintf(w, "  %-12s  %d episodes, best %d, average %.1f\n",
			info.Policy, info.Episodes, info.HighScore, info.AvgScore)
	}
	return nil
}

func sortedPolicies(stats map[string]*storage.PolicyStats) []*storage.PolicyStats {
	out := make([]*storage.PolicyStats, 0, len(stats))
	for _, s := range stats {
		out = append(out, s)
	}
	// Highest score first, then by name
	sort.Slice(out, func(i, j int) bool {
		if out[i].HighScore != out[j].HighScore {
			return out[i].HighScore > out[j].HighScore
		}
		return out[i].Policy < out[j].Policy
	})
	return out
}

func printRun(w io.Writer, store *storage.Store, runID int64) error {
	run, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	history, err := store.RunGenerations(runID)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Run #%d  seed %d  population %d  generations %d\n\n",
		run.ID, run.Seed, run.Population, run.Generations)
	fmt.Fprintf(w, "  %-5s  %-10s  %-10s  %-10s  %-10s  %s\n", "Gen", "Best", "Mean", "Min", "StdDev", "Score")
	for _, g := range history {
		fmt.Fprintf(w, "  %-5d  %-10.2f  %-10.2f  %-10.2f  %-10.2f  %d\n",
			g.Generation, g.Best, g.Mean, g.Min, g.StdDev, g.BestScore)
	}
	fmt.Fprintln(w)

	_, err = telemetry.BuildReport(history).WriteTo(w)
	return err
}
