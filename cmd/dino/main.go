// dino runs, trains and displays a deterministic side-scrolling runner
// simulation driven by pluggable controllers.
//
// Usage:
//
//	dino list                - List available policies
//	dino run <policy>        - Evaluate a policy headless
//	dino train               - Evolve a neural network controller
//	dino watch [policy]      - Watch a policy play in the terminal
//	dino play                - Play yourself, optionally with AI companions
//	dino history             - Browse stored runs and episodes
//	dino serve               - Start an SSH spectator server
//	dino report <csv>        - Analyze a training history CSV
//	dino config              - Print or write the default configuration
//
// Global flags:
//
//	--fps <rate>          - Viewer tick rate (default: 60)
//	--seed <value>        - RNG seed for reproducible episodes
//	--db <path>           - Database path (default: ~/.dino/dino.db)
//	--config <path>       - Simulation config YAML
//	--difficulty <preset> - easy, normal or hard
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dino",
	Short: "Dino - a steppable runner simulation for training agents",
	Long: `Dino simulates a population of runners jumping and crouching past a
stream of obstacles. Controllers observe the closest obstacle and choose one
action per tick; the simulation is deterministic for a given seed.

Available commands:
  list     - Show all registered policies
  run      - Evaluate a policy without a display
  train    - Evolve a feed-forward network with a genetic algorithm
  watch    - Watch a policy in the terminal
  play     - Play with the keyboard
  history  - Browse stored training runs and episodes
  serve    - Start an SSH spectator server
  report   - Analyze a training history CSV
  config   - Print or write the default configuration

Examples:
  dino list
  dino run heuristic --episodes 5
  dino train --generations 30 --out best.yaml
  dino watch network --genome best.yaml
  dino play --companions 5
  dino serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Viewer tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dino/dino.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to simulation config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(configCmd)
}
