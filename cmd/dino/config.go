package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-evo/internal/config"
)

var flagConfigWrite string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or write the simulation configuration",
	Long: `Print the effective configuration (after --config and --difficulty)
as YAML, or write it to a file to start customizing.

Config search order:
  1. --config <path>
  2. ~/.dino/config.yaml
  3. ./configs/dino.yaml
  4. built-in defaults

Examples:
  dino config
  dino config --difficulty hard
  dino config --write ~/.dino/config.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigWrite, "write", "", "Write the configuration to this path")
}

func runConfig(cmd *cobra.Command, args []string) {
	if flagConfig == "" && flagDifficulty == "" && flagConfigWrite == "" {
		os.Stdout.Write(config.DefaultYAML()) //nolint:errcheck // Console output
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		exitErr("%v", err)
	}

	if flagConfigWrite != "" {
		if err := cfg.WriteYAML(flagConfigWrite); err != nil {
			exitErr("%v", err)
		}
		fmt.Printf("Wrote %s\n", flagConfigWrite)
		return
	}

	data, err := cfg.Encode()
	if err != nil {
		exitErr("%v", err)
	}
	os.Stdout.Write(data) //nolint:errcheck // Console output
}
