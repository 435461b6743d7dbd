package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-evo/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available policies",
	Long:  `Shows every controller policy that can drive the runners.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	policies := registry.List()

	fmt.Println("Available policies:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, p := range policies {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, p := range policies {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'dino watch <id>' to watch a policy play.")
}
