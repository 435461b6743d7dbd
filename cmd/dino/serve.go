package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-evo/internal/platform/tui"
	"github.com/vovakirdan/dino-evo/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServePolicy string
	flagServeCount  int
	flagServeGenome string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH spectator server",
	Long: `Start an SSH server that shows a live simulation to every connection.

Each SSH session gets its own independent world driven by the chosen policy.
Spectators cannot control the runners. Finished episodes are recorded in the
shared database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.dino/host_key

Examples:
  dino serve                             # Listen on :23234 with auto-generated key
  dino serve --ssh :2222                 # Listen on port 2222
  dino serve --policy network --genome best.yaml

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServePolicy, "policy", "heuristic", "Policy driving the runners")
	serveCmd.Flags().IntVarP(&flagServeCount, "entities", "n", 10, "Runners per session")
	serveCmd.Flags().StringVar(&flagServeGenome, "genome", "", "Genome file for the network policy")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger("dino-ssh")

	if !registry.Exists(flagServePolicy) {
		exitErr("unknown policy %q", flagServePolicy)
	}
	cfg, err := loadConfig()
	if err != nil {
		exitErr("%v", err)
	}
	network, err := loadNetwork(flagServeGenome, logger)
	if err != nil {
		exitErr("%v", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	serverCfg := tui.DefaultSSHServerConfig()
	serverCfg.Address = flagSSHAddr
	serverCfg.HostKeyPath = flagHostKey
	serverCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	serverCfg.Config = cfg
	serverCfg.Policy = flagServePolicy
	serverCfg.Population = flagServeCount
	serverCfg.Network = network
	serverCfg.TickRate = flagFPS
	serverCfg.Seed = flagSeed

	server, err := tui.NewSSHServer(serverCfg, store, logger)
	if err != nil {
		exitErr("creating server: %v", err)
	}

	fmt.Printf("Starting dino SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		exitErr("server: %v", err)
	}
}
