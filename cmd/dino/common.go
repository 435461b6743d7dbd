package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/dino-evo/internal/agent"
	"github.com/vovakirdan/dino-evo/internal/config"
	"github.com/vovakirdan/dino-evo/internal/core"
	"github.com/vovakirdan/dino-evo/internal/storage"
)

func newLogger(prefix string) *log.Logger {
	return newLoggerTo(os.Stderr, prefix)
}

// newViewerLogger logs to ~/.dino/dino.log so output does not tear the
// alternate screen. Returns a closer for the file.
func newViewerLogger(prefix string) (*log.Logger, func()) {
	path := filepath.Join(os.Getenv("HOME"), ".dino", "dino.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	return newLoggerTo(f, prefix), func() { f.Close() }
}

func newLoggerTo(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig resolves --config and --difficulty.
func loadConfig() (config.DinoConfig, error) {
	preset := config.ParsePreset(flagDifficulty)
	if flagDifficulty != "" && preset == "" {
		return config.DinoConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
	}
	cfg, err := config.Load(flagConfig, preset)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = seed()
	return cfg
}

// openStore opens the results database. Failure is logged and the command
// continues without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func loadNetwork(path string, logger *log.Logger) (*agent.Network, error) {
	if path == "" {
		return nil, nil
	}
	n, meta, err := agent.LoadGenome(path)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded genome", "path", path, "hidden", meta.Hidden, "fitness", meta.Fitness)
	return n, nil
}

func exitErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
