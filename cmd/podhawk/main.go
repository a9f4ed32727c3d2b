package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"context"

	"github.com/sycured/podhawk/internal/config"
	"github.com/sycured/podhawk/internal/podman"
	"github.com/sycured/podhawk/internal/scheduler"
	"github.com/sycured/podhawk/pkg/log"
	flag "github.com/spf13/pflag"
)

const version = "0.3.0"

var (
	// commit is injected at build time
	commit = "unknown"
)

func main() {
	// Panic recovery to ensure logs are flushed and errors captured
	defer func() {
		if r := recover(); r != nil {
			log.Error(fmt.Sprintf("PANIC: %v\nStack Trace:\n%s", r, debug.Stack()))
			os.Exit(1)
		}
	}()

	// Define CLI flags
	configPath := flag.String("config", "/etc/podhawk/podhawk.yml", "Path to config file")
	podmanBinary := flag.String("podman", "", "Path to the podman binary")
	interval := flag.Duration("interval", 0, "Repeat update cycles at this interval (e.g., 15m, 1h)")
	once := flag.Bool("once", false, "Run a single update cycle and exit (default unless --interval is set)")
	dryRun := flag.Bool("dry-run", false, "Pull and compare only, do not recreate containers")
	logLevel := flag.String("log-level", "", "Logging level (debug, info, warn, error)")
	pruneOnly := flag.Bool("prune-only", false, "Run only image pruning and exit")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("Podhawk version %s (commit: %s, %s/%s)\n", version, commit, runtime.GOOS, runtime.GOARCH)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Apply CLI flag overrides
	if *podmanBinary != "" {
		cfg.Podman.Binary = *podmanBinary
	}
	if *interval > 0 {
		cfg.Updates.CheckInterval = *interval
		cfg.RunOnce = false
	}
	if *once {
		cfg.RunOnce = true
	}
	if *dryRun {
		cfg.Updates.DryRun = true
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *pruneOnly {
		cfg.PruneOnly = true
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log.Initialize(cfg.Log.Level, cfg.Log.JSON)

	log.Infof("Podhawk version %s starting", version)
	log.Infof("Build: commit=%s, os=%s, arch=%s", commit, runtime.GOOS, runtime.GOARCH)
	log.Infof("Podman binary: %s", cfg.Podman.Binary)
	log.Infof("Dry-run mode: %v", cfg.Updates.DryRun)

	if !cfg.RunOnce {
		log.Infof("Update interval: %v", cfg.Updates.CheckInterval)
	}

	// Create runtime client
	client, err := podman.NewClient(context.Background(), cfg.Podman.Binary)
	if err != nil {
		log.ErrorErr("Failed to reach the podman binary", err)
		os.Exit(1)
	}

	// Start scheduler. Per-container failures are folded into the
	// report; only a snapshot or setup failure reaches here.
	if err := scheduler.Run(cfg, client); err != nil {
		log.ErrorErr("Run failed", err)
		os.Exit(1)
	}

	log.Info("Podhawk stopped")
}

// loadConfig loads and merges configuration from file and environment
func loadConfig(path string) (config.Config, error) {
	// Check if config env var is set
	if envPath := os.Getenv("PODHAWK_CONFIG"); envPath != "" {
		path = envPath
	}

	// Load from file (or use defaults if file doesn't exist)
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return config.Config{}, err
	}

	// Apply environment variable overrides
	cfg.ApplyEnvironmentOverrides()

	return cfg, nil
}
