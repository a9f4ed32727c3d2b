// Package scheduler drives update cycles: a single cycle by default,
// or a ticker loop when an interval is configured.
package scheduler

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sycured/podhawk/internal/config"
	"github.com/sycured/podhawk/internal/inventory"
	"github.com/sycured/podhawk/internal/podman"
	"github.com/sycured/podhawk/internal/prune"
	"github.com/sycured/podhawk/internal/report"
	"github.com/sycured/podhawk/internal/updater"
	"github.com/sycured/podhawk/pkg/log"
)

// Run starts the scheduler main loop
func Run(cfg config.Config, client podman.Client) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT, syscall.SIGUSR1)
	go handleSignals(sigChan, cancel)

	// Prune only mode
	if cfg.PruneOnly {
		log.Info("Running in prune-only mode")
		return prune.Run(ctx, cfg, client)
	}

	// Run once mode
	if cfg.RunOnce {
		log.Info("Running a single update cycle")
		return runCycle(ctx, cfg, client)
	}

	return runIntervalMode(ctx, cfg, client)
}

// runIntervalMode runs cycles at regular intervals
func runIntervalMode(ctx context.Context, cfg config.Config, client podman.Client) error {
	log.Infof("Starting scheduler with interval: %v", cfg.Updates.CheckInterval)

	// Run initial cycle immediately
	if err := runCycle(ctx, cfg, client); err != nil {
		log.ErrorErr("Error in initial cycle", err)
	}

	ticker := time.NewTicker(cfg.Updates.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Scheduler stopped")
			return nil
		case <-ticker.C:
			if err := runCycle(ctx, cfg, client); err != nil {
				log.ErrorErr("Error in update cycle", err)
			}
		}
	}
}

// runCycle runs one snapshot / update / report / prune sequence.
// Only a snapshot failure is an error; per-container failures are
// already folded into the report.
func runCycle(ctx context.Context, cfg config.Config, client podman.Client) error {
	log.Info("==== Starting new cycle ====")

	if !cfg.Updates.Enabled {
		log.Info("Updates are disabled, skipping update pass")
	} else {
		records, err := inventory.Take(ctx, client)
		if err != nil {
			return err
		}

		results := updater.Run(ctx, cfg, client, records)
		report.Render(os.Stdout, results)
	}

	if err := prune.Run(ctx, cfg, client); err != nil {
		log.ErrorErr("Prune failed", err)
	}

	log.Info("==== Cycle complete ====")
	return nil
}
