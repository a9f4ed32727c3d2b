// Package updater walks the snapshot sequentially, pulls each image
// and recreates containers whose image digest changed. A failure on
// one container never aborts processing of the others.
package updater

import (
	"errors"
	"fmt"
	"time"

	"context"

	"github.com/cenkalti/backoff/v4"
	"github.com/opencontainers/go-digest"
	"github.com/sycured/podhawk/internal/config"
	"github.com/sycured/podhawk/internal/inventory"
	"github.com/sycured/podhawk/internal/podman"
	"github.com/sycured/podhawk/pkg/log"
	"github.com/sycured/podhawk/pkg/util"
)

// Outcome classifies what happened to one container during a cycle
type Outcome int

const (
	// OutcomeUnchanged means the pull produced no new digest
	OutcomeUnchanged Outcome = iota
	// OutcomeUpdated means the container was recreated on a new image
	OutcomeUpdated
	// OutcomeSkipped means the container was not eligible for updates
	OutcomeSkipped
	// OutcomeFailed means pull or recreation failed for this container
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeUpdated:
		return "updated"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result pairs a container record with the outcome of its update
type Result struct {
	Record    inventory.ContainerRecord
	Outcome   Outcome
	NewDigest digest.Digest
	Health    podman.HealthStatus
	Reason    string
	Err       error
}

// Run processes every record sequentially and accumulates one Result
// per record. It never returns early on a per-container failure; only
// context cancellation cuts the loop short.
func Run(ctx context.Context, cfg config.Config, client podman.Client, records []inventory.ContainerRecord) []Result {
	startTime := time.Now()
	log.Infof("Starting update pass over %d containers", len(records))

	results := make([]Result, 0, len(records))

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			log.Warn("Update pass interrupted")
			break
		}
		results = append(results, processRecord(ctx, cfg, client, record))
	}

	log.Infof("Update pass complete (in %v)", time.Since(startTime))
	return results
}

func processRecord(ctx context.Context, cfg config.Config, client podman.Client, record inventory.ContainerRecord) Result {
	result := Result{Record: record}

	decision := DetermineEligibility(record, cfg.Updates)
	if !decision.Eligible {
		log.Infof("Skipping container %s (%s): %s", record.Name, util.ShortID(record.ID), decision.Reason)
		result.Outcome = OutcomeSkipped
		result.Reason = decision.Reason
		return result
	}

	log.Infof("Pulling image %s for container %s", record.Image, record.Name)
	newDigest, err := client.PullImage(ctx, record.Image)
	if err != nil {
		log.Errorf("Failed to pull image %s: %v", record.Image, err)
		result.Outcome = OutcomeFailed
		result.Err = fmt.Errorf("pull %s: %w", record.Image, err)
		return result
	}
	result.NewDigest = newDigest

	if newDigest == record.Digest {
		log.Debugf("Image %s unchanged at %s", record.Image, util.ShortID(newDigest.Encoded()))
		result.Outcome = OutcomeUnchanged
		return result
	}

	log.Infof("New image for %s: %s -> %s", record.Image,
		util.ShortID(record.Digest.Encoded()), util.ShortID(newDigest.Encoded()))

	if cfg.Updates.DryRun {
		log.Infof("[DRY-RUN] Would recreate container %s with image %s", record.Name, record.Image)
		result.Outcome = OutcomeUpdated
		return result
	}

	newID, err := recreateContainer(ctx, client, record)
	if err != nil {
		log.Errorf("Failed to recreate container %s: %v", record.Name, err)
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}

	result.Outcome = OutcomeUpdated

	if cfg.Updates.Healthcheck.Enabled {
		result.Health = probeHealth(ctx, client, newID, record.Name, cfg.Updates.Healthcheck)
	}

	log.Infof("Container %s updated (old: %s, new: %s)", record.Name, util.ShortID(record.ID), util.ShortID(newID))
	return result
}

// recreateContainer stops and removes the old container, then starts a
// replacement from the captured spec. The spec keeps the original
// name, so the old container must be gone before podman run.
func recreateContainer(ctx context.Context, client podman.Client, record inventory.ContainerRecord) (string, error) {
	log.Infof("Stopping container %s (%s)", record.Name, util.ShortID(record.ID))
	if err := client.StopContainer(ctx, record.ID); err != nil {
		return "", fmt.Errorf("stop %s: %w", record.Name, err)
	}

	log.Infof("Removing container %s (%s)", record.Name, util.ShortID(record.ID))
	if err := client.RemoveContainer(ctx, record.ID); err != nil {
		return "", fmt.Errorf("remove %s: %w", record.Name, err)
	}

	log.Infof("Starting replacement for %s", record.Name)
	newID, err := client.RunContainer(ctx, record.Spec)
	if err != nil {
		return "", fmt.Errorf("recreate %s: %w", record.Name, err)
	}

	return newID, nil
}

var errUnhealthy = errors.New("container is unhealthy")

// probeHealth runs the image-defined healthcheck against the freshly
// recreated container, retrying failed probes at a constant interval.
// The result is informational only: an unhealthy replacement is
// reported, never rolled back.
func probeHealth(ctx context.Context, client podman.Client, id, name string, cfg config.HealthcheckConfig) podman.HealthStatus {
	status := podman.HealthUnhealthy
	attempt := 0

	probe := func() error {
		attempt++
		s, err := client.RunHealthcheck(ctx, id)
		if err != nil {
			log.Warnf("Healthcheck probe %d for %s errored: %v", attempt, name, err)
			return backoff.Permanent(err)
		}
		status = s
		log.Debugf("Healthcheck probe %d for %s: %s", attempt, name, s)
		if s == podman.HealthUnhealthy {
			return errUnhealthy
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(cfg.Interval), uint64(cfg.Attempts-1)),
		ctx,
	)
	_ = backoff.Retry(probe, policy)

	switch status {
	case podman.HealthNone:
		log.Infof("Container %s defines no healthcheck, continuing", name)
	case podman.HealthHealthy:
		log.Infof("Container %s is healthy", name)
	case podman.HealthUnhealthy:
		log.Warnf("Container %s is unhealthy after %d probes, inspect its logs", name, attempt)
	}

	return status
}
