// Package inventory captures a point-in-time snapshot of the running
// containers before any mutation begins.
package inventory

import (
	"context"
	"fmt"

	"github.com/opencontainers/go-digest"
	"github.com/sycured/podhawk/internal/podman"
	"github.com/sycured/podhawk/pkg/log"
	"github.com/sycured/podhawk/pkg/util"
)

// ContainerRecord is one running container captured at snapshot time.
// It is immutable for the rest of the run and carries everything
// needed to recreate the container against a new image.
type ContainerRecord struct {
	ID     string
	Name   string
	Image  string
	Digest digest.Digest
	Labels map[string]string
	Spec   podman.RunSpec
}

// Take enumerates running containers and materializes one record per
// container. Any failure here is fatal: no later step can proceed
// without a complete snapshot, and a record missing its recreation
// configuration would be unusable.
func Take(ctx context.Context, client podman.Client) ([]ContainerRecord, error) {
	containers, err := client.ListContainers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate running containers: %w", err)
	}

	records := make([]ContainerRecord, 0, len(containers))
	for _, c := range containers {
		details, err := client.InspectContainer(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to capture configuration of container %s: %w", util.ShortID(c.ID), err)
		}

		log.Debugf("Captured container %s (%s) running image %s", details.Name, util.ShortID(details.ID), details.Image)

		records = append(records, ContainerRecord{
			ID:     details.ID,
			Name:   details.Name,
			Image:  details.Image,
			Digest: details.ImageDigest,
			Labels: details.Labels,
			Spec:   details.Spec,
		})
	}

	log.Infof("Snapshot complete: %d running containers", len(records))
	return records, nil
}
