package podman

import (
	"context"
	"errors"
	"strings"
)

// RunHealthcheck executes one healthcheck probe for the container.
// `podman healthcheck run` exits 0 when healthy, exits non-zero with
// "unhealthy" on a failed probe, and reports "has no defined
// healthcheck" for images without one. Only errors that are not an
// expressed probe result are returned as errors.
func (c *PodmanClient) RunHealthcheck(ctx context.Context, id string) (HealthStatus, error) {
	out, err := c.exec.run(ctx, "healthcheck", "run", id)
	if err == nil {
		return HealthHealthy, nil
	}

	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		combined := string(out) + "\n" + runtimeErr.Stderr
		if strings.Contains(combined, "has no defined healthcheck") {
			return HealthNone, nil
		}
		if strings.Contains(combined, "unhealthy") {
			return HealthUnhealthy, nil
		}
	}

	return HealthUnhealthy, err
}
