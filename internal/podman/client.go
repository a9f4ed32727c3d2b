package podman

import (
	"context"
	"fmt"
	"strings"

	"github.com/opencontainers/go-digest"
)

// Client is the interface for container runtime operations
type Client interface {
	ListContainers(ctx context.Context) ([]ContainerSummary, error)
	InspectContainer(ctx context.Context, id string) (ContainerDetails, error)
	ListImages(ctx context.Context) ([]ImageInfo, error)
	ListDanglingImages(ctx context.Context) ([]ImageInfo, error)
	PullImage(ctx context.Context, ref string) (digest.Digest, error)
	StopContainer(ctx context.Context, id string) error
	RemoveContainer(ctx context.Context, id string) error
	RunContainer(ctx context.Context, spec RunSpec) (string, error)
	RemoveImage(ctx context.Context, id string) error
	RunHealthcheck(ctx context.Context, id string) (HealthStatus, error)
}

// PodmanClient implements the Client interface by invoking the podman
// binary as a subprocess. It holds no state besides the binary path;
// the runtime itself is the sole source of truth.
type PodmanClient struct {
	exec runner
}

// NewClient creates a client for the given podman binary path and
// verifies the binary is runnable.
func NewClient(ctx context.Context, binary string) (*PodmanClient, error) {
	c := &PodmanClient{exec: &cliRunner{binary: binary}}

	out, err := c.exec.run(ctx, "--version")
	if err != nil {
		return nil, fmt.Errorf("failed to run %s: %w", binary, err)
	}

	version := strings.TrimSpace(string(out))
	if version == "" {
		return nil, fmt.Errorf("%s reported no version", binary)
	}

	return c, nil
}

// normalizeDigest converts podman image ID output to a canonical digest.
// `podman pull -q` and the images listing print a bare hex ID on older
// releases and a sha256-prefixed one on newer releases.
func normalizeDigest(s string) digest.Digest {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, ":") {
		s = string(digest.SHA256) + ":" + s
	}
	return digest.Digest(s)
}
