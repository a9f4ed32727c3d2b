package podman

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/opencontainers/go-digest"
)

// imageEntry mirrors one element of `podman images --format json`
type imageEntry struct {
	ID      string   `json:"Id"`
	Names   []string `json:"Names"`
	Created int64    `json:"Created"`
	Size    int64    `json:"Size"`
}

func (e imageEntry) toInfo() ImageInfo {
	return ImageInfo{
		ID:        normalizeDigest(e.ID),
		RepoTags:  e.Names,
		Dangling:  len(e.Names) == 0,
		CreatedAt: time.Unix(e.Created, 0),
		Size:      e.Size,
	}
}

// ListImages returns a list of all local images
func (c *PodmanClient) ListImages(ctx context.Context) ([]ImageInfo, error) {
	out, err := c.exec.run(ctx, "images", "--format", "json")
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	var entries []imageEntry
	if err := json.Unmarshal(out, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse image list: %w", err)
	}

	result := make([]ImageInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.toInfo())
	}
	return result, nil
}

// ListDanglingImages returns local images with no name left
func (c *PodmanClient) ListDanglingImages(ctx context.Context) ([]ImageInfo, error) {
	out, err := c.exec.run(ctx, "images", "--format", "json", "--filter", "dangling=true")
	if err != nil {
		return nil, fmt.Errorf("failed to list dangling images: %w", err)
	}

	var entries []imageEntry
	if err := json.Unmarshal(out, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse dangling image list: %w", err)
	}

	result := make([]ImageInfo, 0, len(entries))
	for _, e := range entries {
		info := e.toInfo()
		info.Dangling = true
		result = append(result, info)
	}
	return result, nil
}

// PullImage pulls the given image reference and returns the digest of
// the locally resolved image after the pull.
func (c *PodmanClient) PullImage(ctx context.Context, ref string) (digest.Digest, error) {
	out, err := c.exec.run(ctx, "pull", "-q", ref)
	if err != nil {
		return "", fmt.Errorf("failed to pull image %s: %w", ref, err)
	}

	id := normalizeDigest(string(out))
	if id == "" {
		return "", fmt.Errorf("pull of %s returned no image ID", ref)
	}
	return id, nil
}

// RemoveImage removes an image by ID
func (c *PodmanClient) RemoveImage(ctx context.Context, id string) error {
	if _, err := c.exec.run(ctx, "rmi", id); err != nil {
		return fmt.Errorf("failed to remove image %s: %w", id, err)
	}
	return nil
}
