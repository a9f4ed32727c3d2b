package podman

import (
	"time"

	"github.com/opencontainers/go-digest"
)

// ContainerSummary is one entry of `podman ps`
type ContainerSummary struct {
	ID     string `json:"ID"`
	Image  string `json:"Image"`
	State  string `json:"State"`
	Status string `json:"Status"`
}

// Running reports whether the container was up when listed.
// Older podman releases only fill Status ("Up 2 hours"), newer ones State.
func (s ContainerSummary) Running() bool {
	if s.State == "running" {
		return true
	}
	return len(s.Status) >= 2 && s.Status[:2] == "Up"
}

// ContainerDetails holds the inspected state of a single container
type ContainerDetails struct {
	ID          string
	Name        string
	Image       string // image reference, e.g. "docker.io/library/nginx:latest"
	ImageDigest digest.Digest
	Labels      map[string]string
	Spec        RunSpec
}

// RunSpec captures everything needed to recreate a container with
// `podman run -d`. It is built once at inspect time and treated as
// immutable afterwards.
type RunSpec struct {
	Name          string
	Image         string
	Env           []string
	Mounts        []Mount
	Ports         []PortMapping
	RestartPolicy string
	Labels        map[string]string
	Args          []string
}

// Mount is a bind or volume mount of a container
type Mount struct {
	Source      string `json:"Source"`
	Destination string `json:"Destination"`
	RW          bool   `json:"RW"`
}

// PortMapping is a published container port
type PortMapping struct {
	HostIP        string `json:"hostIP"`
	HostPort      int    `json:"hostPort"`
	ContainerPort int    `json:"containerPort"`
	Protocol      string `json:"protocol"`
}

// ImageInfo holds information about a local image
type ImageInfo struct {
	ID        digest.Digest
	RepoTags  []string
	Dangling  bool
	CreatedAt time.Time
	Size      int64
}

// HealthStatus is the result of one healthcheck probe
type HealthStatus int

const (
	// HealthNone means the image defines no healthcheck
	HealthNone HealthStatus = iota
	// HealthHealthy means the probe passed
	HealthHealthy
	// HealthUnhealthy means the probe failed
	HealthUnhealthy
)

func (h HealthStatus) String() string {
	switch h {
	case HealthNone:
		return "none"
	case HealthHealthy:
		return "healthy"
	case HealthUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}
