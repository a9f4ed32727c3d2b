package podman

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ListContainers returns a list of all running containers
func (c *PodmanClient) ListContainers(ctx context.Context) ([]ContainerSummary, error) {
	out, err := c.exec.run(ctx, "ps", "--format", "json")
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	var all []ContainerSummary
	if err := json.Unmarshal(out, &all); err != nil {
		return nil, fmt.Errorf("failed to parse container list: %w", err)
	}

	var result []ContainerSummary
	for _, s := range all {
		if s.Running() {
			result = append(result, s)
		}
	}

	return result, nil
}

// inspectEntry mirrors the slice element of `podman inspect --format json`.
// Field matching is case-insensitive, which covers the casing drift
// between podman releases.
type inspectEntry struct {
	ID        string   `json:"Id"`
	Name      string   `json:"Name"`
	Image     string   `json:"Image"`
	ImageName string   `json:"ImageName"`
	Args      []string `json:"Args"`
	Config    struct {
		Image  string            `json:"Image"`
		Env    []string          `json:"Env"`
		Labels map[string]string `json:"Labels"`
	} `json:"Config"`
	HostConfig struct {
		RestartPolicy struct {
			Name string `json:"Name"`
		} `json:"RestartPolicy"`
	} `json:"HostConfig"`
	Mounts          []Mount `json:"Mounts"`
	NetworkSettings struct {
		Ports json.RawMessage `json:"Ports"`
	} `json:"NetworkSettings"`
}

// InspectContainer returns the full configuration of a container,
// sufficient to recreate it.
func (c *PodmanClient) InspectContainer(ctx context.Context, id string) (ContainerDetails, error) {
	out, err := c.exec.run(ctx, "inspect", "--format", "json", "--type", "container", id)
	if err != nil {
		return ContainerDetails{}, fmt.Errorf("failed to inspect container %s: %w", id, err)
	}

	var entries []inspectEntry
	if err := json.Unmarshal(out, &entries); err != nil {
		return ContainerDetails{}, fmt.Errorf("failed to parse inspect output for %s: %w", id, err)
	}
	if len(entries) == 0 {
		return ContainerDetails{}, fmt.Errorf("no inspect data for container %s", id)
	}
	entry := entries[0]

	name := strings.TrimPrefix(entry.Name, "/")

	imageRef := entry.ImageName
	if imageRef == "" {
		imageRef = entry.Config.Image
	}

	ports, err := parsePorts(entry.NetworkSettings.Ports)
	if err != nil {
		return ContainerDetails{}, fmt.Errorf("failed to parse port mappings for %s: %w", id, err)
	}

	return ContainerDetails{
		ID:          entry.ID,
		Name:        name,
		Image:       imageRef,
		ImageDigest: normalizeDigest(entry.Image),
		Labels:      entry.Config.Labels,
		Spec: RunSpec{
			Name:          name,
			Image:         imageRef,
			Env:           entry.Config.Env,
			Mounts:        entry.Mounts,
			Ports:         ports,
			RestartPolicy: entry.HostConfig.RestartPolicy.Name,
			Labels:        entry.Config.Labels,
			Args:          entry.Args,
		},
	}, nil
}

// parsePorts handles both shapes `podman inspect` has used for
// NetworkSettings.Ports: a flat list of mappings, and the docker-style
// map keyed by "port/proto".
func parsePorts(raw json.RawMessage) ([]PortMapping, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var list []PortMapping
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var byPort map[string][]struct {
		HostIP   string `json:"HostIp"`
		HostPort string `json:"HostPort"`
	}
	if err := json.Unmarshal(raw, &byPort); err != nil {
		return nil, err
	}

	// Deterministic order for recreation and tests
	keys := make([]string, 0, len(byPort))
	for key := range byPort {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var result []PortMapping
	for _, key := range keys {
		containerPort, protocol, err := splitPortProto(key)
		if err != nil {
			return nil, err
		}
		for _, binding := range byPort[key] {
			hostPort, err := strconv.Atoi(binding.HostPort)
			if err != nil {
				return nil, fmt.Errorf("invalid host port %q: %w", binding.HostPort, err)
			}
			result = append(result, PortMapping{
				HostIP:        binding.HostIP,
				HostPort:      hostPort,
				ContainerPort: containerPort,
				Protocol:      protocol,
			})
		}
	}

	return result, nil
}

func splitPortProto(key string) (int, string, error) {
	portStr, protocol, found := strings.Cut(key, "/")
	if !found {
		protocol = "tcp"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, "", fmt.Errorf("invalid port key %q: %w", key, err)
	}
	return port, protocol, nil
}

// StopContainer stops a running container
func (c *PodmanClient) StopContainer(ctx context.Context, id string) error {
	if _, err := c.exec.run(ctx, "stop", id); err != nil {
		return fmt.Errorf("failed to stop container %s: %w", id, err)
	}
	return nil
}

// RemoveContainer removes a container
func (c *PodmanClient) RemoveContainer(ctx context.Context, id string) error {
	if _, err := c.exec.run(ctx, "rm", id); err != nil {
		return fmt.Errorf("failed to remove container %s: %w", id, err)
	}
	return nil
}

// RunContainer creates and starts a detached container from the given
// spec and returns the new container ID.
func (c *PodmanClient) RunContainer(ctx context.Context, spec RunSpec) (string, error) {
	out, err := c.exec.run(ctx, BuildRunArgs(spec)...)
	if err != nil {
		return "", fmt.Errorf("failed to run container %s: %w", spec.Name, err)
	}

	id := strings.TrimSpace(string(out))
	if id == "" {
		return "", fmt.Errorf("podman run for %s returned no container ID", spec.Name)
	}
	return id, nil
}
