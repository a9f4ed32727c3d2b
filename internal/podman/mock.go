package podman

import (
	"context"
	"fmt"
	"sync"

	"github.com/opencontainers/go-digest"
)

// MockClient is a mock implementation of the Client interface for testing
type MockClient struct {
	mu sync.Mutex

	// Containers to return from ListContainers
	Containers []ContainerSummary

	// Details to return from InspectContainer, keyed by container ID
	Details map[string]ContainerDetails

	// Images to return from ListImages
	Images []ImageInfo

	// PullReturns maps image references to the digest a pull resolves to
	PullReturns map[string]digest.Digest

	// HealthReturns maps container IDs to probe results
	HealthReturns map[string]HealthStatus

	// Record of operations for verification
	PulledImages      []string
	StoppedContainers []string
	RemovedContainers []string
	RunSpecs          []RunSpec
	RemovedImages     []string
	HealthChecked     []string

	// Control behavior
	ListContainersError   error
	InspectContainerError error
	ListImagesError       error
	PullImageError        error
	StopContainerError    error
	RemoveContainerError  error
	RunContainerError     error
	RemoveImageError      error
	RunHealthcheckError   error

	// PullErrors scripts failures for specific image references only
	PullErrors map[string]error
}

// NewMockClient creates a new mock runtime client
func NewMockClient() *MockClient {
	return &MockClient{
		Details:       make(map[string]ContainerDetails),
		PullReturns:   make(map[string]digest.Digest),
		HealthReturns: make(map[string]HealthStatus),
		PullErrors:    make(map[string]error),
	}
}

// ListContainers returns the configured containers
func (m *MockClient) ListContainers(ctx context.Context) ([]ContainerSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListContainersError != nil {
		return nil, m.ListContainersError
	}
	return m.Containers, nil
}

// InspectContainer returns the configured details for a container ID
func (m *MockClient) InspectContainer(ctx context.Context, id string) (ContainerDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.InspectContainerError != nil {
		return ContainerDetails{}, m.InspectContainerError
	}

	if details, ok := m.Details[id]; ok {
		return details, nil
	}
	return ContainerDetails{}, fmt.Errorf("container not found: %s", id)
}

// ListImages returns the configured images
func (m *MockClient) ListImages(ctx context.Context) ([]ImageInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListImagesError != nil {
		return nil, m.ListImagesError
	}
	return m.Images, nil
}

// ListDanglingImages returns the configured images marked dangling
func (m *MockClient) ListDanglingImages(ctx context.Context) ([]ImageInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListImagesError != nil {
		return nil, m.ListImagesError
	}

	var dangling []ImageInfo
	for _, img := range m.Images {
		if img.Dangling {
			dangling = append(dangling, img)
		}
	}
	return dangling, nil
}

// PullImage records the pull and returns the scripted digest
func (m *MockClient) PullImage(ctx context.Context, ref string) (digest.Digest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PulledImages = append(m.PulledImages, ref)

	if err, ok := m.PullErrors[ref]; ok {
		return "", err
	}
	if m.PullImageError != nil {
		return "", m.PullImageError
	}

	if id, ok := m.PullReturns[ref]; ok {
		return id, nil
	}
	return digest.FromString("pulled-" + ref), nil
}

// StopContainer records the stop
func (m *MockClient) StopContainer(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StoppedContainers = append(m.StoppedContainers, id)

	if m.StopContainerError != nil {
		return m.StopContainerError
	}
	return nil
}

// RemoveContainer records the removal
func (m *MockClient) RemoveContainer(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RemovedContainers = append(m.RemovedContainers, id)

	if m.RemoveContainerError != nil {
		return m.RemoveContainerError
	}
	return nil
}

// RunContainer records the run spec and returns a synthetic ID
func (m *MockClient) RunContainer(ctx context.Context, spec RunSpec) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RunSpecs = append(m.RunSpecs, spec)

	if m.RunContainerError != nil {
		return "", m.RunContainerError
	}
	return "new-container-id-" + spec.Name, nil
}

// RemoveImage records the removal
func (m *MockClient) RemoveImage(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RemovedImages = append(m.RemovedImages, id)

	if m.RemoveImageError != nil {
		return m.RemoveImageError
	}
	return nil
}

// RunHealthcheck records the probe and returns the scripted status
func (m *MockClient) RunHealthcheck(ctx context.Context, id string) (HealthStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.HealthChecked = append(m.HealthChecked, id)

	if m.RunHealthcheckError != nil {
		return HealthUnhealthy, m.RunHealthcheckError
	}

	if status, ok := m.HealthReturns[id]; ok {
		return status, nil
	}
	return HealthNone, nil
}

// Reset clears all recorded operations
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PulledImages = nil
	m.StoppedContainers = nil
	m.RemovedContainers = nil
	m.RunSpecs = nil
	m.RemovedImages = nil
	m.HealthChecked = nil
}
