package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sycured/podhawk/internal/inventory"
	"github.com/sycured/podhawk/internal/podman"
	"github.com/sycured/podhawk/internal/updater"
)

func sampleResults() []updater.Result {
	return []updater.Result{
		{
			Record:    inventory.ContainerRecord{Name: "web", Image: "app:latest", Digest: "sha256:d1"},
			Outcome:   updater.OutcomeUpdated,
			NewDigest: "sha256:d1b",
		},
		{
			Record:  inventory.ContainerRecord{Name: "db", Image: "postgres:14", Digest: "sha256:d2"},
			Outcome: updater.OutcomeUnchanged,
		},
		{
			Record:  inventory.ContainerRecord{Name: "cache", Image: "redis:7"},
			Outcome: updater.OutcomeSkipped,
			Reason:  "label io.podhawk.autoupdate=false",
		},
		{
			Record:  inventory.ContainerRecord{Name: "queue", Image: "rabbitmq:3"},
			Outcome: updater.OutcomeFailed,
			Err:     errors.New("pull rabbitmq:3: registry unreachable"),
		},
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleResults())

	if summary.Updated != 1 || summary.Unchanged != 1 || summary.Skipped != 1 || summary.Failed != 1 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if summary.Total != 4 {
		t.Errorf("Expected total 4, got %d", summary.Total)
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleResults())
	out := buf.String()

	for _, want := range []string{
		"web",
		"updated (d1 -> d1b)",
		"postgres:14",
		"unchanged",
		"skipped (label io.podhawk.autoupdate=false)",
		"failed: pull rabbitmq:3: registry unreachable",
		"Totals: 1 updated, 1 unchanged, 1 skipped, 1 failed (4 containers)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderUnhealthyAnnotation(t *testing.T) {
	results := []updater.Result{
		{
			Record:    inventory.ContainerRecord{Name: "web", Image: "app:latest", Digest: "sha256:d1"},
			Outcome:   updater.OutcomeUpdated,
			NewDigest: "sha256:d1b",
			Health:    podman.HealthUnhealthy,
		},
	}

	var buf bytes.Buffer
	Render(&buf, results)

	if !strings.Contains(buf.String(), "[unhealthy]") {
		t.Errorf("Expected unhealthy annotation:\n%s", buf.String())
	}
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, nil)

	if !strings.Contains(buf.String(), "No running containers found") {
		t.Errorf("Unexpected empty-report output: %q", buf.String())
	}
}
