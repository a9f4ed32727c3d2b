package podman

import (
	"context"
	"fmt"
	"strings"
)

// fakeResponse scripts the outcome of one podman invocation
type fakeResponse struct {
	out []byte
	err error
}

// fakeRunner stands in for the podman binary. Responses are keyed by
// the full space-joined argv, falling back to the subcommand alone.
type fakeRunner struct {
	calls     [][]string
	responses map[string]fakeResponse
}

func (f *fakeRunner) run(ctx context.Context, args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)

	key := strings.Join(args, " ")
	if resp, ok := f.responses[key]; ok {
		return resp.out, resp.err
	}
	if len(args) > 0 {
		if resp, ok := f.responses[args[0]]; ok {
			return resp.out, resp.err
		}
	}
	return nil, fmt.Errorf("unexpected command: podman %s", key)
}

func newFakeClient(responses map[string]fakeResponse) (*PodmanClient, *fakeRunner) {
	runner := &fakeRunner{responses: responses}
	return &PodmanClient{exec: runner}, runner
}
