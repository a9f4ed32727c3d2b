package podman

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// RuntimeError is returned when a podman subcommand exits non-zero
// or cannot be started at all.
type RuntimeError struct {
	Op       string // podman subcommand, e.g. "pull"
	ExitCode int    // -1 when the command could not be started
	Stderr   string
	Err      error
}

func (e *RuntimeError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("podman %s failed (exit %d): %s", e.Op, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("podman %s failed (exit %d): %v", e.Op, e.ExitCode, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// runner executes one podman subcommand and returns its stdout.
// It is a seam so tests can fake the CLI without a podman install.
// On failure stdout is still returned alongside a *RuntimeError,
// since some subcommands (healthcheck run) write diagnostics before
// exiting non-zero.
type runner interface {
	run(ctx context.Context, args ...string) ([]byte, error)
}

// cliRunner invokes the real podman binary as a subprocess.
// Every call blocks until the subprocess exits; cancelling the
// context kills it.
type cliRunner struct {
	binary string
}

func (r *cliRunner) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		op := ""
		if len(args) > 0 {
			op = args[0]
		}
		return stdout.Bytes(), &RuntimeError{
			Op:       op,
			ExitCode: exitCode,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}

	return stdout.Bytes(), nil
}
