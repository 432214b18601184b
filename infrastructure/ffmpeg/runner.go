package ffmpeg

import (
	"bytes"
	"context"
	"os/exec"
)

// CommandRunner defines the interface for running external commands
// This allows mocking exec.Command in tests
type CommandRunner interface {
	// Run executes a command and returns its captured stderr and any error
	Run(ctx context.Context, name string, args ...string) (string, error)
	// Output executes a command and returns its stdout
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecCommandRunner is the production implementation using os/exec.
// Stderr is captured rather than streamed so failures can carry the
// engine's diagnostic text back to the caller.
type ExecCommandRunner struct{}

// Run executes a command, capturing stderr for error reporting
func (r *ExecCommandRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stderr.String(), err
}

// Output executes a command and returns its stdout
func (r *ExecCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}
