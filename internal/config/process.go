// Package config provides configuration types for the engine driver.
package config

import (
	"context"
	"io"
)

// Process defines the interface the driver uses to talk to an engine.
// Implement this to provide fake engines for testing, or alternative
// launch strategies such as containers or remote shells.
//
// The default implementation is subprocess.Process which spawns a local
// child process. Custom implementations can be injected via Options.Process.
type Process interface {
	// Start launches the engine found at path.
	// It is called exactly once, before any other method.
	Start(ctx context.Context, path string) error

	// Stdout returns the engine's standard output stream.
	Stdout() io.Reader

	// Stderr returns the engine's standard error stream.
	Stderr() io.Reader

	// WriteLine writes line followed by a newline to the engine's stdin.
	// The write is complete when it returns; nothing is buffered.
	WriteLine(ctx context.Context, line string) error

	// Exited returns a channel that is closed once the process has terminated.
	Exited() <-chan struct{}

	// ExitError returns the process exit status once Exited is closed.
	// A nil error means a clean exit.
	ExitError() error

	// Kill forcibly terminates the process. Killing an exited process is a no-op.
	Kill() error

	// Close releases stdin, stdout, and stderr so blocked readers and
	// writers return. It's safe to call Close multiple times.
	Close() error

	// Pid returns the OS process ID, or 0 if not running.
	Pid() int
}
