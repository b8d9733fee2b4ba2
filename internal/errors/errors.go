package errors

import (
	"errors"
	"fmt"
)

// EngineDriverError is the base interface for all driver errors.
type EngineDriverError interface {
	error
	IsEngineDriverError() bool
}

// Compile-time verification that all error types implement EngineDriverError.
var (
	_ EngineDriverError = (*EngineNotFoundError)(nil)
	_ EngineDriverError = (*LaunchError)(nil)
	_ EngineDriverError = (*InvalidArgumentError)(nil)
	_ EngineDriverError = (*StderrError)(nil)
	_ EngineDriverError = (*ProcessError)(nil)
)

// Sentinel errors for lifecycle precondition violations.
var (
	// ErrAlreadyInitialized indicates Initialize was called twice.
	ErrAlreadyInitialized = errors.New("driver already initialized")

	// ErrNotInitialized indicates the engine process has not been started.
	ErrNotInitialized = errors.New("driver not initialized")

	// ErrDriverAborted indicates the driver has been aborted and cannot be reused.
	ErrDriverAborted = errors.New("driver aborted: drivers are single-use, create a new one with New()")

	// ErrAlreadyConnected indicates a connect handshake was already issued.
	ErrAlreadyConnected = errors.New("driver already connected")

	// ErrHandshakeNotReady indicates the prepare handshake has not succeeded.
	ErrHandshakeNotReady = errors.New("handshake not ready")

	// ErrHandshakeAttempted indicates the prepare handshake was already sent.
	// The handshake is attempted at most once per driver.
	ErrHandshakeAttempted = errors.New("handshake already attempted")

	// ErrQueueClosed indicates the command queue no longer accepts commands.
	ErrQueueClosed = errors.New("command queue closed")

	// ErrProcessNotStarted indicates the engine process has not been started.
	ErrProcessNotStarted = errors.New("engine process not started")

	// ErrStdinClosed indicates the engine's stdin was closed.
	ErrStdinClosed = errors.New("stdin closed")
)

// EngineNotFoundError indicates the engine executable could not be located.
type EngineNotFoundError struct {
	Path string
	Err  error
}

func (e *EngineNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("engine not found at %q: %v", e.Path, e.Err)
	}

	return fmt.Sprintf("engine not found at %q", e.Path)
}

func (e *EngineNotFoundError) Unwrap() error {
	return e.Err
}

// IsEngineDriverError implements EngineDriverError.
func (e *EngineNotFoundError) IsEngineDriverError() bool { return true }

// LaunchError indicates the engine process could not be created.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch engine %q: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// IsEngineDriverError implements EngineDriverError.
func (e *LaunchError) IsEngineDriverError() bool { return true }

// InvalidArgumentError indicates an operation received an unusable argument.
type InvalidArgumentError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// IsEngineDriverError implements EngineDriverError.
func (e *InvalidArgumentError) IsEngineDriverError() bool { return true }

// StderrError carries an engine stderr line that caused the driver to abort.
type StderrError struct {
	Line  string
	Fatal bool
}

func (e *StderrError) Error() string {
	if e.Fatal {
		return fmt.Sprintf("engine reported fatal error: %s", e.Line)
	}

	return fmt.Sprintf("engine reported error: %s", e.Line)
}

// IsEngineDriverError implements EngineDriverError.
func (e *StderrError) IsEngineDriverError() bool { return true }

// ProcessError indicates the engine process exited on its own.
type ProcessError struct {
	ExitCode int
	Err      error
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("engine process exited (exit %d): %v", e.ExitCode, e.Err)
	}

	return fmt.Sprintf("engine process exited (exit %d)", e.ExitCode)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// IsEngineDriverError implements EngineDriverError.
func (e *ProcessError) IsEngineDriverError() bool { return true }
