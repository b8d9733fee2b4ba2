package enginedriver

import "github.com/wagiedev/engine-driver-go/internal/errors"

// Re-export error types from internal package

// EngineNotFoundError indicates the engine executable was not found.
type EngineNotFoundError = errors.EngineNotFoundError

// LaunchError indicates the engine process could not be started.
type LaunchError = errors.LaunchError

// InvalidArgumentError indicates a connect or prepare parameter was rejected.
type InvalidArgumentError = errors.InvalidArgumentError

// StderrError carries the engine stderr line that aborted the driver.
type StderrError = errors.StderrError

// ProcessError indicates the engine exited on its own.
type ProcessError = errors.ProcessError

// EngineDriverError is the base interface for all driver errors.
type EngineDriverError = errors.EngineDriverError

// Re-export sentinel errors from internal package.
var (
	// ErrAlreadyInitialized indicates Initialize was called twice.
	ErrAlreadyInitialized = errors.ErrAlreadyInitialized

	// ErrNotInitialized indicates the engine has not been started.
	ErrNotInitialized = errors.ErrNotInitialized

	// ErrDriverAborted indicates the driver was aborted and cannot be reused.
	ErrDriverAborted = errors.ErrDriverAborted

	// ErrAlreadyConnected indicates a connect sequence was already queued.
	ErrAlreadyConnected = errors.ErrAlreadyConnected

	// ErrHandshakeNotReady indicates Connect was called before a successful
	// prepare handshake.
	ErrHandshakeNotReady = errors.ErrHandshakeNotReady

	// ErrHandshakeAttempted indicates Prepare was called twice.
	ErrHandshakeAttempted = errors.ErrHandshakeAttempted

	// ErrQueueClosed indicates the command queue no longer accepts commands.
	ErrQueueClosed = errors.ErrQueueClosed
)
