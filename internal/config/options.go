package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/wagiedev/engine-driver-go/internal/event"
)

const (
	// DefaultAbortTimeout is how long Abort waits for the engine to exit after quit.
	DefaultAbortTimeout = 500 * time.Millisecond

	// DefaultDrainTimeout is how long the exit watcher waits for the output
	// readers to reach end of stream before reporting the exit.
	DefaultDrainTimeout = 200 * time.Millisecond

	// DefaultMaxLineSize is the longest line the readers accept.
	DefaultMaxLineSize = 1024 * 1024 // 1MB

	// AbortTimeoutEnv overrides DefaultAbortTimeout, in milliseconds.
	AbortTimeoutEnv = "ENGINE_DRIVER_ABORT_TIMEOUT_MS"
)

// Options configures the behavior of the engine driver.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Args are passed to the engine executable. Engines are normally started
	// without arguments.
	Args []string

	// Env provides additional environment variables for the engine process.
	Env map[string]string

	// Cwd overrides the working directory of the engine process.
	// If empty, the directory containing the executable is used.
	Cwd string

	// AbortTimeout is how long Abort waits for a graceful exit before killing
	// the process. If nil, defaults to 500ms. Can also be set via the
	// ENGINE_DRIVER_ABORT_TIMEOUT_MS env var.
	AbortTimeout *time.Duration

	// JoinTimeout bounds how long Abort waits for the worker goroutines.
	// Zero means Abort does not wait at all.
	JoinTimeout time.Duration

	// DrainTimeout bounds how long an unexpected exit waits for the readers
	// to deliver the engine's last output. If nil, defaults to 200ms.
	DrainTimeout *time.Duration

	// MaxLineSize sets the maximum bytes of a single engine output line.
	// If zero, defaults to 1MB.
	MaxLineSize int

	// FatalErrorPrefixes lists stderr prefixes treated as fatal.
	// If nil, the engine's missing data file message is used.
	FatalErrorPrefixes []string

	// Listeners receive driver events from the moment the driver is created.
	Listeners []event.Listener

	// Process allows injecting a custom engine implementation.
	// If nil, a local subprocess is spawned.
	Process Process `json:"-"`
}

// ResolvedAbortTimeout returns the effective graceful shutdown timeout.
func (o *Options) ResolvedAbortTimeout() time.Duration {
	if o != nil && o.AbortTimeout != nil {
		return *o.AbortTimeout
	}

	if ms := os.Getenv(AbortTimeoutEnv); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v >= 0 {
			return time.Duration(v) * time.Millisecond
		}
	}

	return DefaultAbortTimeout
}

// ResolvedDrainTimeout returns the effective output drain timeout.
func (o *Options) ResolvedDrainTimeout() time.Duration {
	if o != nil && o.DrainTimeout != nil {
		return *o.DrainTimeout
	}

	return DefaultDrainTimeout
}

// ResolvedMaxLineSize returns the effective maximum line size.
func (o *Options) ResolvedMaxLineSize() int {
	if o != nil && o.MaxLineSize > 0 {
		return o.MaxLineSize
	}

	return DefaultMaxLineSize
}
