package enginedriver

import (
	"log/slog"
	"time"
)

// Option configures DriverOptions using the functional options pattern.
type Option func(*DriverOptions)

// applyDriverOptions applies functional options to a DriverOptions struct.
func applyDriverOptions(opts []Option) *DriverOptions {
	options := &DriverOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	return options
}

// ===== Basic Configuration =====

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *DriverOptions) {
		o.Logger = logger
	}
}

// WithArgs sets command line arguments for the engine executable.
func WithArgs(args ...string) Option {
	return func(o *DriverOptions) {
		o.Args = args
	}
}

// WithEnv provides additional environment variables for the engine process.
func WithEnv(env map[string]string) Option {
	return func(o *DriverOptions) {
		o.Env = env
	}
}

// WithCwd sets the working directory of the engine process.
// By default the engine runs in the directory of its executable, where it
// expects its data files.
func WithCwd(cwd string) Option {
	return func(o *DriverOptions) {
		o.Cwd = cwd
	}
}

// ===== Timeouts and Limits =====

// WithAbortTimeout sets how long Abort waits for the engine to exit after
// quit before killing it.
func WithAbortTimeout(timeout time.Duration) Option {
	return func(o *DriverOptions) {
		o.AbortTimeout = &timeout
	}
}

// WithJoinTimeout sets how long Abort waits for the worker goroutines.
func WithJoinTimeout(timeout time.Duration) Option {
	return func(o *DriverOptions) {
		o.JoinTimeout = timeout
	}
}

// WithDrainTimeout sets how long an unexpected engine exit waits for the
// last output lines before it is reported.
func WithDrainTimeout(timeout time.Duration) Option {
	return func(o *DriverOptions) {
		o.DrainTimeout = &timeout
	}
}

// WithMaxLineSize sets the maximum bytes of one engine output line.
// A longer line aborts the driver with ProtocolError.
func WithMaxLineSize(size int) Option {
	return func(o *DriverOptions) {
		o.MaxLineSize = size
	}
}

// WithFatalErrorPrefixes replaces the stderr prefixes that abort with
// FatalError instead of ProtocolError.
func WithFatalErrorPrefixes(prefixes ...string) Option {
	return func(o *DriverOptions) {
		o.FatalErrorPrefixes = prefixes
	}
}

// ===== Process =====

// WithProcess injects a custom engine process. Use this for testing or
// for engines that are not local executables.
func WithProcess(p Process) Option {
	return func(o *DriverOptions) {
		o.Process = p
	}
}

// ===== Listeners =====

// WithListener registers a listener before the driver starts, so it
// observes every event.
func WithListener(l Listener) Option {
	return func(o *DriverOptions) {
		o.Listeners = append(o.Listeners, l)
	}
}

// WithOnReceived registers a callback for engine stdout lines.
func WithOnReceived(fn func(Line)) Option {
	return WithListener(ListenerFuncs{Received: fn})
}

// WithOnSent registers a callback for commands written to the engine.
func WithOnSent(fn func(Command)) Option {
	return WithListener(ListenerFuncs{Sent: fn})
}

// WithOnError registers a callback for engine stderr lines.
func WithOnError(fn func(Line)) Option {
	return WithListener(ListenerFuncs{Error: fn})
}

// WithOnHandshake registers a callback for the prepare handshake outcome.
func WithOnHandshake(fn func(HandshakeEvent)) Option {
	return WithListener(ListenerFuncs{Handshake: fn})
}

// WithOnAborted registers a callback for the driver's abort.
func WithOnAborted(fn func(AbortedEvent)) Option {
	return WithListener(ListenerFuncs{Aborted: fn})
}
