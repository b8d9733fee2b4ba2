package enginedriver

import (
	"context"
	"time"
)

// Driver launches a game engine executable and exchanges line-oriented text
// commands with it over its standard streams.
//
// Lifecycle: Drivers are single-use. After Abort or Close, create a new
// driver with New().
//
// Example usage:
//
//	d := enginedriver.New(
//	    enginedriver.WithLogger(slog.Default()),
//	    enginedriver.WithOnReceived(func(l enginedriver.Line) {
//	        fmt.Println(l.Text)
//	    }),
//	)
//	defer d.Close()
//
//	if err := d.Initialize(ctx, "/opt/bonanza/bonanza"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Start the prepare handshake; the outcome arrives as a handshake event.
//	if err := d.Prepare(15, 42); err != nil {
//	    log.Fatal(err)
//	}
type Driver interface {
	// Initialize launches the engine at enginePath and starts the reader and
	// writer goroutines. ctx only bounds the launch; the engine keeps running
	// until Abort.
	// Returns EngineNotFoundError if the executable is missing, LaunchError if
	// it cannot be started, ErrAlreadyInitialized or ErrDriverAborted when
	// called in the wrong state.
	Initialize(ctx context.Context, enginePath string) error

	// Prepare sends the prepare handshake request. It can be called once.
	Prepare(depth int, seed int64) error

	// Connect joins a parallel search server. The prepare handshake must have
	// succeeded. The setup commands are queued as one uninterrupted block.
	Connect(cfg ServerConfig) error

	// ConnectToDfpn joins a mate solver server. No handshake is required.
	ConnectToDfpn(cfg DfpnConfig) error

	// WriteCommand queues a raw command. Surrounding whitespace is trimmed and
	// blank commands are ignored. Commands written before Initialize are sent
	// once the engine runs.
	WriteCommand(text string) error

	// Abort asks the engine to quit, kills it after the configured abort
	// timeout, and stops all goroutines. Only the first call has an effect.
	// Safe to call from listeners.
	Abort(reason AbortReason) error

	// AbortTimeout is Abort with an explicit graceful exit timeout.
	AbortTimeout(reason AbortReason, timeout time.Duration) error

	// Close aborts with UserRequested. Safe to call multiple times.
	Close() error

	// Subscribe registers a listener and returns a function removing it.
	Subscribe(l Listener) (unsubscribe func())

	// State returns the lifecycle state.
	State() State

	// Handshake returns the state of the prepare handshake.
	Handshake() HandshakeState

	// IsConnected reports whether a connect sequence was queued and the
	// driver has not been aborted since.
	IsConnected() bool

	// Mode returns which connect variant is in use.
	Mode() ConnectionMode

	// AbortReason returns why the driver aborted, and false if it has not.
	AbortReason() (AbortReason, bool)

	// Pid returns the engine's process ID, or 0 before Initialize.
	Pid() int

	// Done returns a channel closed after the aborted event was raised.
	Done() <-chan struct{}
}

// New creates a driver. The engine is started by Initialize.
//
//	d := enginedriver.New(
//	    enginedriver.WithLogger(slog.Default()),
//	    enginedriver.WithAbortTimeout(time.Second),
//	)
func New(opts ...Option) Driver {
	return newDriverImpl(applyDriverOptions(opts))
}
