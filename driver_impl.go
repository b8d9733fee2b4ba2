package enginedriver

import (
	"context"
	"time"

	"github.com/wagiedev/engine-driver-go/internal/driver"
)

// driverWrapper wraps the internal driver to adapt it to the public interface.
type driverWrapper struct {
	impl *driver.Driver
}

// Compile-time check that *driverWrapper implements the Driver interface.
var _ Driver = (*driverWrapper)(nil)

// newDriverImpl creates the internal driver implementation.
func newDriverImpl(options *DriverOptions) Driver {
	return &driverWrapper{impl: driver.New(options)}
}

// Initialize launches the engine.
func (d *driverWrapper) Initialize(ctx context.Context, enginePath string) error {
	return d.impl.Initialize(ctx, enginePath)
}

// Prepare sends the prepare handshake request.
func (d *driverWrapper) Prepare(depth int, seed int64) error {
	return d.impl.Prepare(depth, seed)
}

// Connect joins a parallel search server.
func (d *driverWrapper) Connect(cfg ServerConfig) error {
	return d.impl.Connect(cfg)
}

// ConnectToDfpn joins a mate solver server.
func (d *driverWrapper) ConnectToDfpn(cfg DfpnConfig) error {
	return d.impl.ConnectToDfpn(cfg)
}

// WriteCommand queues a raw command.
func (d *driverWrapper) WriteCommand(text string) error {
	return d.impl.WriteCommand(text)
}

// Abort shuts the driver down with the configured timeout.
func (d *driverWrapper) Abort(reason AbortReason) error {
	return d.impl.Abort(reason)
}

// AbortTimeout shuts the driver down with an explicit timeout.
func (d *driverWrapper) AbortTimeout(reason AbortReason, timeout time.Duration) error {
	return d.impl.AbortTimeout(reason, timeout)
}

// Close aborts with UserRequested.
func (d *driverWrapper) Close() error {
	return d.impl.Close()
}

// Subscribe registers a listener.
func (d *driverWrapper) Subscribe(l Listener) func() {
	return d.impl.Subscribe(l)
}

// State returns the lifecycle state.
func (d *driverWrapper) State() State {
	return d.impl.State()
}

// Handshake returns the prepare handshake state.
func (d *driverWrapper) Handshake() HandshakeState {
	return d.impl.Handshake()
}

// IsConnected reports whether a connect sequence is active.
func (d *driverWrapper) IsConnected() bool {
	return d.impl.IsConnected()
}

// Mode returns the connect variant in use.
func (d *driverWrapper) Mode() ConnectionMode {
	return d.impl.Mode()
}

// AbortReason returns why the driver aborted.
func (d *driverWrapper) AbortReason() (AbortReason, bool) {
	return d.impl.AbortReason()
}

// Pid returns the engine's process ID.
func (d *driverWrapper) Pid() int {
	return d.impl.Pid()
}

// Done returns a channel closed after the aborted event.
func (d *driverWrapper) Done() <-chan struct{} {
	return d.impl.Done()
}
