package driver

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/engine-driver-go/internal/config"
	"github.com/wagiedev/engine-driver-go/internal/errors"
	"github.com/wagiedev/engine-driver-go/internal/event"
	"github.com/wagiedev/engine-driver-go/internal/launcher"
	"github.com/wagiedev/engine-driver-go/internal/protocol"
	"github.com/wagiedev/engine-driver-go/internal/queue"
	"github.com/wagiedev/engine-driver-go/internal/subprocess"
)

// killWaitTimeout bounds how long Abort waits for a killed process to be reaped.
const killWaitTimeout = 250 * time.Millisecond

// Driver launches an engine and manages its lifecycle.
//
// Drivers are single-use: once aborted, create a new one.
type Driver struct {
	log        *slog.Logger
	options    *config.Options
	bus        *event.Bus
	queue      *queue.CommandQueue
	classifier *protocol.Classifier
	handshake  protocol.Handshake
	gate       sendGate

	// mu serializes lifecycle transitions.
	mu            sync.Mutex
	proc          config.Process
	eg            *errgroup.Group
	cancelWorkers context.CancelFunc
	prepared      bool

	state       atomic.Int32
	mode        atomic.Int32
	pid         atomic.Int64 // captured at Initialize
	aborted     atomic.Bool
	abortReason atomic.Int32

	abortCh     chan struct{} // closed when the abort flag is set
	done        chan struct{} // closed after the aborted event
	readersDone chan struct{} // closed when both readers returned
}

// New creates a driver. The engine is not started until Initialize.
func New(options *config.Options) *Driver {
	if options == nil {
		options = &config.Options{}
	}

	log := options.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	log = log.With("component", "driver")

	d := &Driver{
		log:         log,
		options:     options,
		bus:         event.NewBus(log),
		queue:       queue.New(),
		classifier:  protocol.NewClassifier(options.FatalErrorPrefixes),
		abortCh:     make(chan struct{}),
		done:        make(chan struct{}),
		readersDone: make(chan struct{}),
	}

	for _, l := range options.Listeners {
		d.bus.Subscribe(l)
	}

	return d
}

// Subscribe registers a listener and returns a function that removes it.
func (d *Driver) Subscribe(l event.Listener) (unsubscribe func()) {
	return d.bus.Subscribe(l)
}

// Initialize launches the engine at path and starts the workers.
//
// Returns ErrAlreadyInitialized or ErrDriverAborted when called from the
// wrong state, EngineNotFoundError if path cannot be resolved, or
// LaunchError if the process fails to start.
func (d *Driver) Initialize(ctx context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.aborted.Load() {
		return errors.ErrDriverAborted
	}

	if d.State() != StateNotStarted {
		return errors.ErrAlreadyInitialized
	}

	proc := d.options.Process
	if proc == nil {
		proc = subprocess.NewProcess(d.log, &launcher.Config{
			Args: d.options.Args,
			Env:  d.options.Env,
			Cwd:  d.options.Cwd,
		})
	}

	if err := proc.Start(ctx, path); err != nil {
		d.log.Error("Failed to start engine", "path", path, "error", err)

		return fmt.Errorf("start engine: %w", err)
	}

	d.proc = proc
	d.pid.Store(int64(proc.Pid()))

	// Workers outlive ctx: they stop on Abort, not when Initialize's caller
	// gives up.
	workerCtx, cancel := context.WithCancel(context.Background())
	d.cancelWorkers = cancel

	var egCtx context.Context

	d.eg, egCtx = errgroup.WithContext(workerCtx)

	var readers sync.WaitGroup

	readers.Add(2)

	d.eg.Go(func() error {
		defer readers.Done()

		return d.readLoop(event.Stdout, proc.Stdout())
	})

	d.eg.Go(func() error {
		defer readers.Done()

		return d.readLoop(event.Stderr, proc.Stderr())
	})

	d.eg.Go(func() error {
		return d.writeLoop(egCtx, proc)
	})

	go func() {
		readers.Wait()
		close(d.readersDone)
	}()

	go d.watchExit(proc)

	d.state.Store(int32(StateInitialized))
	d.log.Info("Engine driver initialized", "pid", d.Pid())

	return nil
}

// WriteCommand queues text for the engine. Surrounding whitespace is
// trimmed and blank commands are ignored. Commands queued before
// Initialize are sent once the engine is running.
//
// Returns ErrDriverAborted after Abort.
func (d *Driver) WriteCommand(text string) error {
	cmd, ok := protocol.NewCommand(text)
	if !ok {
		return nil
	}

	if d.aborted.Load() {
		return errors.ErrDriverAborted
	}

	if err := d.queue.Enqueue(cmd); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrDriverAborted, err)
	}

	d.log.Debug("Queued command", "command", cmd.Text, "id", cmd.ID)

	return nil
}

// Prepare sends the prepare handshake request "mnjprepare <depth> <seed>".
// The handshake can be attempted once per driver; its outcome is published
// as a handshake event and reported by Handshake.
func (d *Driver) Prepare(depth int, seed int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkRunning(); err != nil {
		return err
	}

	if d.connected() {
		return errors.ErrAlreadyConnected
	}

	if d.prepared || d.handshake.State() != protocol.HandshakeUnknown {
		return errors.ErrHandshakeAttempted
	}

	if err := validatePositive("depth", depth); err != nil {
		return err
	}

	if err := d.queue.Enqueue(protocol.Prepare(depth, seed)); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrDriverAborted, err)
	}

	d.prepared = true
	d.log.Info("Sent handshake request", "depth", depth, "seed", seed)

	return nil
}

// Connect joins a parallel search server.
//
// The handshake must have completed successfully. On success the setup
// sequence (thread count, hash size, auxiliary link, connect) is queued as
// one unit. On failure nothing is queued.
func (d *Driver) Connect(cfg ServerConfig) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkRunning(); err != nil {
		return err
	}

	if d.connected() {
		return errors.ErrAlreadyConnected
	}

	if hs := d.handshake.State(); hs != protocol.HandshakeReady {
		return fmt.Errorf("%w: handshake %s", errors.ErrHandshakeNotReady, hs)
	}

	if err := cfg.validate(); err != nil {
		return err
	}

	return d.connect(ModeMnj,
		protocol.ThreadCount(cfg.ThreadCount),
		protocol.HashSize(cfg.HashSize),
		protocol.DfpnClient(cfg.Address, cfg.AuxPort),
		protocol.Mnj(cfg.Address, cfg.Port, cfg.Name, cfg.ThreadCount, cfg.Depth, cfg.SendPV),
	)
}

// ConnectToDfpn joins a mate solver server. Unlike Connect it does not
// require the handshake.
func (d *Driver) ConnectToDfpn(cfg DfpnConfig) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkRunning(); err != nil {
		return err
	}

	if d.connected() {
		return errors.ErrAlreadyConnected
	}

	if err := cfg.validate(); err != nil {
		return err
	}

	return d.connect(ModeDfpn,
		protocol.ThreadCount(cfg.ThreadCount),
		protocol.HashSize(cfg.HashSize),
		protocol.DfpnConnect(cfg.Address, cfg.Port, cfg.Name),
	)
}

// connect queues the setup sequence. Caller must hold d.mu.
func (d *Driver) connect(mode ConnectionMode, setup ...event.Command) error {
	if err := d.queue.EnqueueBatch(setup...); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrDriverAborted, err)
	}

	d.mode.Store(int32(mode))
	d.state.Store(int32(StateConnected))
	d.log.Info("Queued connect sequence", "mode", mode, "commands", len(setup))

	return nil
}

// checkRunning reports lifecycle precondition failures shared by the
// operations that need a running engine. Caller must hold d.mu.
func (d *Driver) checkRunning() error {
	if d.aborted.Load() {
		return errors.ErrDriverAborted
	}

	if d.State() == StateNotStarted {
		return errors.ErrNotInitialized
	}

	return nil
}

// Abort shuts the driver down, waiting the configured abort timeout for
// the engine to exit gracefully.
func (d *Driver) Abort(reason event.AbortReason) error {
	return d.AbortTimeout(reason, d.options.ResolvedAbortTimeout())
}

// AbortTimeout shuts the driver down, waiting up to timeout for the engine
// to exit after quit before killing it.
//
// Only the first call has any effect; later calls return nil immediately.
// It is safe to call from any goroutine, including from listeners.
func (d *Driver) AbortTimeout(reason event.AbortReason, timeout time.Duration) error {
	return d.abort(reason, nil, timeout)
}

// Close aborts the driver with UserRequested unless it was already aborted.
// It's safe to call Close multiple times.
func (d *Driver) Close() error {
	return d.Abort(event.UserRequested)
}

func (d *Driver) abort(reason event.AbortReason, cause error, timeout time.Duration) error {
	// Listeners may call Abort while another Abort is in progress.
	if d.aborted.Load() {
		return nil
	}

	d.mu.Lock()

	if d.aborted.Load() {
		d.mu.Unlock()

		return nil
	}

	d.abortReason.Store(int32(reason))
	d.aborted.Store(true)
	close(d.abortCh)

	d.log.Info("Aborting engine driver", "reason", reason, "cause", cause)

	err := d.shutdown(timeout)

	d.mode.Store(int32(ModeNone))
	d.state.Store(int32(StateAborted))
	d.mu.Unlock()

	d.bus.PublishAborted(event.Aborted{Reason: reason, Err: cause})
	close(d.done)

	return err
}

// shutdown stops the engine and the workers. Caller must hold d.mu.
func (d *Driver) shutdown(timeout time.Duration) error {
	d.queue.CloseWith(protocol.Quit())

	if d.proc == nil {
		return nil
	}

	var errs []error

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-d.proc.Exited():
		d.log.Debug("Engine exited gracefully")
	case <-timer.C:
		d.log.Warn("Engine did not exit in time, killing it", "timeout", timeout, "pid", d.Pid())

		// The writer may be stuck on a full stdin pipe; cancelling its
		// context closes stdin and releases it.
		d.cancelWorkers()

		if err := d.proc.Kill(); err != nil {
			errs = append(errs, err)
		}

		select {
		case <-d.proc.Exited():
		case <-time.After(killWaitTimeout):
			d.log.Warn("Engine not reaped after kill", "pid", d.Pid())
		}
	}

	d.cancelWorkers()

	if err := d.proc.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close engine pipes: %w", err))
	}

	d.join()

	if len(errs) > 0 {
		return fmt.Errorf("abort engine: %w", stderrors.Join(errs...))
	}

	return nil
}

// join waits for the workers for at most JoinTimeout. A worker that does
// not finish in time is abandoned; it exits on its own once its pipe or
// listener returns.
func (d *Driver) join() {
	done := make(chan error, 1)

	go func() {
		done <- d.eg.Wait()
	}()

	var expired <-chan time.Time

	if d.options.JoinTimeout > 0 {
		timer := time.NewTimer(d.options.JoinTimeout)
		defer timer.Stop()

		expired = timer.C
	} else {
		closed := make(chan time.Time)
		close(closed)
		expired = closed
	}

	select {
	case err := <-done:
		if err != nil {
			d.log.Debug("Worker finished with error", "error", err)
		}
	case <-expired:
		d.log.Debug("Workers still running after abort, not waiting")
	}
}

// watchExit turns an unexpected process exit into Abort(ProcessExited).
func (d *Driver) watchExit(proc config.Process) {
	select {
	case <-proc.Exited():
	case <-d.abortCh:
		return
	}

	// Let the readers deliver the engine's last words first; a fatal stderr
	// line explains the exit better than the exit itself.
	drain := time.NewTimer(d.options.ResolvedDrainTimeout())
	defer drain.Stop()

	select {
	case <-d.readersDone:
	case <-drain.C:
	case <-d.abortCh:
		return
	}

	exitErr := proc.ExitError()
	d.log.Warn("Engine process exited", "exit_code", subprocess.ExitCode(exitErr), "error", exitErr)

	_ = d.abort(event.ProcessExited, &errors.ProcessError{
		ExitCode: subprocess.ExitCode(exitErr),
		Err:      exitErr,
	}, d.options.ResolvedAbortTimeout())
}

// State returns the lifecycle state.
func (d *Driver) State() State {
	return State(d.state.Load())
}

// Handshake returns the prepare handshake state.
func (d *Driver) Handshake() protocol.HandshakeState {
	return d.handshake.State()
}

// IsConnected reports whether a connect sequence has been queued and the
// driver has not been aborted since.
func (d *Driver) IsConnected() bool {
	return d.connected()
}

func (d *Driver) connected() bool {
	return d.State() == StateConnected
}

// Mode returns the connect variant in use.
func (d *Driver) Mode() ConnectionMode {
	return ConnectionMode(d.mode.Load())
}

// AbortReason returns why the driver was aborted, and false if it was not.
func (d *Driver) AbortReason() (event.AbortReason, bool) {
	if !d.aborted.Load() {
		return 0, false
	}

	return event.AbortReason(d.abortReason.Load()), true
}

// Pid returns the engine's process ID, or 0 if it was never started.
func (d *Driver) Pid() int {
	return int(d.pid.Load())
}

// Done returns a channel that is closed after the aborted event was published.
func (d *Driver) Done() <-chan struct{} {
	return d.done
}
