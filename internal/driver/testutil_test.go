package driver

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/engine-driver-go/internal/config"
	"github.com/wagiedev/engine-driver-go/internal/errors"
	"github.com/wagiedev/engine-driver-go/internal/event"
)

const testTimeout = 5 * time.Second

// fakeProcess is an in-memory engine. Lines written to it are recorded and
// optionally answered through respond.
type fakeProcess struct {
	stdoutR, stderrR *io.PipeReader
	stdoutW, stderrW *io.PipeWriter

	startErr   error
	ignoreQuit bool
	respond    func(f *fakeProcess, line string)

	// blockWrites makes WriteLine stall like a write to a full stdin pipe.
	// A stalled write returns once unblock is closed, the process is closed
	// or ctx is cancelled.
	blockWrites bool
	blocked     chan struct{} // closed when a write first stalls
	blockedOnce sync.Once
	unblock     chan struct{}

	mu      sync.Mutex
	written []string
	killed  bool
	closed  bool
	started bool

	exited   chan struct{}
	exitOnce sync.Once
	exitErr  error

	closedCh  chan struct{}
	closeOnce sync.Once
}

var _ config.Process = (*fakeProcess)(nil)

func newFakeProcess() *fakeProcess {
	stdoutR, stdoutW := io.Pipe()
	stderrR, stderrW := io.Pipe()

	return &fakeProcess{
		stdoutR:  stdoutR,
		stdoutW:  stdoutW,
		stderrR:  stderrR,
		stderrW:  stderrW,
		exited:   make(chan struct{}),
		blocked:  make(chan struct{}),
		unblock:  make(chan struct{}),
		closedCh: make(chan struct{}),
	}
}

func (f *fakeProcess) Start(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.startErr != nil {
		return f.startErr
	}

	f.started = true

	return nil
}

func (f *fakeProcess) Stdout() io.Reader { return f.stdoutR }
func (f *fakeProcess) Stderr() io.Reader { return f.stderrR }

func (f *fakeProcess) WriteLine(ctx context.Context, line string) error {
	f.mu.Lock()
	blockWrites := f.blockWrites
	f.mu.Unlock()

	if blockWrites {
		f.blockedOnce.Do(func() { close(f.blocked) })

		select {
		case <-f.unblock:
		case <-f.closedCh:
			return errors.ErrStdinClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()

	if f.closed {
		f.mu.Unlock()

		return errors.ErrStdinClosed
	}

	f.written = append(f.written, line)
	respond := f.respond
	ignoreQuit := f.ignoreQuit
	f.mu.Unlock()

	if respond != nil {
		respond(f, line)
	}

	if line == "quit" && !ignoreQuit {
		f.exit(nil)
	}

	return nil
}

func (f *fakeProcess) Exited() <-chan struct{} { return f.exited }

func (f *fakeProcess) ExitError() error {
	select {
	case <-f.exited:
		return f.exitErr
	default:
		return nil
	}
}

func (f *fakeProcess) Kill() error {
	f.mu.Lock()
	f.killed = true
	f.mu.Unlock()

	f.exit(io.ErrUnexpectedEOF)

	return nil
}

func (f *fakeProcess) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()

	f.closeOnce.Do(func() { close(f.closedCh) })

	_ = f.stdoutR.Close()
	_ = f.stderrR.Close()

	return nil
}

func (f *fakeProcess) Pid() int { return 4242 }

// exit simulates the engine terminating: both output streams reach EOF.
func (f *fakeProcess) exit(err error) {
	f.exitOnce.Do(func() {
		f.exitErr = err
		_ = f.stdoutW.Close()
		_ = f.stderrW.Close()
		close(f.exited)
	})
}

// emitStdout writes a line to the engine's stdout without blocking the caller.
func (f *fakeProcess) emitStdout(line string) {
	go func() { _, _ = f.stdoutW.Write([]byte(line + "\n")) }()
}

// emitStderr writes a line to the engine's stderr without blocking the caller.
func (f *fakeProcess) emitStderr(line string) {
	go func() { _, _ = f.stderrW.Write([]byte(line + "\n")) }()
}

func (f *fakeProcess) Written() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.written...)
}

func (f *fakeProcess) Killed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.killed
}

// recorder captures every event a driver publishes.
type recorder struct {
	mu         sync.Mutex
	order      []string
	received   []string
	sent       []string
	errorLines []string
	handshakes []event.Handshake
	aborted    []event.Aborted

	sentCh      chan event.Command
	handshakeCh chan event.Handshake
	abortedCh   chan event.Aborted
}

var _ event.Listener = (*recorder)(nil)

func newRecorder() *recorder {
	return &recorder{
		sentCh:      make(chan event.Command, 100),
		handshakeCh: make(chan event.Handshake, 10),
		abortedCh:   make(chan event.Aborted, 10),
	}
}

func (r *recorder) OnReceived(l event.Line) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.received = append(r.received, l.Text)
	r.order = append(r.order, "received:"+l.Text)
}

func (r *recorder) OnSent(c event.Command) {
	r.mu.Lock()
	r.sent = append(r.sent, c.Text)
	r.order = append(r.order, "sent:"+c.Text)
	r.mu.Unlock()

	r.sentCh <- c
}

func (r *recorder) OnError(l event.Line) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errorLines = append(r.errorLines, l.Text)
}

func (r *recorder) OnHandshake(h event.Handshake) {
	r.mu.Lock()
	r.handshakes = append(r.handshakes, h)
	r.mu.Unlock()

	r.handshakeCh <- h
}

func (r *recorder) OnAborted(a event.Aborted) {
	r.mu.Lock()
	r.aborted = append(r.aborted, a)
	r.mu.Unlock()

	r.abortedCh <- a
}

func (r *recorder) Sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.sent...)
}

func (r *recorder) Order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.order...)
}

func (r *recorder) Aborted() []event.Aborted {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]event.Aborted(nil), r.aborted...)
}

func (r *recorder) Handshakes() []event.Handshake {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]event.Handshake(nil), r.handshakes...)
}

func (r *recorder) ErrorLines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.errorLines...)
}

// waitSent blocks until n sent events arrived and returns their texts.
func (r *recorder) waitSent(t *testing.T, n int) []string {
	t.Helper()

	texts := make([]string, 0, n)

	for range n {
		select {
		case c := <-r.sentCh:
			texts = append(texts, c.Text)
		case <-time.After(testTimeout):
			t.Fatalf("timed out waiting for sent event %d of %d (got %v)", len(texts)+1, n, texts)
		}
	}

	return texts
}

func (r *recorder) waitHandshake(t *testing.T) event.Handshake {
	t.Helper()

	select {
	case h := <-r.handshakeCh:
		return h
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for handshake event")

		return event.Handshake{}
	}
}

func (r *recorder) waitAborted(t *testing.T) event.Aborted {
	t.Helper()

	select {
	case a := <-r.abortedCh:
		return a
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for aborted event")

		return event.Aborted{}
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startFake creates a driver wired to a fake engine and initializes it.
func startFake(t *testing.T, fake *fakeProcess, opts ...func(*config.Options)) (*Driver, *recorder) {
	t.Helper()

	rec := newRecorder()
	abortTimeout := 100 * time.Millisecond

	options := &config.Options{
		Logger:       testLogger(),
		Process:      fake,
		Listeners:    []event.Listener{rec},
		AbortTimeout: &abortTimeout,
	}

	for _, opt := range opts {
		opt(options)
	}

	d := New(options)
	require.NoError(t, d.Initialize(context.Background(), "/opt/engine/bonanza"))

	t.Cleanup(func() { _ = d.Close() })

	return d, rec
}

// readyHandshake completes the prepare handshake on a fake engine.
func readyHandshake(t *testing.T, d *Driver, fake *fakeProcess, rec *recorder) {
	t.Helper()

	require.NoError(t, d.Prepare(15, 42))
	require.Equal(t, []string{"mnjprepare 15 42"}, rec.waitSent(t, 1))

	fake.emitStdout("info mnjprepare ok")

	h := rec.waitHandshake(t)
	require.True(t, h.Ready)
}
