package subprocess

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/wagiedev/engine-driver-go/internal/config"
	"github.com/wagiedev/engine-driver-go/internal/errors"
	"github.com/wagiedev/engine-driver-go/internal/launcher"
)

// writeAbandonTimeout bounds how long WriteLine waits for a write goroutine
// after closing stdin on cancellation.
const writeAbandonTimeout = 1 * time.Second

// Process implements config.Process by spawning a local child process.
type Process struct {
	log      *slog.Logger
	launcher *launcher.Launcher

	writeMu sync.Mutex // Serializes WriteLine calls

	mu          sync.Mutex // Protects the fields below; never held across a blocking write
	cmd         *exec.Cmd
	stdin       io.WriteCloser
	stdinClosed bool
	stdout      *os.File
	stderr      *os.File

	exited    chan struct{}
	exitErr   error // Set before exited is closed
	closeOnce sync.Once
}

// Compile-time verification that Process implements the config.Process interface.
var _ config.Process = (*Process)(nil)

// NewProcess creates a process that is launched with cfg.
//
// The logger receives debug, info, warn, and error messages during process
// operations.
func NewProcess(log *slog.Logger, cfg *launcher.Config) *Process {
	if cfg == nil {
		cfg = &launcher.Config{}
	}

	log = log.With("component", "subprocess")
	cfg.Logger = log

	return &Process{
		log:      log,
		launcher: launcher.New(cfg),
		exited:   make(chan struct{}),
	}
}

// Start resolves path and spawns the engine.
//
// The process is not bound to ctx: ctx only guards the launch itself, the
// engine keeps running until Kill or until it exits on its own.
//
// Returns EngineNotFoundError if the executable cannot be resolved,
// or LaunchError if the process fails to start.
func (p *Process) Start(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	resolved, err := p.launcher.Resolve(path)
	if err != nil {
		return err
	}

	p.log.Info("Starting engine process", "path", resolved)

	cmd := p.launcher.Command(context.WithoutCancel(ctx), resolved)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		p.log.Error("Failed to create stdin pipe", "error", err)

		return &errors.LaunchError{Path: resolved, Err: fmt.Errorf("stdin pipe: %w", err)}
	}

	// stdout and stderr use pipes we own: exec.Cmd.Wait would otherwise close
	// them on exit and drop output the readers have not consumed yet.
	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		_ = stdin.Close()

		return &errors.LaunchError{Path: resolved, Err: fmt.Errorf("stdout pipe: %w", err)}
	}

	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		closeAll(stdin, stdoutR, stdoutW)

		return &errors.LaunchError{Path: resolved, Err: fmt.Errorf("stderr pipe: %w", err)}
	}

	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW

	if err := cmd.Start(); err != nil {
		p.log.Error("Failed to start engine process", "error", err)
		closeAll(stdin, stdoutR, stdoutW, stderrR, stderrW)

		return &errors.LaunchError{Path: resolved, Err: fmt.Errorf("start process: %w", err)}
	}

	// The child holds its own copies of the write ends.
	closeAll(stdoutW, stderrW)

	p.mu.Lock()
	p.cmd = cmd
	p.stdin = stdin
	p.stdout = stdoutR
	p.stderr = stderrR
	p.mu.Unlock()

	go p.wait(cmd)

	p.log.Info("Engine process started", "pid", cmd.Process.Pid)

	return nil
}

// wait reaps the process and publishes its exit.
func (p *Process) wait(cmd *exec.Cmd) {
	err := cmd.Wait()
	if err != nil {
		p.log.Debug("Engine process exited with error", "exit_code", ExitCode(err), "error", err)
	} else {
		p.log.Info("Engine process exited")
	}

	p.exitErr = err
	close(p.exited)
}

// Stdout returns the engine's standard output stream.
func (p *Process) Stdout() io.Reader {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.stdout
}

// Stderr returns the engine's standard error stream.
func (p *Process) Stderr() io.Reader {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.stderr
}

// WriteLine writes line and a newline to the engine's stdin.
//
// This method is safe for concurrent use and respects context cancellation
// even during blocking writes. If ctx is cancelled during a blocked write,
// stdin is closed to unblock it and subsequent calls return ErrStdinClosed.
// A blocked write never delays Kill, Pid, or Close.
func (p *Process) WriteLine(ctx context.Context, line string) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.mu.Lock()
	stdin, closed := p.stdin, p.stdinClosed
	p.mu.Unlock()

	if stdin == nil {
		return errors.ErrProcessNotStarted
	}

	if closed {
		return errors.ErrStdinClosed
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	data := make([]byte, 0, len(line)+1)
	data = append(data, line...)
	data = append(data, '\n')

	done := make(chan error, 1)

	go func() {
		_, err := stdin.Write(data)
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil {
			return nil
		}

		if p.isStdinClosed() {
			return fmt.Errorf("%w: %w", errors.ErrStdinClosed, err)
		}

		return fmt.Errorf("write to stdin: %w", err)

	case <-ctx.Done():
		p.log.Debug("Context cancelled during write, closing stdin")

		_ = p.closeStdin()

		select {
		case <-done:
		case <-time.After(writeAbandonTimeout):
			p.log.Warn("Write goroutine did not exit after stdin close, potential leak")
		}

		return ctx.Err()
	}
}

func (p *Process) isStdinClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.stdinClosed
}

// closeStdin closes stdin once, waking a write blocked on a full pipe.
func (p *Process) closeStdin() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.closeStdinLocked()
}

func (p *Process) closeStdinLocked() error {
	if p.stdin == nil || p.stdinClosed {
		return nil
	}

	p.stdinClosed = true

	return ignoreClosed(p.stdin.Close())
}

// Exited returns a channel that is closed once the process has terminated.
func (p *Process) Exited() <-chan struct{} {
	return p.exited
}

// ExitError returns the error from waiting on the process, once it exited.
func (p *Process) ExitError() error {
	select {
	case <-p.exited:
		return p.exitErr
	default:
		return nil
	}
}

// Kill terminates the process with SIGKILL. It's safe to call Kill
// multiple times or on an already-terminated process.
func (p *Process) Kill() error {
	p.mu.Lock()
	cmd := p.cmd
	p.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return nil
	}

	select {
	case <-p.exited:
		return nil
	default:
	}

	p.log.Debug("Killing engine process", "pid", cmd.Process.Pid)

	if err := cmd.Process.Kill(); err != nil && !stderrors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill engine process (pid %d): %w", cmd.Process.Pid, err)
	}

	return nil
}

// Close closes stdin and the read ends of stdout and stderr. Readers blocked
// on the streams and a WriteLine blocked on a full stdin pipe return with an
// error.
func (p *Process) Close() error {
	var err error

	p.closeOnce.Do(func() {
		p.mu.Lock()
		defer p.mu.Unlock()

		var errs []error

		errs = append(errs, p.closeStdinLocked())

		if p.stdout != nil {
			errs = append(errs, ignoreClosed(p.stdout.Close()))
		}

		if p.stderr != nil {
			errs = append(errs, ignoreClosed(p.stderr.Close()))
		}

		err = stderrors.Join(errs...)
	})

	return err
}

// Pid returns the OS process ID, or 0 if not running.
func (p *Process) Pid() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd == nil || p.cmd.Process == nil {
		return 0
	}

	return p.cmd.Process.Pid
}

// ExitCode extracts the exit code from a process wait error.
// It returns 0 for nil and -1 when no code is available.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	if exitErr, ok := stderrors.AsType[*exec.ExitError](err); ok {
		return exitErr.ExitCode()
	}

	return -1
}

func closeAll(closers ...io.Closer) {
	for _, c := range closers {
		_ = c.Close()
	}
}

// ignoreClosed drops errors from closing something that exec.Cmd.Wait
// already closed.
func ignoreClosed(err error) error {
	if stderrors.Is(err, os.ErrClosed) {
		return nil
	}

	return err
}
