package driver

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/wagiedev/engine-driver-go/internal/errors"
	"github.com/wagiedev/engine-driver-go/internal/event"
	"github.com/wagiedev/engine-driver-go/internal/protocol"
)

// readLoop publishes lines from one engine stream until end of stream, the
// stream is closed, or the driver is aborted. End of stream stops this loop
// only; the exit watcher decides whether the driver aborts.
func (d *Driver) readLoop(stream event.Stream, r io.Reader) error {
	log := d.log.With("stream", stream.String())
	defer log.Debug("Reader stopped")

	// Simple scanner loop: Abort closes the pipe, which returns the blocked
	// Read, so no per-line goroutine is needed.
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), d.options.ResolvedMaxLineSize())

	for scanner.Scan() {
		if d.aborted.Load() {
			return nil
		}

		line := strings.TrimSuffix(scanner.Text(), "\r")

		switch stream {
		case event.Stdout:
			d.handleStdout(line)
		case event.Stderr:
			d.handleStderr(line)
		}
	}

	err := scanner.Err()
	if err == nil || d.aborted.Load() {
		return nil
	}

	if stderrors.Is(err, bufio.ErrTooLong) {
		log.Error("Engine line exceeds maximum size", "max_line_size", d.options.ResolvedMaxLineSize())

		_ = d.abort(event.ProtocolError, fmt.Errorf("read %s: %w", stream, err), d.options.ResolvedAbortTimeout())

		return nil
	}

	log.Debug("Reader error", "error", err)

	return nil
}

// handleStdout advances the handshake and publishes a received line.
func (d *Driver) handleStdout(line string) {
	d.gate.wait(d.abortCh)

	token, next, transitioned := d.handshake.Observe(line)

	d.log.Debug("Received line", "line", line)
	d.bus.PublishReceived(event.Line{Stream: event.Stdout, Text: line})

	if transitioned {
		d.log.Info("Handshake completed", "state", next, "token", token)
		d.bus.PublishHandshake(event.Handshake{
			Name:  protocol.HandshakeName,
			Token: token,
			Ready: next == protocol.HandshakeReady,
		})
	}
}

// handleStderr publishes an error line and aborts if the engine reported
// an error or warning.
func (d *Driver) handleStderr(line string) {
	d.log.Debug("Received error line", "line", line)
	d.bus.PublishError(event.Line{Stream: event.Stderr, Text: line})

	verdict := d.classifier.Classify(line)
	if !verdict.Abort {
		return
	}

	d.log.Warn("Engine reported error", "line", line, "reason", verdict.Reason)

	_ = d.abort(verdict.Reason, &errors.StderrError{
		Line:  line,
		Fatal: verdict.Reason == event.FatalError,
	}, d.options.ResolvedAbortTimeout())
}
