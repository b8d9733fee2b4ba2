package driver

import (
	"context"
	"fmt"

	"github.com/wagiedev/engine-driver-go/internal/config"
	"github.com/wagiedev/engine-driver-go/internal/event"
)

// writeLoop writes queued commands to the engine in order. It exits once
// the queue is closed and drained, or ctx is cancelled.
func (d *Driver) writeLoop(ctx context.Context, proc config.Process) error {
	defer d.log.Debug("Writer stopped")

	for {
		cmd, ok := d.queue.Dequeue(ctx)
		if !ok {
			return nil
		}

		if err := proc.WriteLine(ctx, cmd.Text); err != nil {
			return d.writeFailed(ctx, proc, cmd, err)
		}

		d.gate.hold()
		d.log.Debug("Sent command", "command", cmd.Text, "id", cmd.ID)
		d.bus.PublishSent(cmd)
		d.gate.release()
	}
}

// writeFailed handles a failed stdin write. An exit is reported by the exit
// watcher; a live engine that stopped reading is a protocol failure.
func (d *Driver) writeFailed(ctx context.Context, proc config.Process, cmd event.Command, err error) error {
	err = fmt.Errorf("write command %q: %w", cmd.Text, err)

	if ctx.Err() != nil || d.aborted.Load() {
		return nil
	}

	select {
	case <-proc.Exited():
		d.log.Debug("Write failed after engine exit", "error", err)
	default:
		d.log.Error("Failed to write command", "error", err)

		_ = d.abort(event.ProtocolError, err, d.options.ResolvedAbortTimeout())
	}

	return err
}
