// Package queue provides the FIFO of commands waiting to be written to the
// engine's stdin.
package queue

import (
	"context"
	"sync"

	"github.com/wagiedev/engine-driver-go/internal/errors"
	"github.com/wagiedev/engine-driver-go/internal/event"
)

// CommandQueue is a thread-safe FIFO with a blocking dequeue.
//
// Commands come out in exactly the order their Enqueue or EnqueueBatch calls
// acquired the internal lock. Once closed, the queue rejects new commands
// but still hands out everything queued before the close.
type CommandQueue struct {
	mu     sync.Mutex
	items  []event.Command
	closed bool

	// signal holds at most one pending wake-up for Dequeue.
	signal chan struct{}
}

// New creates an empty, open queue.
func New() *CommandQueue {
	return &CommandQueue{
		signal: make(chan struct{}, 1),
	}
}

// Enqueue appends cmd. It never blocks.
func (q *CommandQueue) Enqueue(cmd event.Command) error {
	return q.EnqueueBatch(cmd)
}

// EnqueueBatch appends all cmds as one unit: no command from another
// goroutine can land between them.
func (q *CommandQueue) EnqueueBatch(cmds ...event.Command) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return errors.ErrQueueClosed
	}

	q.items = append(q.items, cmds...)
	q.notify()

	return nil
}

// CloseWith appends final and closes the queue in a single step.
// Closing an already closed queue is a no-op and final is dropped.
func (q *CommandQueue) CloseWith(final ...event.Command) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.items = append(q.items, final...)
	q.closed = true
	q.notify()
}

// Dequeue removes and returns the oldest command.
//
// It blocks until a command is available. It returns false once the queue
// is closed and drained, or when ctx is done.
func (q *CommandQueue) Dequeue(ctx context.Context) (event.Command, bool) {
	for {
		q.mu.Lock()

		if len(q.items) > 0 {
			cmd := q.items[0]
			q.items[0] = event.Command{}
			q.items = q.items[1:]

			// Pass the wake-up on if more work remains.
			if len(q.items) > 0 || q.closed {
				q.notify()
			}

			q.mu.Unlock()

			return cmd, true
		}

		if q.closed {
			q.notify()
			q.mu.Unlock()

			return event.Command{}, false
		}

		q.mu.Unlock()

		select {
		case <-q.signal:
		case <-ctx.Done():
			return event.Command{}, false
		}
	}
}

// Len returns the number of queued commands.
func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}

// Closed reports whether the queue rejects new commands.
func (q *CommandQueue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.closed
}

// notify records a wake-up without blocking. Caller must hold q.mu.
func (q *CommandQueue) notify() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}
