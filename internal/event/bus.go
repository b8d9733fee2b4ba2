package event

import (
	"log/slog"
	"sync"
)

// Bus fans events out to every subscribed listener in subscription order.
type Bus struct {
	log *slog.Logger

	mu        sync.RWMutex
	nextID    uint64
	listeners []subscription
}

type subscription struct {
	id       uint64
	listener Listener
}

// NewBus creates an empty bus.
func NewBus(log *slog.Logger) *Bus {
	return &Bus{log: log.With("component", "event")}
}

// Subscribe registers l and returns a function that removes it again.
// The returned function is safe to call more than once.
func (b *Bus) Subscribe(l Listener) (unsubscribe func()) {
	if l == nil {
		return func() {}
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, subscription{id: id, listener: l})
	b.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			for i, s := range b.listeners {
				if s.id == id {
					b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)

					return
				}
			}
		})
	}
}

// Len returns the number of subscribed listeners.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.listeners)
}

// PublishReceived delivers a stdout line.
func (b *Bus) PublishReceived(l Line) {
	b.each("received", func(x Listener) { x.OnReceived(l) })
}

// PublishSent delivers a command that was written to stdin.
func (b *Bus) PublishSent(c Command) {
	b.each("sent", func(x Listener) { x.OnSent(c) })
}

// PublishError delivers a stderr line.
func (b *Bus) PublishError(l Line) {
	b.each("error", func(x Listener) { x.OnError(l) })
}

// PublishHandshake delivers the handshake outcome.
func (b *Bus) PublishHandshake(h Handshake) {
	b.each("handshake", func(x Listener) { x.OnHandshake(h) })
}

// PublishAborted delivers the final aborted notification.
func (b *Bus) PublishAborted(a Aborted) {
	b.each("aborted", func(x Listener) { x.OnAborted(a) })
}

func (b *Bus) each(kind string, fn func(Listener)) {
	b.mu.RLock()
	snapshot := make([]Listener, len(b.listeners))

	for i, s := range b.listeners {
		snapshot[i] = s.listener
	}
	b.mu.RUnlock()

	for _, l := range snapshot {
		b.call(kind, l, fn)
	}
}

// call invokes fn and recovers a listener panic so a worker keeps running.
func (b *Bus) call(kind string, l Listener, fn func(Listener)) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("Listener panicked", "event", kind, "panic", r)
		}
	}()

	fn(l)
}
