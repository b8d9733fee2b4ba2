package driver

import "sync"

// sendGate orders a command's sent event before stdout lines read after
// the command was written.
//
// The writer holds the gate from the moment a write returns until its sent
// event has been published. The stdout reader waits for the gate before
// publishing a line. The gate is never held across a write, so a write
// blocked on a full stdin pipe cannot stop the reader from draining stdout.
type sendGate struct {
	mu   sync.Mutex
	open chan struct{} // nil while no sent event is pending
}

func (g *sendGate) hold() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.open = make(chan struct{})
}

func (g *sendGate) release() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.open != nil {
		close(g.open)
		g.open = nil
	}
}

// wait blocks while a sent event is pending, or until stop is closed.
func (g *sendGate) wait(stop <-chan struct{}) {
	g.mu.Lock()
	ch := g.open
	g.mu.Unlock()

	if ch == nil {
		return
	}

	select {
	case <-ch:
	case <-stop:
	}
}
