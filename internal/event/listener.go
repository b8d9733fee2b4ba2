package event

// Listener observes every event family published by a driver.
type Listener interface {
	OnReceived(Line)
	OnSent(Command)
	OnError(Line)
	OnHandshake(Handshake)
	OnAborted(Aborted)
}

// Funcs adapts optional callbacks to the Listener interface.
// Nil fields are skipped.
type Funcs struct {
	Received  func(Line)
	Sent      func(Command)
	Error     func(Line)
	Handshake func(Handshake)
	Aborted   func(Aborted)
}

// Compile-time verification that Funcs implements Listener.
var _ Listener = Funcs{}

// OnReceived implements Listener.
func (f Funcs) OnReceived(l Line) {
	if f.Received != nil {
		f.Received(l)
	}
}

// OnSent implements Listener.
func (f Funcs) OnSent(c Command) {
	if f.Sent != nil {
		f.Sent(c)
	}
}

// OnError implements Listener.
func (f Funcs) OnError(l Line) {
	if f.Error != nil {
		f.Error(l)
	}
}

// OnHandshake implements Listener.
func (f Funcs) OnHandshake(h Handshake) {
	if f.Handshake != nil {
		f.Handshake(h)
	}
}

// OnAborted implements Listener.
func (f Funcs) OnAborted(a Aborted) {
	if f.Aborted != nil {
		f.Aborted(a)
	}
}
