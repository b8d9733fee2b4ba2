package protocol

import (
	"regexp"
	"strings"
	"sync/atomic"
)

// HandshakeName is the command and response keyword of the prepare handshake.
const HandshakeName = "mnjprepare"

// handshakeOK is the token that marks a successful handshake.
const handshakeOK = "ok"

var handshakePattern = regexp.MustCompile(`(?i)^info ` + HandshakeName + `\s*(\w+)\s*$`)

// HandshakeState is the outcome of the prepare handshake.
type HandshakeState int32

const (
	// HandshakeUnknown means no handshake response has been seen yet.
	HandshakeUnknown HandshakeState = iota
	// HandshakeFailed means the engine answered with anything but "ok".
	// It is permanent for the lifetime of the driver.
	HandshakeFailed
	// HandshakeReady means the engine answered "ok".
	HandshakeReady
)

func (s HandshakeState) String() string {
	switch s {
	case HandshakeUnknown:
		return "unknown"
	case HandshakeFailed:
		return "failed"
	case HandshakeReady:
		return "ready"
	default:
		return "invalid"
	}
}

// MatchHandshake parses line as a handshake response and returns its token.
func MatchHandshake(line string) (token string, ok bool) {
	m := handshakePattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}

	return m[1], true
}

// Handshake tracks the handshake state. It leaves Unknown at most once.
type Handshake struct {
	state atomic.Int32
}

// State returns the current state.
func (h *Handshake) State() HandshakeState {
	return HandshakeState(h.state.Load())
}

// Observe feeds a stdout line to the state machine.
//
// It returns the new state and true only for the single line that moved the
// state out of Unknown; every other call returns false.
func (h *Handshake) Observe(line string) (token string, next HandshakeState, transitioned bool) {
	if h.State() != HandshakeUnknown {
		return "", h.State(), false
	}

	token, ok := MatchHandshake(line)
	if !ok {
		return "", HandshakeUnknown, false
	}

	next = HandshakeFailed
	if strings.EqualFold(token, handshakeOK) {
		next = HandshakeReady
	}

	if !h.state.CompareAndSwap(int32(HandshakeUnknown), int32(next)) {
		return "", h.State(), false
	}

	return token, next, true
}
