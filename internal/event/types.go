package event

// Stream identifies which engine output stream a line was read from.
type Stream int

const (
	// Stdout is the engine's standard output.
	Stdout Stream = iota
	// Stderr is the engine's standard error.
	Stderr
)

func (s Stream) String() string {
	switch s {
	case Stdout:
		return "stdout"
	case Stderr:
		return "stderr"
	default:
		return "unknown"
	}
}

// Line is a single text line read from the engine.
type Line struct {
	Stream Stream
	Text   string
}

// Command is a single text line queued for the engine's stdin.
// ID is unique per command and lets callers correlate sent events.
type Command struct {
	ID   string
	Text string
}

// AbortReason describes why a driver reached the aborted state.
type AbortReason int

const (
	// UserRequested means the caller asked for shutdown.
	UserRequested AbortReason = iota
	// ProtocolError means the engine reported an error or warning on stderr,
	// or stdin could no longer be written.
	ProtocolError
	// FatalError means the engine reported an error that retrying the same
	// engine setup cannot fix, such as a missing data file.
	FatalError
	// ProcessExited means the engine process terminated on its own.
	ProcessExited
)

func (r AbortReason) String() string {
	switch r {
	case UserRequested:
		return "user_requested"
	case ProtocolError:
		return "protocol_error"
	case FatalError:
		return "fatal_error"
	case ProcessExited:
		return "process_exited"
	default:
		return "unknown"
	}
}

// Recoverable reports whether a fresh driver for the same engine could be
// expected to succeed after an abort with this reason.
func (r AbortReason) Recoverable() bool {
	return r != FatalError
}

// Aborted is published exactly once when a driver shuts down.
// Err carries the stderr line or exit status that caused the abort, if any.
type Aborted struct {
	Reason AbortReason
	Err    error
}

// Handshake is published once when the prepare handshake response arrives.
type Handshake struct {
	Name  string
	Token string
	Ready bool
}
