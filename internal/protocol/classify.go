package protocol

import (
	"strings"

	"github.com/wagiedev/engine-driver-go/internal/event"
)

const (
	errorPrefix   = "ERROR: "
	warningPrefix = "WARNING: "
)

// DefaultFatalPrefixes lists stderr payloads the engine cannot recover from.
// The engine prints this when a required data file such as fv.bin is missing.
var DefaultFatalPrefixes = []string{"ERROR: Can't open a file,"}

// Verdict is the abort decision for one stderr line.
type Verdict struct {
	Abort  bool
	Reason event.AbortReason
}

// Classifier maps stderr lines to abort decisions.
type Classifier struct {
	fatal []string
}

// NewClassifier creates a classifier. A nil fatal list uses DefaultFatalPrefixes.
func NewClassifier(fatal []string) *Classifier {
	if fatal == nil {
		fatal = DefaultFatalPrefixes
	}

	return &Classifier{fatal: fatal}
}

// Classify decides what a stderr line means for the driver lifecycle.
func (c *Classifier) Classify(line string) Verdict {
	switch {
	case strings.HasPrefix(line, errorPrefix):
		for _, p := range c.fatal {
			if strings.HasPrefix(line, p) {
				return Verdict{Abort: true, Reason: event.FatalError}
			}
		}

		return Verdict{Abort: true, Reason: event.ProtocolError}
	case strings.HasPrefix(line, warningPrefix):
		return Verdict{Abort: true, Reason: event.ProtocolError}
	default:
		return Verdict{}
	}
}
