package enginedriver

import (
	"github.com/wagiedev/engine-driver-go/internal/config"
	"github.com/wagiedev/engine-driver-go/internal/driver"
	"github.com/wagiedev/engine-driver-go/internal/event"
	"github.com/wagiedev/engine-driver-go/internal/hashmem"
	"github.com/wagiedev/engine-driver-go/internal/protocol"
)

// DriverOptions configures a driver. Build it with Option functions.
type DriverOptions = config.Options

// Process defines the interface to a running engine.
// Implement this to drive engines that are not local executables, or to
// fake an engine in tests. Inject it with WithProcess.
type Process = config.Process

// ===== Events =====

// Stream identifies an engine output stream.
type Stream = event.Stream

const (
	// Stdout is the engine's standard output.
	Stdout = event.Stdout
	// Stderr is the engine's standard error.
	Stderr = event.Stderr
)

// Line is one line of engine output without its line terminator.
type Line = event.Line

// Command is a command written to the engine.
type Command = event.Command

// HandshakeEvent reports the outcome of the prepare handshake.
type HandshakeEvent = event.Handshake

// AbortedEvent reports that the driver shut down.
type AbortedEvent = event.Aborted

// Listener observes driver events. Calls happen on the driver's goroutines
// and must not block for long.
type Listener = event.Listener

// ListenerFuncs adapts optional callbacks to the Listener interface.
type ListenerFuncs = event.Funcs

// AbortReason explains why a driver shut down.
type AbortReason = event.AbortReason

const (
	// UserRequested means the host called Abort or Close.
	UserRequested = event.UserRequested
	// ProtocolError means the engine reported an error or warning, or the
	// exchange broke down.
	ProtocolError = event.ProtocolError
	// FatalError means the engine cannot run, e.g. a data file is missing.
	FatalError = event.FatalError
	// ProcessExited means the engine terminated on its own.
	ProcessExited = event.ProcessExited
)

// ===== Lifecycle =====

// State is the lifecycle state of a driver.
type State = driver.State

const (
	StateNotStarted  = driver.StateNotStarted
	StateInitialized = driver.StateInitialized
	StateConnected   = driver.StateConnected
	StateAborted     = driver.StateAborted
)

// ConnectionMode records which connect variant is in use.
type ConnectionMode = driver.ConnectionMode

const (
	ModeNone = driver.ModeNone
	ModeMnj  = driver.ModeMnj
	ModeDfpn = driver.ModeDfpn
)

// HandshakeState is the state of the prepare handshake.
type HandshakeState = protocol.HandshakeState

const (
	HandshakeUnknown = protocol.HandshakeUnknown
	HandshakeFailed  = protocol.HandshakeFailed
	HandshakeReady   = protocol.HandshakeReady
)

// ===== Connect parameters =====

// ServerConfig holds the parameters of Connect.
type ServerConfig = driver.ServerConfig

// DfpnConfig holds the parameters of ConnectToDfpn.
type DfpnConfig = driver.DfpnConfig

// ===== Hash sizing =====

// HashEntry pairs a hash command value with the engine memory it implies.
type HashEntry = hashmem.Entry

// HashTable lists the hash settings for an engine allowed to use rate
// (0.0 to 1.0) of totalMB megabytes of memory.
func HashTable(totalMB uint64, rate float64) []HashEntry {
	return hashmem.Table(totalMB, rate)
}

// SystemHashTable lists the hash settings for rate of this machine's
// physical memory.
func SystemHashTable(rate float64) ([]HashEntry, error) {
	return hashmem.SystemTable(rate)
}

// LargestHashEntry returns the biggest setting of HashTable(totalMB, rate).
func LargestHashEntry(totalMB uint64, rate float64) HashEntry {
	return hashmem.Largest(totalMB, rate)
}

// SystemHashEntry returns the biggest hash setting that fits in rate of this
// machine's physical memory.
func SystemHashEntry(rate float64) (HashEntry, error) {
	return hashmem.SystemLargest(rate)
}
