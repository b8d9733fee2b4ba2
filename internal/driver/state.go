package driver

// State is the lifecycle state of a driver.
type State int32

const (
	// StateNotStarted means Initialize has not succeeded yet.
	StateNotStarted State = iota
	// StateInitialized means the engine process and workers are running.
	StateInitialized
	// StateConnected means a connect command sequence has been queued.
	StateConnected
	// StateAborted is terminal.
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInitialized:
		return "initialized"
	case StateConnected:
		return "connected"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// ConnectionMode records which connect variant was used.
type ConnectionMode int32

const (
	// ModeNone means no connect command was issued.
	ModeNone ConnectionMode = iota
	// ModeMnj means Connect joined a parallel search server.
	ModeMnj
	// ModeDfpn means ConnectToDfpn joined a mate solver server.
	ModeDfpn
)

func (m ConnectionMode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeMnj:
		return "mnj"
	case ModeDfpn:
		return "dfpn"
	default:
		return "unknown"
	}
}
