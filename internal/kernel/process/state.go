package process

// State represents the lifecycle state of a process
type State int

const (
	StateReady State = iota
	StateRunning
	StateWaiting
	StateTerminated
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateWaiting:
		return "waiting"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// canTransition reports whether the state machine permits moving from one
// state to another. Terminated is terminal and has no outgoing edges.
func canTransition(from, to State) bool {
	switch from {
	case StateReady:
		return to == StateRunning || to == StateWaiting || to == StateTerminated
	case StateRunning:
		return to == StateReady || to == StateWaiting || to == StateTerminated
	case StateWaiting:
		return to == StateReady
	default:
		return false
	}
}
