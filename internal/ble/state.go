package ble

// ConnState is the connection lifecycle state owned by the Client.
// Transitions go through Client.transition, never by flag twiddling.
type ConnState int

const (
	StateIdle ConnState = iota
	StateScanning
	StateFound
	StateConnecting
	StateConnected
	StateFailed
)

func (s ConnState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateFound:
		return "found"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// validTransitions lists every allowed lifecycle edge. Link loss goes back
// to idle (not found) so the driving loop re-scans from scratch instead of
// reconnecting to a stale cached descriptor.
var validTransitions = map[ConnState][]ConnState{
	StateIdle:       {StateScanning},
	StateScanning:   {StateFound, StateIdle},
	StateFound:      {StateConnecting},
	StateConnecting: {StateConnected, StateFailed},
	StateConnected:  {StateIdle},
	StateFailed:     {StateScanning},
}

// canTransition reports whether the edge from -> to is part of the lifecycle.
func canTransition(from, to ConnState) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
