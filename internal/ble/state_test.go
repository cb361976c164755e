package ble

import "testing"

func TestConnStateLifecycle(t *testing.T) {
	allowed := []struct{ from, to ConnState }{
		{StateIdle, StateScanning},
		{StateScanning, StateFound},
		{StateScanning, StateIdle},
		{StateFound, StateConnecting},
		{StateConnecting, StateConnected},
		{StateConnecting, StateFailed},
		{StateConnected, StateIdle},
		{StateFailed, StateScanning},
	}

	for _, tc := range allowed {
		if !canTransition(tc.from, tc.to) {
			t.Errorf("%v -> %v should be allowed", tc.from, tc.to)
		}
	}
}

func TestConnStateInvalidEdges(t *testing.T) {
	denied := []struct{ from, to ConnState }{
		{StateIdle, StateConnected},
		{StateIdle, StateFound},
		{StateScanning, StateConnecting},
		{StateFound, StateScanning}, // a found peer is either connected to or failed
		{StateConnected, StateScanning},
		{StateConnected, StateFound},
		{StateFailed, StateConnecting}, // retry goes through a fresh scan
	}

	for _, tc := range denied {
		if canTransition(tc.from, tc.to) {
			t.Errorf("%v -> %v should be rejected", tc.from, tc.to)
		}
	}
}

func TestConnStateStrings(t *testing.T) {
	states := map[ConnState]string{
		StateIdle:       "idle",
		StateScanning:   "scanning",
		StateFound:      "found",
		StateConnecting: "connecting",
		StateConnected:  "connected",
		StateFailed:     "failed",
	}

	for s, want := range states {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
