package scene

import "sync/atomic"

// Signal is the externally owned formed/scattered toggle.
// Input handlers flip it at any time; the scene only samples it once per frame.
type Signal struct {
	formed atomic.Bool
}

// NewSignal creates a Signal in the given initial state.
//
// Parameters:
//   - formed: the initial state
//
// Returns:
//   - *Signal: the new signal
func NewSignal(formed bool) *Signal {
	s := &Signal{}
	s.formed.Store(formed)
	return s
}

// Formed reports the current state.
func (s *Signal) Formed() bool {
	return s.formed.Load()
}

// Set stores a new state.
func (s *Signal) Set(formed bool) {
	s.formed.Store(formed)
}

// Toggle flips the state and returns the new value.
func (s *Signal) Toggle() bool {
	for {
		old := s.formed.Load()
		if s.formed.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
