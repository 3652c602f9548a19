// Package signal carries the external trigger that drives the morph: a discrete
// formed/scattered state and a continuous hand coordinate. Producers (window input,
// gesture trackers) write to a Source at any time; the frame loop takes one Snapshot
// per frame so every component observes the same value.
package signal

import (
	"sync"

	"github.com/chewxy/math32"
)

// State is the discrete layout target.
type State uint8

const (
	// StateScattered targets progress 0.
	StateScattered State = iota
	// StateFormed targets progress 1.
	StateFormed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateFormed:
		return "FORMED"
	case StateScattered:
		return "SCATTERED"
	default:
		return "UNKNOWN"
	}
}

// Target returns the progress target for the state: 1 when formed, else 0.
func (s State) Target() float32 {
	if s == StateFormed {
		return 1
	}
	return 0
}

// Hand is a pointer-like coordinate in [-1, 1] on both axes.
type Hand struct {
	X      float32
	Y      float32
	Active bool
}

// Snapshot is the signal value observed by a single frame.
type Snapshot struct {
	State State
	Hand  Hand
}

// Source holds the latest external signal. It is safe for concurrent use by a
// producer goroutine and the frame loop.
type Source interface {
	// SetState replaces the discrete state.
	SetState(s State)

	// Toggle flips between formed and scattered and returns the new state.
	Toggle() State

	// SetHand replaces the hand coordinate. X and Y are clamped to [-1, 1].
	SetHand(h Hand)

	// Snapshot returns the current value.
	Snapshot() Snapshot
}

type source struct {
	mu    *sync.Mutex
	value Snapshot
}

var _ Source = &source{}

// NewSource creates a Source starting in the given state with an inactive hand.
func NewSource(initial State) Source {
	return &source{
		mu:    &sync.Mutex{},
		value: Snapshot{State: initial},
	}
}

func (s *source) SetState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value.State = state
}

func (s *source) Toggle() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value.State == StateFormed {
		s.value.State = StateScattered
	} else {
		s.value.State = StateFormed
	}
	return s.value.State
}

func (s *source) SetHand(h Hand) {
	h.X = math32.Max(-1, math32.Min(1, h.X))
	h.Y = math32.Max(-1, math32.Min(1, h.Y))
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value.Hand = h
}

func (s *source) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}
