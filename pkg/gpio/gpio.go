// Package gpio provides the charlieplex bus implementations: the Linux GPIO
// character device, TinyGo machine pins and an in-memory bus for tests and
// dry runs.
package gpio

import (
	"errors"
	"fmt"
	"sync"

	"github.com/joshajohnson/WarGames-SAO/internal/types"
)

// ErrClosed is returned when applying a state to a closed bus
var ErrClosed = errors.New("bus closed")

// Mode is the configuration of a single line
type Mode int

const (
	// Floating is high impedance (input)
	Floating Mode = iota
	DrivenLow
	DrivenHigh
)

func (m Mode) String() string {
	switch m {
	case Floating:
		return "floating"
	case DrivenLow:
		return "low"
	case DrivenHigh:
		return "high"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// LineMode returns the mode of line i in state
func LineMode(state types.BusState, i int) Mode {
	switch {
	case !state.Driven(i):
		return Floating
	case state.Level(i) == 1:
		return DrivenHigh
	default:
		return DrivenLow
	}
}

// order returns the line indices in the order they must be changed to get
// from one state to the next: lines that stop driving are released first and
// the high line is driven last, so two diodes are never biased at once.
func order(prev, next types.BusState) []int {
	var release, low, high []int
	for i := 0; i < types.BusWidth; i++ {
		if LineMode(prev, i) == LineMode(next, i) {
			continue
		}
		switch LineMode(next, i) {
		case Floating:
			release = append(release, i)
		case DrivenLow:
			low = append(low, i)
		case DrivenHigh:
			high = append(high, i)
		}
	}
	return append(append(release, low...), high...)
}

// SimBus is an in-memory bus that records the states applied to it
type SimBus struct {
	mu      sync.Mutex
	current types.BusState
	history []types.BusState
	limit   int
	applied int
	closed  bool
}

// NewSimBus creates a simulated bus keeping at most limit states of history.
// A limit of zero keeps everything.
func NewSimBus(limit int) *SimBus {
	return &SimBus{limit: limit}
}

// Apply records the state
func (b *SimBus) Apply(state types.BusState) error {
	if !state.Valid() {
		return fmt.Errorf("invalid bus state %+v", state)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	b.current = state
	b.applied++
	b.history = append(b.history, state)
	if b.limit > 0 && len(b.history) > b.limit {
		b.history = b.history[len(b.history)-b.limit:]
	}
	return nil
}

// Current returns the last applied state
func (b *SimBus) Current() types.BusState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// History returns a copy of the recorded states, oldest first
func (b *SimBus) History() []types.BusState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]types.BusState(nil), b.history...)
}

// Applied returns the total number of states applied
func (b *SimBus) Applied() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.applied
}

// Close closes the bus
func (b *SimBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}
