//go:build tinygo

package gpio

import (
	"machine"

	"github.com/joshajohnson/WarGames-SAO/internal/types"
)

// PinBus drives the charlieplex lines on microcontroller pins
type PinBus struct {
	pins  [types.BusWidth]machine.Pin
	state types.BusState
}

// NewPinBus configures every pin as an input
func NewPinBus(pins [types.BusWidth]machine.Pin) *PinBus {
	b := &PinBus{pins: pins}
	for _, p := range b.pins {
		p.Configure(machine.PinConfig{Mode: machine.PinInput})
	}
	return b
}

// Apply reconfigures the pins that differ from the current state
func (b *PinBus) Apply(state types.BusState) error {
	for _, i := range order(b.state, state) {
		p := b.pins[i]
		if !state.Driven(i) {
			p.Configure(machine.PinConfig{Mode: machine.PinInput})
			continue
		}
		p.Set(state.Level(i) == 1)
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	}
	b.state = state
	return nil
}

// Close leaves every pin floating
func (b *PinBus) Close() error {
	for _, p := range b.pins {
		p.Configure(machine.PinConfig{Mode: machine.PinInput})
	}
	return nil
}
