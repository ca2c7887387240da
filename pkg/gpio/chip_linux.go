//go:build linux && !tinygo

package gpio

import (
	"fmt"
	"log"
	"sync"

	"github.com/joshajohnson/WarGames-SAO/internal/types"
	"github.com/warthog618/go-gpiocdev"
)

// ChipBus drives the charlieplex lines through the GPIO character device
type ChipBus struct {
	chip    string
	offsets []int
	lines   []*gpiocdev.Line
	state   types.BusState
	mu      sync.Mutex
}

// OpenChip requests the six bus lines on chip. Every line starts as an
// input so nothing is lit until the first Apply.
func OpenChip(cfg types.BusConfig) (*ChipBus, error) {
	if len(cfg.Lines) != types.BusWidth {
		return nil, fmt.Errorf("bus needs %d lines, got %d", types.BusWidth, len(cfg.Lines))
	}

	b := &ChipBus{
		chip:    cfg.Chip,
		offsets: cfg.Lines,
	}

	log.Printf("Requesting GPIO lines %v on %s", cfg.Lines, cfg.Chip)
	for _, offset := range cfg.Lines {
		line, err := gpiocdev.RequestLine(cfg.Chip, offset,
			gpiocdev.AsInput,
			gpiocdev.WithConsumer(cfg.Consumer))
		if err != nil {
			// Clean up any lines we've already requested
			b.Close()
			return nil, fmt.Errorf("failed to request line %d on %s: %w", offset, cfg.Chip, err)
		}
		b.lines = append(b.lines, line)
	}

	return b, nil
}

// Apply reconfigures the lines that differ from the current state
func (b *ChipBus) Apply(state types.BusState) error {
	if !state.Valid() {
		return fmt.Errorf("invalid bus state %+v", state)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.lines == nil {
		return ErrClosed
	}

	for _, i := range order(b.state, state) {
		var opt gpiocdev.LineConfigOption
		if state.Driven(i) {
			opt = gpiocdev.AsOutput(state.Level(i))
		} else {
			opt = gpiocdev.AsInput
		}
		if err := b.lines[i].Reconfigure(opt); err != nil {
			return fmt.Errorf("failed to set line %d to %v: %w", b.offsets[i], LineMode(state, i), err)
		}
	}

	b.state = state
	return nil
}

// Close releases all GPIO lines
func (b *ChipBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, line := range b.lines {
		// leave the grid dark
		if err := line.Reconfigure(gpiocdev.AsInput); err != nil {
			log.Printf("Error releasing line %d: %v", b.offsets[i], err)
		}
		if err := line.Close(); err != nil {
			log.Printf("Error closing line %d: %v", b.offsets[i], err)
		}
	}
	b.lines = nil
	return nil
}
