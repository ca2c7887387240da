//go:build !linux && !tinygo

package gpio

import (
	"errors"

	"github.com/joshajohnson/WarGames-SAO/internal/types"
)

// ChipBus is only available on Linux
type ChipBus struct{}

// OpenChip always fails off Linux
func OpenChip(cfg types.BusConfig) (*ChipBus, error) {
	return nil, errors.New("GPIO character device is only supported on Linux")
}

func (b *ChipBus) Apply(state types.BusState) error { return ErrClosed }

func (b *ChipBus) Close() error { return nil }
