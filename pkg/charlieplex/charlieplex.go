// Package charlieplex maps grid positions and colours onto the six shared
// lines of the badge. Each position is a pair of anti-parallel diodes across
// two lines; the colour picks which of the two lines is driven high.
package charlieplex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joshajohnson/WarGames-SAO/internal/types"
)

// ErrInvalidPosition is returned for positions outside 1..9
var ErrInvalidPosition = errors.New("invalid position")

// Line indices on the bus, by position-1
var (
	anode   = [types.NumPositions]uint8{1, 4, 2, 5, 2, 5, 4, 5, 4}
	cathode = [types.NumPositions]uint8{0, 2, 1, 2, 0, 4, 1, 1, 0}
)

// Blank is the state with every line driven low, so no diode can conduct
var Blank = types.BusState{Output: types.AllLines}

// Resolve returns the anode and cathode lines of a position
func Resolve(pos types.Position) (a, c uint8, err error) {
	if !pos.Valid() {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidPosition, pos)
	}
	return anode[pos-1], cathode[pos-1], nil
}

// Compute returns the bus state that lights pos in colour. A disabled call or
// an unknown colour yields Blank. An invalid position also yields Blank
// together with ErrInvalidPosition.
func Compute(pos types.Position, colour types.Colour, enable bool) (types.BusState, error) {
	if !enable || !colour.Valid() {
		return Blank, nil
	}

	a, c, err := Resolve(pos)
	if err != nil {
		return Blank, err
	}

	// every other line floats so it cannot sink or source through a neighbour
	state := types.BusState{Output: 1<<a | 1<<c}
	if colour == types.Red {
		state.High = 1 << a
	} else {
		state.High = 1 << c
	}
	return state, nil
}

// Driver lights one position at a time on a bus
type Driver struct {
	bus types.Bus
}

// NewDriver creates a driver for the bus
func NewDriver(bus types.Bus) *Driver {
	return &Driver{bus: bus}
}

// Display lights pos in colour, or blanks the bus when enable is false or the
// colour is not displayable.
func (d *Driver) Display(pos types.Position, colour types.Colour, enable bool) error {
	state, err := Compute(pos, colour, enable)
	if applyErr := d.bus.Apply(state); applyErr != nil {
		return fmt.Errorf("failed to apply bus state: %w", applyErr)
	}
	return err
}

// Blank turns every LED off
func (d *Driver) Blank() error {
	if err := d.bus.Apply(Blank); err != nil {
		return fmt.Errorf("failed to blank bus: %w", err)
	}
	return nil
}

// LampTest lights every position in red then green for dwell each and
// leaves the bus blank.
func (d *Driver) LampTest(ctx context.Context, dwell time.Duration) (err error) {
	defer func() {
		err = errors.Join(err, d.Blank())
	}()

	for _, colour := range []types.Colour{types.Red, types.Green} {
		for pos := types.Position(1); pos <= types.NumPositions; pos++ {
			if err := d.Display(pos, colour, true); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(dwell):
			}
		}
	}
	return nil
}
