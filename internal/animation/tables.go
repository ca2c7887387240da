package animation

import (
	"errors"
	"fmt"

	"github.com/joshajohnson/WarGames-SAO/internal/types"
)

// ErrInvalidTable is returned by Validate
var ErrInvalidTable = errors.New("invalid frame table")

// Frame is the order in which positions are revealed
type Frame [types.NumPositions]types.Position

// Table is a fixed sequence of frames
type Table []Frame

// Sequence fills the board from the centre outwards
var Sequence = Table{
	{5, 9, 3, 7, 8, 2, 6, 4, 1},
}

// Games holds fifteen tic-tac-toe games, red moving first. None of them has
// a winner.
var Games = Table{
	{7, 2, 6, 9, 8, 5, 1, 4, 3},
	{6, 7, 3, 2, 8, 9, 5, 4, 1},
	{3, 7, 5, 9, 8, 2, 1, 6, 4},
	{4, 5, 8, 7, 2, 6, 9, 1, 3},
	{3, 2, 8, 7, 4, 9, 5, 6, 1},
	{6, 3, 7, 4, 2, 5, 8, 9, 1},
	{9, 1, 2, 8, 3, 5, 4, 6, 7},
	{2, 4, 9, 8, 6, 1, 7, 3, 5},
	{8, 4, 1, 9, 2, 3, 6, 5, 7},
	{7, 3, 1, 5, 2, 4, 6, 8, 9},
	{4, 9, 6, 2, 8, 7, 1, 5, 3},
	{6, 8, 7, 3, 2, 4, 9, 1, 5},
	{1, 7, 8, 2, 3, 4, 6, 9, 5},
	{5, 6, 3, 1, 9, 7, 4, 8, 2},
	{3, 5, 2, 6, 4, 1, 7, 8, 9},
}

// Validate checks that the table has frames and that every frame uses each
// position exactly once.
func Validate(t Table) error {
	if len(t) == 0 {
		return fmt.Errorf("%w: no frames", ErrInvalidTable)
	}
	for i, frame := range t {
		var seen [types.NumPositions + 1]bool
		for _, pos := range frame {
			if !pos.Valid() {
				return fmt.Errorf("%w: frame %d has position %d", ErrInvalidTable, i, pos)
			}
			if seen[pos] {
				return fmt.Errorf("%w: frame %d repeats position %d", ErrInvalidTable, i, pos)
			}
			seen[pos] = true
		}
	}
	return nil
}
