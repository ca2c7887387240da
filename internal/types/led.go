package types

import "fmt"

// Position is a location on the grid, numbered row-major:
//
//	| 1 2 3 |
//	| 4 5 6 |
//	| 7 8 9 |
type Position uint8

// NumPositions is the number of positions on the grid
const NumPositions = 9

// Valid reports whether the position is on the grid
func (p Position) Valid() bool {
	return p >= 1 && p <= NumPositions
}

// Row and Col return the zero-based grid coordinates
func (p Position) Row() int { return int(p-1) / 3 }
func (p Position) Col() int { return int(p-1) % 3 }

// Colour selects which diode of a bicolour position is lit
type Colour uint8

const (
	Red   Colour = 0
	Green Colour = 1
)

// Valid reports whether the colour can be displayed
func (c Colour) Valid() bool {
	return c == Red || c == Green
}

func (c Colour) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	default:
		return fmt.Sprintf("colour(%d)", uint8(c))
	}
}
