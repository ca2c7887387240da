package types

// BusWidth is the number of GPIO lines shared by the charlieplexed grid
const BusWidth = 6

// AllLines has one bit set for every line on the bus
const AllLines uint8 = 1<<BusWidth - 1

// BusState describes the configuration of every line on the bus.
// A line whose bit is clear in Output is high impedance.
type BusState struct {
	Output uint8
	High   uint8
}

// Driven reports whether line i is an output
func (s BusState) Driven(i int) bool {
	return s.Output&(1<<i) != 0
}

// Level returns 1 if line i is driven high, 0 otherwise
func (s BusState) Level(i int) int {
	if s.High&(1<<i) != 0 {
		return 1
	}
	return 0
}

// Valid reports whether the state only touches bus lines and drives high
// only lines that are outputs.
func (s BusState) Valid() bool {
	return s.Output&^AllLines == 0 && s.High&^s.Output == 0
}

// Bus represents the shared charlieplex lines
type Bus interface {
	// Apply reconfigures every line to match the state
	Apply(state BusState) error
	// Close releases the lines
	Close() error
}
