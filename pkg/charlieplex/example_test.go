package charlieplex_test

import (
	"fmt"

	"github.com/joshajohnson/WarGames-SAO/internal/types"
	"github.com/joshajohnson/WarGames-SAO/pkg/charlieplex"
	"github.com/joshajohnson/WarGames-SAO/pkg/gpio"
)

func ExampleDriver_Display() {
	bus := gpio.NewSimBus(0)
	driver := charlieplex.NewDriver(bus)

	// Top-left position in red
	if err := driver.Display(1, types.Red, true); err != nil {
		fmt.Printf("Failed to display: %v\n", err)
		return
	}

	state := bus.Current()
	for i := 0; i < types.BusWidth; i++ {
		fmt.Printf("line %d: %v\n", i, gpio.LineMode(state, i))
	}
	// Output:
	// line 0: low
	// line 1: high
	// line 2: floating
	// line 3: floating
	// line 4: floating
	// line 5: floating
}

func ExampleCompute() {
	for _, colour := range []types.Colour{types.Red, types.Green, types.Colour(7)} {
		state, _ := charlieplex.Compute(5, colour, true)
		fmt.Printf("%v: output %06b high %06b\n", colour, state.Output, state.High)
	}
	// Output:
	// red: output 000101 high 000100
	// green: output 000101 high 000001
	// colour(7): output 111111 high 000000
}
