//go:build tinygo

package main

import (
	"context"
	"machine"

	"github.com/joshajohnson/WarGames-SAO/internal/animation"
	"github.com/joshajohnson/WarGames-SAO/internal/config"
	"github.com/joshajohnson/WarGames-SAO/internal/display"
	"github.com/joshajohnson/WarGames-SAO/internal/timing"
	"github.com/joshajohnson/WarGames-SAO/pkg/charlieplex"
	"github.com/joshajohnson/WarGames-SAO/pkg/gpio"
)

func main() {
	cfg := config.DefaultConfig()

	bus := gpio.NewPinBus([6]machine.Pin{
		machine.GP0, machine.GP1, machine.GP2,
		machine.GP3, machine.GP4, machine.GP5,
	})

	scheduler, err := animation.NewScheduler(animation.Games, animation.Options{
		Mode:          animation.PingPong,
		UpdateRate:    cfg.Animation.UpdateRate,
		RampStep:      cfg.Animation.RampStep,
		MinUpdateRate: cfg.Animation.MinUpdateRate,
	})
	if err != nil {
		println("scheduler:", err.Error())
		return
	}

	divider := timing.NewHalvingDivider()
	timer := timing.NewTimer(timing.OverflowPeriod(cfg.Timer.OscillatorHz, cfg.Timer.Prescaler), nil)
	renderer := display.NewRenderer(charlieplex.NewDriver(bus), divider, scheduler,
		display.WithSettleDelay(cfg.Animation.SettleDelay()))

	ctx := context.Background()
	go timer.Run(ctx, divider)
	renderer.Start(ctx)
}
