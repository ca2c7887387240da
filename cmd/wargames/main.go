package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joshajohnson/WarGames-SAO/internal/animation"
	"github.com/joshajohnson/WarGames-SAO/internal/config"
	"github.com/joshajohnson/WarGames-SAO/internal/display"
	"github.com/joshajohnson/WarGames-SAO/internal/timing"
	"github.com/joshajohnson/WarGames-SAO/internal/types"
	"github.com/joshajohnson/WarGames-SAO/pkg/charlieplex"
	"github.com/joshajohnson/WarGames-SAO/pkg/gpio"
)

func main() {
	configPath := flag.String("config", "config.json", "path to config file")
	dryRun := flag.Bool("dry-run", false, "drive a simulated bus instead of GPIO")
	verbose := flag.Bool("v", false, "log every frame change")
	flag.Parse()

	// Load configuration
	cfg, fromFile, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", *configPath, err)
	}
	if !fromFile {
		log.Printf("No config at %s, using default configuration", *configPath)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var bus types.Bus
	if *dryRun {
		bus = gpio.NewSimBus(1)
	} else {
		chip, err := gpio.OpenChip(cfg.Bus)
		if err != nil {
			log.Fatalf("Failed to open bus: %v", err)
		}
		bus = chip
	}
	defer bus.Close()

	scheduler, err := animation.NewScheduler(tableFor(cfg), animation.Options{
		Mode:          modeFor(cfg),
		UpdateRate:    cfg.Animation.UpdateRate,
		RampStep:      cfg.Animation.RampStep,
		MinUpdateRate: cfg.Animation.MinUpdateRate,
	})
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	divider := dividerFor(cfg)
	timer := timing.NewTimer(timing.OverflowPeriod(cfg.Timer.OscillatorHz, cfg.Timer.Prescaler), logger)
	renderer := display.NewRenderer(charlieplex.NewDriver(bus), divider, scheduler,
		display.WithSettleDelay(cfg.Animation.SettleDelay()),
		display.WithLogger(logger))

	// Handle shutdown gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Overflow at %.1fHz, %s divider, %d frames",
		timing.OverflowRate(cfg.Timer.OscillatorHz, cfg.Timer.Prescaler), cfg.Timer.Divider, scheduler.Frames())

	go timer.Run(ctx, divider)
	if err := renderer.Start(ctx); err != nil && ctx.Err() == nil {
		log.Printf("Main loop stopped: %v", err)
	}

	log.Println("Shutting down...")
}

func tableFor(cfg *config.Config) animation.Table {
	if cfg.Animation.Table == config.TableSequence {
		return animation.Sequence
	}
	return animation.Games
}

func modeFor(cfg *config.Config) animation.Mode {
	if cfg.Animation.Mode == config.ModeCycle {
		return animation.Cycle
	}
	return animation.PingPong
}

func dividerFor(cfg *config.Config) timing.Divider {
	if cfg.Timer.Divider == config.DividerPeriod {
		return timing.NewPeriodDivider(uint8(cfg.Timer.Period))
	}
	return timing.NewDivider(uint8(cfg.Timer.Ratio))
}
