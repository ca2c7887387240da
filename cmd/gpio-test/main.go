package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joshajohnson/WarGames-SAO/internal/config"
	"github.com/joshajohnson/WarGames-SAO/pkg/charlieplex"
	"github.com/joshajohnson/WarGames-SAO/pkg/gpio"
)

func main() {
	configPath := flag.String("config", "config.json", "path to config file")
	dwell := flag.Duration("dwell", time.Second, "how long each LED stays lit")
	loop := flag.Bool("loop", false, "repeat until terminated")
	flag.Parse()

	cfg, fromFile, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", *configPath, err)
	}
	if !fromFile {
		log.Printf("No config at %s, using default configuration", *configPath)
	}

	// Set up signal handler for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("Starting lamp test...")

	bus, err := gpio.OpenChip(cfg.Bus)
	if err != nil {
		log.Fatalf("Failed to open bus: %v", err)
	}
	defer bus.Close()

	driver := charlieplex.NewDriver(bus)
	for {
		if err := driver.LampTest(ctx, *dwell); err != nil {
			if ctx.Err() == nil {
				log.Printf("Lamp test failed: %v", err)
			}
			break
		}
		log.Println("Lamp test pass complete")
		if !*loop {
			break
		}
	}

	log.Println("Shutting down...")
}
