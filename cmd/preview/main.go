package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/joshajohnson/WarGames-SAO/internal/animation"
	"github.com/joshajohnson/WarGames-SAO/internal/config"
	"github.com/joshajohnson/WarGames-SAO/internal/preview"
)

func main() {
	table := flag.String("table", config.TableGames, "frame table to draw (sequence or games)")
	out := flag.String("out", "preview", "output directory")
	scale := flag.Int("scale", 4, "pixels per grid unit")
	flag.Parse()

	frames := animation.Games
	if *table == config.TableSequence {
		frames = animation.Sequence
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	for i, frame := range frames {
		img, err := preview.FullFrame(frame).Render(*scale)
		if err != nil {
			log.Fatalf("Failed to render frame %d: %v", i, err)
		}

		path := filepath.Join(*out, fmt.Sprintf("frame_%02d.png", i))
		f, err := os.Create(path)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", path, err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			log.Fatalf("Failed to encode %s: %v", path, err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
	}

	fmt.Printf("Wrote %d frames to %s\n", len(frames), *out)
}
