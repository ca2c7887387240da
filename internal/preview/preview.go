// Package preview draws the badge grid as an image, for checking frame
// tables away from the hardware.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"strings"

	"github.com/joshajohnson/WarGames-SAO/internal/animation"
	"github.com/joshajohnson/WarGames-SAO/internal/types"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Grid layout in SVG user units
const (
	cell   = 40
	radius = 14
	margin = 10
	size   = 3*cell + 2*margin
)

// Fill colours
const (
	background = "#101010"
	unlit      = "#303030"
	redFill    = "#ff2020"
	greenFill  = "#20ff20"
)

// LED is the state of one position in a snapshot
type LED int

const (
	Off LED = iota
	Red
	Green
)

// Snapshot is what the eye sees for a cursor value: every revealed position
// in its colour. Index 0 is position 1.
type Snapshot [types.NumPositions]LED

// SnapshotOf returns the persistence-of-vision image of a plan
func SnapshotOf(plan []animation.Step) Snapshot {
	var s Snapshot
	for _, step := range plan {
		if !step.Enable || !step.Position.Valid() {
			continue
		}
		if step.Colour == types.Green {
			s[step.Position-1] = Green
		} else {
			s[step.Position-1] = Red
		}
	}
	return s
}

// FullFrame returns the snapshot of a completely revealed frame
func FullFrame(frame animation.Frame) Snapshot {
	plan := make([]animation.Step, 0, len(frame))
	for i, pos := range frame {
		plan = append(plan, animation.Step{Position: pos, Colour: types.Colour(i % 2), Enable: true})
	}
	return SnapshotOf(plan)
}

// SVG returns the snapshot as an SVG document
func (s Snapshot) SVG() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, size, size, size, size)
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`, size, size, background)
	for i, led := range s {
		pos := types.Position(i + 1)
		cx, cy := center(pos)
		fill := unlit
		switch led {
		case Red:
			fill = redFill
		case Green:
			fill = greenFill
		}
		fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%d" fill="%s"/>`, cx, cy, radius, fill)
	}
	b.WriteString(`</svg>`)
	return b.String()
}

// Render rasterises the snapshot at scale pixels per SVG unit
func (s Snapshot) Render(scale int) (*image.RGBA, error) {
	if scale < 1 {
		scale = 1
	}

	icon, err := oksvg.ReadIconStream(bytes.NewBufferString(s.SVG()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}

	w, h := size*scale, size*scale
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

// Center returns the pixel centre of pos in an image rendered at scale
func Center(pos types.Position, scale int) image.Point {
	cx, cy := center(pos)
	return image.Pt(cx*scale, cy*scale)
}

func center(pos types.Position) (int, int) {
	return margin + pos.Col()*cell + cell/2, margin + pos.Row()*cell + cell/2
}
