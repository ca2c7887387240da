// Package animation walks a frame table, revealing one more position of the
// current frame each update and stepping through the frames once a frame has
// been fully shown.
package animation

import (
	"fmt"

	"github.com/joshajohnson/WarGames-SAO/internal/types"
)

// Cursor values with special meaning
const (
	// CursorEmpty shows nothing
	CursorEmpty = -1
	// CursorBlank is the blank beat after a frame has been fully shown
	CursorBlank = types.NumPositions
)

// Mode selects how the frame index moves
type Mode int

const (
	// Cycle wraps from the last frame to the first
	Cycle Mode = iota
	// PingPong reverses direction at the first and last frames
	PingPong
)

// Options configure a Scheduler
type Options struct {
	Mode          Mode
	UpdateRate    int // ticks per cursor step on frame 0
	RampStep      int // ticks removed per frame index
	MinUpdateRate int
}

// Step is a single LED to display in a render pass
type Step struct {
	Position types.Position
	Colour   types.Colour
	Enable   bool
}

// Event reports what a tick changed
type Event struct {
	Advanced      bool
	FrameAdvanced bool
	Cursor        int
	Frame         int
}

// Scheduler owns the animation cursor. It is not safe for concurrent use;
// only the main loop touches it.
type Scheduler struct {
	table Table
	opts  Options

	acc    int
	cursor int
	frame  int
	dir    int
}

// NewScheduler creates a scheduler starting empty on the first frame
func NewScheduler(table Table, opts Options) (*Scheduler, error) {
	if err := Validate(table); err != nil {
		return nil, err
	}
	if opts.UpdateRate < 1 {
		return nil, fmt.Errorf("update rate must be positive, got %d", opts.UpdateRate)
	}
	if opts.MinUpdateRate < 1 {
		opts.MinUpdateRate = 1
	}
	if opts.RampStep < 0 {
		return nil, fmt.Errorf("ramp step must not be negative, got %d", opts.RampStep)
	}

	return &Scheduler{
		table:  table,
		opts:   opts,
		cursor: CursorEmpty,
		dir:    1,
	}, nil
}

// Cursor returns the number of revealed positions minus one
func (s *Scheduler) Cursor() int { return s.cursor }

// Frame returns the current frame index
func (s *Scheduler) Frame() int { return s.frame }

// Frames returns the number of frames in the table
func (s *Scheduler) Frames() int { return len(s.table) }

// Rate returns the number of ticks per cursor step on the current frame.
// Later frames step faster.
func (s *Scheduler) Rate() int {
	rate := s.opts.UpdateRate - s.opts.RampStep*s.frame
	if rate < s.opts.MinUpdateRate {
		rate = s.opts.MinUpdateRate
	}
	return rate
}

// Tick feeds one divided timer tick to the scheduler
func (s *Scheduler) Tick() Event {
	s.acc++
	if s.acc < s.Rate() {
		return Event{Cursor: s.cursor, Frame: s.frame}
	}
	s.acc = 0
	return s.Advance()
}

// Advance moves the cursor one step without waiting for the accumulator
func (s *Scheduler) Advance() Event {
	ev := Event{Advanced: true}
	if s.cursor >= CursorBlank {
		s.cursor = 0
		s.nextFrame()
		ev.FrameAdvanced = true
	} else {
		s.cursor++
	}
	ev.Cursor = s.cursor
	ev.Frame = s.frame
	return ev
}

func (s *Scheduler) nextFrame() {
	n := len(s.table)
	if n == 1 {
		return
	}

	if s.opts.Mode == Cycle {
		s.frame = (s.frame + 1) % n
		return
	}

	next := s.frame + s.dir
	if next < 0 || next >= n {
		s.dir = -s.dir
		next = s.frame + s.dir
	}
	s.frame = next
}

// Plan returns the LEDs to display for the current cursor, in order. Colours
// alternate starting with red. The blank beat addresses every slot with the
// output disabled.
func (s *Scheduler) Plan() []Step {
	if s.cursor < 0 {
		return nil
	}

	frame := s.table[s.frame]
	steps := make([]Step, 0, s.cursor+1)
	for i := 0; i <= s.cursor; i++ {
		if s.cursor == CursorBlank {
			steps = append(steps, Step{})
			continue
		}
		steps = append(steps, Step{
			Position: frame[i],
			Colour:   types.Colour(i % 2),
			Enable:   true,
		})
	}
	return steps
}
