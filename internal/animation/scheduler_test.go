package animation

import (
	"errors"
	"testing"

	"github.com/joshajohnson/WarGames-SAO/internal/types"
)

func newScheduler(t *testing.T, table Table, opts Options) *Scheduler {
	t.Helper()
	s, err := NewScheduler(table, opts)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	return s
}

func TestTablesAreValid(t *testing.T) {
	for name, table := range map[string]Table{"sequence": Sequence, "games": Games} {
		if err := Validate(table); err != nil {
			t.Errorf("Validate(%s) error = %v", name, err)
		}
	}
	if len(Games) != 15 {
		t.Errorf("len(Games) = %d, want 15", len(Games))
	}
}

func TestGamesAreDraws(t *testing.T) {
	lines := [][3]types.Position{
		{1, 2, 3}, {4, 5, 6}, {7, 8, 9},
		{1, 4, 7}, {2, 5, 8}, {3, 6, 9},
		{1, 5, 9}, {3, 5, 7},
	}
	for i, game := range Games {
		var owner [types.NumPositions + 1]int
		for move, pos := range game {
			owner[pos] = move%2 + 1
		}
		for _, l := range lines {
			if owner[l[0]] == owner[l[1]] && owner[l[1]] == owner[l[2]] {
				t.Errorf("game %d has a winning line %v", i, l)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		table Table
	}{
		{"empty", Table{}},
		{"zero position", Table{{0, 2, 3, 4, 5, 6, 7, 8, 9}}},
		{"off grid", Table{{1, 2, 3, 4, 5, 6, 7, 8, 10}}},
		{"repeat", Table{{1, 1, 3, 4, 5, 6, 7, 8, 9}}},
		{"bad second frame", Table{Sequence[0], {9, 9, 9, 9, 9, 9, 9, 9, 9}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.table); !errors.Is(err, ErrInvalidTable) {
				t.Errorf("Validate() error = %v, want ErrInvalidTable", err)
			}
		})
	}
}

func TestNewSchedulerErrors(t *testing.T) {
	if _, err := NewScheduler(Sequence, Options{UpdateRate: 0}); err == nil {
		t.Error("NewScheduler() with zero rate did not return error")
	}
	if _, err := NewScheduler(Sequence, Options{UpdateRate: 60, RampStep: -1}); err == nil {
		t.Error("NewScheduler() with negative ramp did not return error")
	}
	if _, err := NewScheduler(Table{}, Options{UpdateRate: 60}); !errors.Is(err, ErrInvalidTable) {
		t.Errorf("NewScheduler() with empty table error = %v, want ErrInvalidTable", err)
	}
}

func TestEndToEndReveal(t *testing.T) {
	s := newScheduler(t, Games, Options{Mode: PingPong, UpdateRate: 60, RampStep: 3})
	if s.Cursor() != CursorEmpty || len(s.Plan()) != 0 {
		t.Fatalf("new scheduler cursor = %d, plan = %v, want empty", s.Cursor(), s.Plan())
	}

	for i := 0; i < 59; i++ {
		if ev := s.Tick(); ev.Advanced {
			t.Fatalf("tick %d advanced the cursor early", i+1)
		}
	}
	ev := s.Tick()
	if !ev.Advanced || ev.Cursor != 0 {
		t.Fatalf("60th tick = %+v, want cursor 0", ev)
	}
	plan := s.Plan()
	want := []Step{{Position: Games[0][0], Colour: types.Red, Enable: true}}
	if len(plan) != 1 || plan[0] != want[0] {
		t.Fatalf("Plan() = %+v, want %+v", plan, want)
	}

	for i := 0; i < 60; i++ {
		s.Tick()
	}
	if s.Cursor() != 1 {
		t.Fatalf("cursor after 120 ticks = %d, want 1", s.Cursor())
	}
	plan = s.Plan()
	want = []Step{
		{Position: Games[0][0], Colour: types.Red, Enable: true},
		{Position: Games[0][1], Colour: types.Green, Enable: true},
	}
	if len(plan) != 2 || plan[0] != want[0] || plan[1] != want[1] {
		t.Errorf("Plan() = %+v, want %+v", plan, want)
	}
}

func TestPlanAlternatesColours(t *testing.T) {
	s := newScheduler(t, Sequence, Options{UpdateRate: 1})
	for k := 0; k < CursorBlank; k++ {
		s.Advance()
		plan := s.Plan()
		if len(plan) != k+1 {
			t.Fatalf("cursor %d: Plan() has %d steps, want %d", k, len(plan), k+1)
		}
		for i, step := range plan {
			if step.Colour != types.Colour(i%2) || !step.Enable || step.Position != Sequence[0][i] {
				t.Errorf("cursor %d step %d = %+v", k, i, step)
			}
		}
	}
}

func TestBlankBeat(t *testing.T) {
	s := newScheduler(t, Sequence, Options{UpdateRate: 1})
	for i := 0; i <= CursorBlank; i++ {
		s.Advance()
	}
	if s.Cursor() != CursorBlank {
		t.Fatalf("cursor = %d, want %d", s.Cursor(), CursorBlank)
	}

	plan := s.Plan()
	if len(plan) != CursorBlank+1 {
		t.Fatalf("blank Plan() has %d steps, want %d", len(plan), CursorBlank+1)
	}
	for i, step := range plan {
		if step.Enable {
			t.Errorf("blank step %d is enabled", i)
		}
	}

	ev := s.Advance()
	if !ev.FrameAdvanced || ev.Cursor != 0 || ev.Frame != 0 {
		t.Errorf("Advance() after blank = %+v, want frame advance to cursor 0 on the only frame", ev)
	}
}

func TestCursorMonotonicWithinFrame(t *testing.T) {
	s := newScheduler(t, Games, Options{UpdateRate: 1})
	prev := s.Cursor()
	for i := 0; i < 200; i++ {
		ev := s.Advance()
		if ev.FrameAdvanced {
			if ev.Cursor != 0 || prev != CursorBlank {
				t.Fatalf("frame advanced from cursor %d to %d", prev, ev.Cursor)
			}
		} else if ev.Cursor != prev+1 {
			t.Fatalf("cursor went from %d to %d", prev, ev.Cursor)
		}
		if ev.Cursor < 0 || ev.Cursor > CursorBlank {
			t.Fatalf("cursor %d out of range", ev.Cursor)
		}
		prev = ev.Cursor
	}
}

// frameOrder advances through n frame changes and returns the frames visited
func frameOrder(s *Scheduler, n int) []int {
	frames := []int{s.Frame()}
	for len(frames) <= n {
		if ev := s.Advance(); ev.FrameAdvanced {
			frames = append(frames, ev.Frame)
		}
	}
	return frames
}

func TestPingPong(t *testing.T) {
	table := Table{Sequence[0], Games[0], Games[1], Games[2]}
	s := newScheduler(t, table, Options{Mode: PingPong, UpdateRate: 1})

	got := frameOrder(s, 9)
	want := []int{0, 1, 2, 3, 2, 1, 0, 1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame order = %v, want %v", got, want)
		}
	}
}

func TestPingPongStaysInBounds(t *testing.T) {
	s := newScheduler(t, Games, Options{Mode: PingPong, UpdateRate: 1})
	frames := frameOrder(s, 100)

	for i := 1; i < len(frames); i++ {
		f := frames[i]
		if f < 0 || f >= len(Games) {
			t.Fatalf("frame %d out of bounds", f)
		}
		if d := f - frames[i-1]; d != 1 && d != -1 {
			t.Fatalf("frame jumped from %d to %d", frames[i-1], f)
		}
		// reversal happens exactly at the ends
		if i >= 2 && frames[i-2] == f {
			if end := frames[i-1]; end != 0 && end != len(Games)-1 {
				t.Fatalf("reversed at frame %d", end)
			}
		}
	}
}

func TestCycle(t *testing.T) {
	table := Table{Sequence[0], Games[0], Games[1]}
	s := newScheduler(t, table, Options{Mode: Cycle, UpdateRate: 1})

	got := frameOrder(s, 6)
	want := []int{0, 1, 2, 0, 1, 2, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame order = %v, want %v", got, want)
		}
	}
}

func TestRamp(t *testing.T) {
	s := newScheduler(t, Games, Options{Mode: PingPong, UpdateRate: 60, RampStep: 3, MinUpdateRate: 20})

	want := map[int]int{0: 60, 1: 57, 10: 30, 13: 21, 14: 20}
	for s.Frame() < len(Games)-1 {
		if r, ok := want[s.Frame()]; ok && s.Rate() != r {
			t.Errorf("frame %d rate = %d, want %d", s.Frame(), s.Rate(), r)
		}
		s.Advance()
	}
	if s.Rate() != 20 {
		t.Errorf("last frame rate = %d, want clamp at 20", s.Rate())
	}
}

func TestTickUsesRampedRate(t *testing.T) {
	s := newScheduler(t, Games, Options{Mode: PingPong, UpdateRate: 10, RampStep: 4})
	// move to frame 1, cursor 0
	for s.Frame() == 0 {
		s.Advance()
	}
	if s.Rate() != 6 {
		t.Fatalf("frame 1 rate = %d, want 6", s.Rate())
	}

	ticks := 0
	for !s.Tick().Advanced {
		ticks++
	}
	if ticks+1 != 6 {
		t.Errorf("advanced after %d ticks, want 6", ticks+1)
	}
}
