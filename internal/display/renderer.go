package display

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/joshajohnson/WarGames-SAO/internal/animation"
	"github.com/joshajohnson/WarGames-SAO/internal/timing"
	"github.com/joshajohnson/WarGames-SAO/pkg/charlieplex"
)

// DefaultSettleDelay is how long each LED stays lit before the next one
const DefaultSettleDelay = 500 * time.Microsecond

// ErrorBackoff is how long the main loop waits after a failed render pass
const ErrorBackoff = 100 * time.Millisecond

type overrunner interface {
	Overruns() uint32
}

// Renderer is the main loop: it consumes divided timer ticks, advances the
// animation and multiplexes the lit LEDs onto the bus one at a time.
type Renderer struct {
	driver    *charlieplex.Driver
	ticks     timing.Divider
	scheduler *animation.Scheduler
	delay     time.Duration
	sleep     func(time.Duration)
	logger    *slog.Logger
}

// Option configures a Renderer
type Option func(*Renderer)

// WithSettleDelay sets the per-LED delay
func WithSettleDelay(d time.Duration) Option {
	return func(r *Renderer) { r.delay = d }
}

// WithSleep replaces the busy-wait used between LEDs
func WithSleep(sleep func(time.Duration)) Option {
	return func(r *Renderer) { r.sleep = sleep }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

// NewRenderer creates a new renderer instance
func NewRenderer(driver *charlieplex.Driver, ticks timing.Divider, scheduler *animation.Scheduler, opts ...Option) *Renderer {
	r := &Renderer{
		driver:    driver,
		ticks:     ticks,
		scheduler: scheduler,
		delay:     DefaultSettleDelay,
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Start runs the main loop until ctx is done, then blanks the bus. A failing
// bus is blanked and retried every ErrorBackoff; only the first error of a
// run of failures is logged.
func (r *Renderer) Start(ctx context.Context) error {
	defer func() {
		if err := r.driver.Blank(); err != nil {
			r.logger.Error("blank on exit", slog.Any("err", err))
		}
	}()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.Poll()
		err := r.Render()
		if err == nil {
			if failures > 0 {
				r.logger.Info("render recovered", slog.Int("failures", failures))
				failures = 0
			}
			continue
		}

		if failures == 0 {
			r.logger.Error("render", slog.Any("err", err))
		}
		failures++
		if blankErr := r.driver.Blank(); blankErr != nil && failures == 1 {
			r.logger.Error("blank after render error", slog.Any("err", blankErr))
		}
		r.sleep(ErrorBackoff)
	}
}

// Poll consumes a pending tick, if any, and feeds it to the scheduler
func (r *Renderer) Poll() animation.Event {
	if !r.ticks.TakeTick() {
		return animation.Event{Cursor: r.scheduler.Cursor(), Frame: r.scheduler.Frame()}
	}

	ev := r.scheduler.Tick()
	if ev.FrameAdvanced {
		attrs := []any{
			slog.Int("frame", ev.Frame),
			slog.Int("rate", r.scheduler.Rate()),
		}
		if o, ok := r.ticks.(overrunner); ok {
			attrs = append(attrs, slog.Uint64("overruns", uint64(o.Overruns())))
		}
		r.logger.Debug("frame", attrs...)
	}
	return ev
}

// Render makes one multiplexing pass over the current plan. Every LED is
// held for the settle delay. An empty plan still waits one delay.
func (r *Renderer) Render() error {
	plan := r.scheduler.Plan()
	if len(plan) == 0 {
		r.sleep(r.delay)
		return nil
	}

	for _, step := range plan {
		if err := r.driver.Display(step.Position, step.Colour, step.Enable); err != nil {
			return err
		}
		r.sleep(r.delay)
	}
	return nil
}
