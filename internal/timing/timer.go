package timing

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// timer0 is an 8-bit counter clocked at a quarter of the oscillator
const (
	timerCounts          = 256
	clocksPerInstruction = 4
)

// OverflowRate returns the Timer0 overflow frequency in Hz
func OverflowRate(oscillatorHz, prescaler int) float64 {
	if oscillatorHz <= 0 || prescaler <= 0 {
		return 0
	}
	return float64(oscillatorHz) / clocksPerInstruction / float64(prescaler) / timerCounts
}

// OverflowPeriod returns the time between two Timer0 overflows
func OverflowPeriod(oscillatorHz, prescaler int) time.Duration {
	rate := OverflowRate(oscillatorHz, prescaler)
	if rate == 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / rate)
}

// Timer calls a divider once per period, standing in for the overflow
// interrupt
type Timer struct {
	period time.Duration
	logger *slog.Logger
}

// NewTimer creates a timer with the given overflow period. A nil logger
// disables logging.
func NewTimer(period time.Duration, logger *slog.Logger) *Timer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Timer{period: period, logger: logger}
}

// Period returns the overflow period
func (t *Timer) Period() time.Duration {
	return t.period
}

// Run calls d.Overflow every period until ctx is done
func (t *Timer) Run(ctx context.Context, d Divider) error {
	ticker := time.NewTicker(t.period)
	defer ticker.Stop()

	t.logger.Info("timer:start", slog.Duration("period", t.period))
	for {
		select {
		case <-ctx.Done():
			t.logger.Info("timer:stop", slog.String("reason", ctx.Err().Error()))
			return ctx.Err()
		case <-ticker.C:
			d.Overflow()
		}
	}
}
