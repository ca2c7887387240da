// Package timing turns the periodic timer overflow into the slower ticks the
// main loop consumes.
//
// Overflow runs in interrupt context (the timer goroutine) and TakeTick runs
// in the main loop. Each shared word has exactly one writer and is accessed
// with single atomic operations only.
package timing

import "sync/atomic"

// Divider divides timer overflows into ticks
type Divider interface {
	// Overflow is called once per timer overflow
	Overflow()
	// TakeTick reports whether a tick is pending and clears it
	TakeTick() bool
}

// HalvingDivider raises a tick every ratio overflows. With the default ratio
// of 2 a ~120 Hz overflow becomes a ~60 Hz tick.
type HalvingDivider struct {
	ratio uint8
	acc   uint8 // interrupt only

	tick     atomic.Bool
	overruns atomic.Uint32
}

// NewHalvingDivider returns a divider by two
func NewHalvingDivider() *HalvingDivider {
	return NewDivider(2)
}

// NewDivider returns a divider raising a tick every ratio overflows.
// A ratio of zero is treated as one.
func NewDivider(ratio uint8) *HalvingDivider {
	if ratio == 0 {
		ratio = 1
	}
	return &HalvingDivider{ratio: ratio}
}

// Overflow advances the accumulator
func (d *HalvingDivider) Overflow() {
	if d.acc >= d.ratio-1 {
		d.acc = 0
		if d.tick.Swap(true) {
			d.overruns.Add(1)
		}
		return
	}
	d.acc++
}

// TakeTick reports whether a tick is pending and clears it
func (d *HalvingDivider) TakeTick() bool {
	return d.tick.Swap(false)
}

// Overruns returns how many ticks were raised while the previous one was
// still pending. A non-zero value means the main loop is too slow.
func (d *HalvingDivider) Overruns() uint32 {
	return d.overruns.Load()
}

// PeriodDivider increments a visible number every period overflows. The
// period can be changed at any time but only takes effect when the count is
// back at zero, so a change never tears the current period.
type PeriodDivider struct {
	count  uint8 // interrupt only
	period uint8 // interrupt only

	newPeriod atomic.Uint32
	number    atomic.Uint32
	seen      uint32 // main loop only
}

// NewPeriodDivider returns a divider with the given period, at least 1
func NewPeriodDivider(period uint8) *PeriodDivider {
	if period == 0 {
		period = 1
	}
	d := &PeriodDivider{period: period}
	d.newPeriod.Store(uint32(period))
	return d
}

// Overflow advances the count
func (d *PeriodDivider) Overflow() {
	if d.count >= d.period {
		d.count = 0
		d.number.Add(1)
	}
	if d.count == 0 {
		d.period = uint8(d.newPeriod.Load())
	}
	d.count++
}

// SetPeriod requests a new period, applied at the next count of zero
func (d *PeriodDivider) SetPeriod(period uint8) {
	if period == 0 {
		period = 1
	}
	d.newPeriod.Store(uint32(period))
}

// Number returns the visible counter
func (d *PeriodDivider) Number() uint32 {
	return d.number.Load()
}

// TakeTick reports whether Number has changed since the previous call
func (d *PeriodDivider) TakeTick() bool {
	n := d.number.Load()
	if n == d.seen {
		return false
	}
	d.seen = n
	return true
}
