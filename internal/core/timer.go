package core

import "time"

// FixedStep paces automatic generation steps at a steady rate while the
// render loop runs at its own frame rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given steps
// per second.
func NewFixedStep(rate int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetRate(rate)
	return fs
}

// SetRate changes the step rate. Non-positive rates fall back to 4/s.
func (f *FixedStep) SetRate(rate int) {
	if rate <= 0 {
		rate = 4
	}
	f.step = time.Second / time.Duration(rate)
}

// Rate returns the current steps per second.
func (f *FixedStep) Rate() int { return int(time.Second / f.step) }

// Reset drops any accumulated time, e.g. when auto-run is switched on.
func (f *FixedStep) Reset() {
	f.accumulator = 0
	f.last = time.Time{}
}

// ShouldStep reports whether a generation is due. At most one step is
// reported per call; a backlog larger than one step is discarded.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator < f.step {
		return false
	}
	f.accumulator -= f.step
	if f.accumulator > f.step {
		f.accumulator = 0
	}
	return true
}
