package core

import "time"

// MaxRate is the fastest supported step rate in generations per second.
const MaxRate = 1000

// FixedStep paces automaton steps at a steady generations-per-second rate
// independent of the frame rate of whatever front end drives it.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep targeting gps generations per second.
// The first call to ShouldStep fires immediately.
func NewFixedStep(gps int) *FixedStep {
	return newFixedStep(gps, time.Now)
}

func newFixedStep(gps int, now func() time.Time) *FixedStep {
	fs := &FixedStep{now: now}
	fs.SetRate(gps)
	fs.accumulator = fs.step
	return fs
}

// SetRate changes the step rate. Non-positive rates fall back to 10 and
// rates above MaxRate are clamped.
func (f *FixedStep) SetRate(gps int) {
	if gps <= 0 {
		gps = 10
	}
	gps = min(gps, MaxRate)
	f.step = time.Second / time.Duration(gps)
}

// Rate returns the current generations per second.
func (f *FixedStep) Rate() int { return int(time.Second / f.step) }

// Sync forgets elapsed time, e.g. after the automaton was paused.
func (f *FixedStep) Sync() {
	f.last = f.now()
	f.accumulator = 0
}

// ShouldStep reports whether one generation is due. At most one step is
// reported per call; a backlog larger than one step is dropped.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		if f.accumulator > f.step {
			f.accumulator = f.step
		}
		return true
	}
	return false
}
