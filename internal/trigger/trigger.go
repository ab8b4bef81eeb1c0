// Package trigger decides, once per tick, whether the current instant is a
// reminder boundary that has not been handled yet.
package trigger

import (
	"fmt"
	"time"
)

// Evaluation is the outcome of one tick.
type Evaluation struct {
	Now              time.Time
	SecondsUntilNext int
	Fire             bool
}

// Trigger remembers the last boundary it fired for. It is not safe for
// concurrent use; callers serialize Evaluate together with the settings it
// reads.
type Trigger struct {
	cursor int64
	armed  bool
}

// New returns a Trigger with no boundary processed yet.
func New() *Trigger {
	return &Trigger{}
}

// Evaluate computes the countdown for now and reports Fire exactly once per
// boundary, no matter how often it is called within that boundary second.
func (t *Trigger) Evaluate(now time.Time, frequency int) Evaluation {
	ev := Evaluation{
		Now:              now,
		SecondsUntilNext: SecondsUntilNext(now, frequency),
	}
	if !IsBoundary(now, frequency) {
		return ev
	}

	minute := now.Unix() / 60
	if t.armed && t.cursor == minute {
		return ev
	}
	t.cursor = minute
	t.armed = true
	ev.Fire = true
	return ev
}

// Cursor returns the absolute minute of the last fired boundary.
func (t *Trigger) Cursor() (int64, bool) {
	return t.cursor, t.armed
}

// IsBoundary reports whether now sits on the first second of an interval minute.
func IsBoundary(now time.Time, frequency int) bool {
	if frequency <= 0 {
		return false
	}
	return now.Minute()%frequency == 0 && now.Second() == 0
}

// SecondsUntilNext counts down to the next interval boundary.
func SecondsUntilNext(now time.Time, frequency int) int {
	if frequency <= 0 {
		return 0
	}
	return (frequency-now.Minute()%frequency)*60 - now.Second()
}

// FormatCountdown renders seconds as m:ss.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
