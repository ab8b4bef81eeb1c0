package clock

import "time"

// Offset is Philippine Standard Time's fixed distance from UTC.
const Offset = 8 * time.Hour

// PHT is a fixed UTC+8 zone. It does not depend on the host timezone database.
var PHT = time.FixedZone("PHT", int(Offset/time.Second))

// LabelLayout renders hour and minute only, e.g. "8:30 AM".
const LabelLayout = "3:04 PM"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// System reads the host clock and shifts it into PHT.
type System struct{}

// Now returns the host UTC instant expressed in PHT.
func (System) Now() time.Time {
	return In(time.Now())
}

// Func adapts a plain function to Clock.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time {
	return In(f())
}

// In expresses t in PHT regardless of the location it carries.
func In(t time.Time) time.Time {
	return t.UTC().In(PHT)
}

// Label formats t as a PHT wall-clock label.
func Label(t time.Time) string {
	return In(t).Format(LabelLayout)
}

// Date builds a PHT instant from wall-clock fields. Handy in tests and tools.
func Date(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, PHT)
}
