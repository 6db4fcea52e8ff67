package animation

import "time"

// Clock provides wall-clock time to the animation loop. Tests inject a fake
// clock to control time deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the operating system clock.
type SystemClock struct {
	// Location converts readings to a time zone. Nil means time.Local.
	Location *time.Location
}

// Now returns the current time in the configured location.
func (c SystemClock) Now() time.Time {
	now := time.Now()
	if c.Location != nil {
		return now.In(c.Location)
	}
	return now
}

// FixedClock always reports the same instant. Single-frame renders use it to
// draw a chosen time.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
