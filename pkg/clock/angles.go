package clock

import "time"

// Angles holds hand rotations in degrees, clockwise from twelve o'clock.
type Angles struct {
	Seconds float64
	Minutes float64
	Hours   float64
}

// AnglesAt converts t to hand angles using t's own location. Sub-second
// precision is dropped; the minute and hour hands carry the fraction of
// the faster unit so they sweep instead of stepping.
func AnglesAt(t time.Time) Angles {
	seconds := float64(t.Second())
	minutes := float64(t.Minute()) + seconds/60
	hours := float64(t.Hour()%12) + minutes/60

	return Angles{
		Seconds: seconds / 60 * 360,
		Minutes: minutes / 60 * 360,
		Hours:   hours / 12 * 360,
	}
}
