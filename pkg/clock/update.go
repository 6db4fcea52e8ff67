package clock

import "github.com/go-drift/analogclock/pkg/rendering"

// Apply rotates each bound hand to its angle. Nil handles are skipped.
func Apply(h ElementHandles, a Angles) {
	rotate(h.Second, a.Seconds)
	rotate(h.Minute, a.Minutes)
	rotate(h.Hour, a.Hours)
}

func rotate(e *rendering.Element, degrees float64) {
	if e == nil {
		return
	}
	e.SetTransform(rendering.Rotate(degrees))
}
