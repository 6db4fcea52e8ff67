package clock

import (
	"math"

	"github.com/go-drift/analogclock/pkg/errors"
	"github.com/go-drift/analogclock/pkg/rendering"
)

const (
	// TickCount is the number of rim marks, one per hour.
	TickCount = 12
	// TickPadding is the inward distance of the marks from the rim, in pixels.
	TickPadding = 5.0

	tickStepDegrees = 360.0 / TickCount
)

// TickMark describes one rim mark.
type TickMark struct {
	Index        int
	Long         bool
	AngleDegrees float64
	// Outward is the distance from the face center to the mark.
	Outward float64
}

// ClassName returns "tick" or "tick long".
func (m TickMark) ClassName() string {
	if m.Long {
		return "tick long"
	}
	return "tick"
}

// Transform rotates the mark to its angle, then pushes it out to the rim.
func (m TickMark) Transform() rendering.Transform {
	return rendering.Rotate(m.AngleDegrees).TranslateY(-m.Outward)
}

// ComputeTicks lays out the twelve marks for a face of the given size.
// Every third mark (the cardinal positions) is long. A zero or negative
// size collapses every mark onto the center.
func ComputeTicks(size rendering.Size, padding float64) []TickMark {
	radius := math.Max(0, math.Min(size.Width, size.Height)/2)
	outward := math.Max(0, radius-padding)

	marks := make([]TickMark, TickCount)
	for i := range marks {
		marks[i] = TickMark{
			Index:        i,
			Long:         i%3 == 0,
			AngleDegrees: float64(i) * tickStepDegrees,
			Outward:      outward,
		}
	}
	return marks
}

// ElementFactory creates detached elements.
type ElementFactory interface {
	CreateElement(classes ...string) *rendering.Element
}

// TickState tracks whether the rim marks exist yet.
type TickState int

const (
	// TicksNotGenerated is the initial state.
	TicksNotGenerated TickState = iota
	// TicksGenerated is terminal: marks are never generated twice.
	TicksGenerated
)

func (s TickState) String() string {
	if s == TicksGenerated {
		return "generated"
	}
	return "not_generated"
}

// TickStyle sizes and paints the mark elements.
type TickStyle struct {
	Short rendering.Size
	Long  rendering.Size
	Fill  rendering.Color
}

// DefaultTickStyle returns thin dark marks, long ones twice the length.
func DefaultTickStyle() TickStyle {
	return TickStyle{
		Short: rendering.Size{Width: 2, Height: 8},
		Long:  rendering.Size{Width: 4, Height: 16},
		Fill:  rendering.RGB(0x33, 0x33, 0x33),
	}
}

// TickGenerator appends the rim marks to a face exactly once.
type TickGenerator struct {
	Padding float64
	Style   TickStyle

	state TickState
}

// NewTickGenerator returns a generator with the default padding and style.
func NewTickGenerator(style TickStyle) *TickGenerator {
	return &TickGenerator{Padding: TickPadding, Style: style}
}

// State returns the generation state.
func (g *TickGenerator) State() TickState {
	return g.state
}

// Generate measures face and appends twelve marks to it. It returns the
// marks it created, or nil when the marks already exist or face is nil.
// A nil face leaves the generator ready for a later call.
func (g *TickGenerator) Generate(face *rendering.Element, factory ElementFactory) []TickMark {
	if face == nil || factory == nil || g.state == TicksGenerated {
		return nil
	}

	size := face.BoundingRect().Size()
	if size.IsEmpty() {
		errors.Report(&errors.ClockError{
			Op:   "clock.GenerateTicks",
			Kind: errors.KindDegenerateLayout,
			Err:  &errors.DegenerateLayoutError{Width: size.Width, Height: size.Height},
		})
	}

	marks := ComputeTicks(size, g.Padding)
	center := rendering.Offset{X: math.Max(0, size.Width) / 2, Y: math.Max(0, size.Height) / 2}
	for _, m := range marks {
		tick := factory.CreateElement(m.ClassName())
		ts := g.Style.Short
		if m.Long {
			ts = g.Style.Long
		}
		tick.SetBounds(rendering.RectFromLTWH(center.X-ts.Width/2, center.Y-ts.Height/2, ts.Width, ts.Height))
		tick.SetStyle(rendering.Style{Shape: rendering.ShapeRect, Fill: g.Style.Fill})
		tick.SetTransform(m.Transform())
		face.AppendChild(tick)
	}

	g.state = TicksGenerated
	return marks
}
