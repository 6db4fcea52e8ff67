// Package face builds the stock clock face document.
//
// The document carries the class names the clock binds to:
//
//	.clock
//	  .outer-clock-face     rim; receives the tick marks
//	    .clock-face         dial
//	  .hands
//	    .hand.hour-hand
//	    .hand.min-hand
//	    .hand.second-hand
//	    .center-cap
//	    .label
//
// Hands are laid out pointing at twelve o'clock with their transform origin
// on the face center, so a plain rotation moves them around the dial.
package face

import (
	"math"

	"github.com/go-drift/analogclock/pkg/clock"
	"github.com/go-drift/analogclock/pkg/rendering"
	"github.com/go-drift/analogclock/pkg/theme"
)

const (
	margin      = 10.0
	rimFraction = 0.04
	capFraction = 0.05
)

type handSpec struct {
	class  string
	width  float64
	length float64 // fraction of the radius
}

var hands = []handSpec{
	{class: "hand hour-hand", width: 6, length: 0.5},
	{class: "hand min-hand", width: 4, length: 0.72},
	{class: "hand second-hand", width: 2, length: 0.85},
}

// Build creates a document of the given size with a centered clock face.
func Build(size rendering.Size, th *theme.ThemeData) *rendering.Document {
	if th == nil {
		th = theme.DefaultLightTheme()
	}
	colors := th.ColorScheme

	doc := rendering.NewDocument(size)
	doc.Root().SetStyle(rendering.Style{Shape: rendering.ShapeRect, Fill: colors.Background})

	diameter := math.Max(0, size.ShortestSide()-2*margin)
	r := diameter / 2
	box := rendering.RectFromLTWH((size.Width-diameter)/2, (size.Height-diameter)/2, diameter, diameter)
	local := rendering.RectFromLTWH(0, 0, diameter, diameter)

	container := doc.CreateElement("clock")
	container.SetBounds(box)
	doc.Root().AppendChild(container)

	outer := doc.CreateElement("outer-clock-face")
	outer.SetBounds(local)
	outer.SetStyle(rendering.Style{Shape: rendering.ShapeEllipse, Fill: colors.Rim})
	container.AppendChild(outer)

	rim := diameter * rimFraction
	dial := doc.CreateElement("clock-face")
	dial.SetBounds(rendering.RectFromLTWH(rim, rim, diameter-2*rim, diameter-2*rim))
	dial.SetStyle(rendering.Style{Shape: rendering.ShapeEllipse, Fill: colors.Face})
	outer.AppendChild(dial)

	layer := doc.CreateElement("hands")
	layer.SetBounds(local)
	container.AppendChild(layer)

	handColors := []rendering.Color{colors.HourHand, colors.MinuteHand, colors.SecondHand}
	for i, spec := range hands {
		length := r * spec.length
		hand := doc.CreateElement(spec.class)
		hand.SetBounds(rendering.RectFromLTWH(r-spec.width/2, r-length, spec.width, length))
		hand.SetOrigin(0.5, 1)
		hand.SetStyle(rendering.Style{Shape: rendering.ShapeRect, Fill: handColors[i]})
		layer.AppendChild(hand)
	}

	capSize := diameter * capFraction
	centerCap := doc.CreateElement("center-cap")
	centerCap.SetBounds(rendering.RectFromLTWH(r-capSize/2, r-capSize/2, capSize, capSize))
	centerCap.SetStyle(rendering.Style{Shape: rendering.ShapeEllipse, Fill: colors.SecondHand})
	layer.AppendChild(centerCap)

	if th.Label != "" {
		label := doc.CreateElement("label")
		width := float64(len(th.Label) * 7)
		label.SetBounds(rendering.RectFromLTWH(r-width/2, r-r/2, width, 13))
		label.SetStyle(rendering.Style{Fill: colors.Label, Label: th.Label})
		layer.AppendChild(label)
	}

	return doc
}

// TickStyle scales the rim marks to a face of the given document size.
func TickStyle(size rendering.Size, th *theme.ThemeData) clock.TickStyle {
	if th == nil {
		th = theme.DefaultLightTheme()
	}
	diameter := math.Max(0, size.ShortestSide()-2*margin)
	short := math.Max(4, diameter*0.04)
	return clock.TickStyle{
		Short: rendering.Size{Width: 2, Height: short},
		Long:  rendering.Size{Width: 4, Height: short * 2},
		Fill:  th.ColorScheme.Tick,
	}
}
