package rendering

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// ellipseSegments is the polygon resolution used for ShapeEllipse.
const ellipseSegments = 96

// Rasterize paints the document into a new RGBA image the size of the viewport.
// Elements paint in document order, parents before children.
func Rasterize(doc *Document) *image.RGBA {
	size := doc.Size()
	w, h := int(math.Ceil(size.Width)), int(math.Ceil(size.Height))
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	p := &painter{dst: dst, z: vector.NewRasterizer(w, h)}
	p.paint(doc.Root(), IdentityMatrix())
	return dst
}

type painter struct {
	dst *image.RGBA
	z   *vector.Rasterizer
}

func (p *painter) paint(e *Element, parent Matrix) {
	world := parent.Multiply(e.LocalMatrix())
	style := e.Style()
	if style.Fill.Alpha() > 0 {
		switch style.Shape {
		case ShapeRect:
			p.fill(world, rectPolygon(e.Size()), style.Fill)
		case ShapeEllipse:
			p.fill(world, ellipsePolygon(e.Size()), style.Fill)
		}
		if style.Label != "" {
			p.label(world.Apply(Offset{}), style.Label, style.Fill)
		}
	}
	for _, c := range e.children {
		p.paint(c, world)
	}
}

func (p *painter) fill(m Matrix, poly []Offset, c Color) {
	if len(poly) < 3 {
		return
	}
	b := p.dst.Bounds()
	p.z.Reset(b.Dx(), b.Dy())
	p.z.DrawOp = draw.Over
	first := m.Apply(poly[0])
	p.z.MoveTo(float32(first.X), float32(first.Y))
	for _, pt := range poly[1:] {
		q := m.Apply(pt)
		p.z.LineTo(float32(q.X), float32(q.Y))
	}
	p.z.ClosePath()
	p.z.Draw(p.dst, b, image.NewUniform(c.NRGBA()), image.Point{})
}

// label draws text with its top-left corner at pos. Text is not rotated.
func (p *painter) label(pos Offset, text string, c Color) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  p.dst,
		Src:  image.NewUniform(c.NRGBA()),
		Face: face,
		Dot:  fixed.P(int(math.Round(pos.X)), int(math.Round(pos.Y))+face.Ascent),
	}
	d.DrawString(text)
}

func rectPolygon(s Size) []Offset {
	if s.IsEmpty() {
		return nil
	}
	return []Offset{
		{X: 0, Y: 0},
		{X: s.Width, Y: 0},
		{X: s.Width, Y: s.Height},
		{X: 0, Y: s.Height},
	}
}

func ellipsePolygon(s Size) []Offset {
	if s.IsEmpty() {
		return nil
	}
	rx, ry := s.Width/2, s.Height/2
	pts := make([]Offset, ellipseSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		pts[i] = Offset{X: rx + rx*math.Cos(a), Y: ry + ry*math.Sin(a)}
	}
	return pts
}
