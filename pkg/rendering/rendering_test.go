package rendering

import (
	"bytes"
	"strings"
	"testing"
)

func TestTransformString(t *testing.T) {
	tests := []struct {
		name string
		tf   Transform
		want string
	}{
		{"identity", Transform{}, "none"},
		{"rotate", Rotate(30), "rotate(30deg)"},
		{"rotate then translateY", Rotate(90).TranslateY(-95), "rotate(90deg) translateY(-95px)"},
		{"translate xy", Translate(3, 4), "translate(3px, 4px)"},
		{"fractional", Rotate(0.5), "rotate(0.5deg)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tf.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransformIsImmutable(t *testing.T) {
	base := Rotate(30)
	a := base.TranslateY(-10)
	b := base.TranslateY(-20)
	if len(base.Ops()) != 1 {
		t.Fatalf("base transform mutated: %v", base)
	}
	if a.String() == b.String() {
		t.Errorf("derived transforms share state: %v and %v", a, b)
	}
}

func TestTransformMatrixRotateThenTranslate(t *testing.T) {
	// translateY(-10) moves the point up; rotate(90) then swings it to the right.
	m := Rotate(90).TranslateY(-10).Matrix()
	got := m.Apply(Offset{})
	want := Offset{X: 10, Y: 0}
	if !got.ApproxEqual(want) {
		t.Errorf("Apply = %+v, want %+v", got, want)
	}
}

func TestRotationMatrixIsClockwise(t *testing.T) {
	up := Offset{X: 0, Y: -1}
	tests := []struct {
		deg  float64
		want Offset
	}{
		{0, Offset{X: 0, Y: -1}},
		{90, Offset{X: 1, Y: 0}},
		{180, Offset{X: 0, Y: 1}},
		{270, Offset{X: -1, Y: 0}},
	}
	for _, tt := range tests {
		if got := RotationMatrix(tt.deg).Apply(up); !got.ApproxEqual(tt.want) {
			t.Errorf("rotate(%v) of up = %+v, want %+v", tt.deg, got, tt.want)
		}
	}
}

func TestTransformRotation(t *testing.T) {
	if got := Rotate(30).TranslateY(-5).Rotate(15).Rotation(); got != 45 {
		t.Errorf("Rotation() = %v, want 45", got)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#fff", ColorWhite, false},
		{"#000000", ColorBlack, false},
		{"ff0000", ColorRed, false},
		{"#80ff0000", RGBA(0xff, 0, 0, 0x80), false},
		{"#12", 0, true},
		{"#zzzzzz", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %#x, want %#x", tt.in, uint32(got), uint32(tt.want))
		}
	}
}

func newTestDocument() *Document {
	doc := NewDocument(Size{Width: 200, Height: 200})
	face := doc.CreateElement("clock")
	face.SetBounds(RectFromLTWH(0, 0, 200, 200))
	hands := doc.CreateElement("hand-container")
	hour := doc.CreateElement("hand hour-hand")
	minute := doc.CreateElement("hand min-hand")
	hands.AppendChild(hour)
	hands.AppendChild(minute)
	face.AppendChild(hands)
	doc.Root().AppendChild(face)
	return doc
}

func TestQuerySelector(t *testing.T) {
	doc := newTestDocument()
	tests := []struct {
		selector  string
		wantClass string
	}{
		{".hour-hand", "hand hour-hand"},
		{".hand", "hand hour-hand"},
		{".hand.min-hand", "hand min-hand"},
		{".clock .min-hand", "hand min-hand"},
		{".outer-clock-face, .clock", "clock"},
		{".missing", ""},
		{".min-hand .clock", ""},
		{"div", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			got := doc.QuerySelector(tt.selector)
			if tt.wantClass == "" {
				if got != nil {
					t.Errorf("QuerySelector(%q) = %q, want nil", tt.selector, got.ClassName())
				}
				return
			}
			if got == nil {
				t.Fatalf("QuerySelector(%q) = nil, want %q", tt.selector, tt.wantClass)
			}
			if got.ClassName() != tt.wantClass {
				t.Errorf("QuerySelector(%q) = %q, want %q", tt.selector, got.ClassName(), tt.wantClass)
			}
		})
	}
}

func TestQuerySelectorAll(t *testing.T) {
	doc := newTestDocument()
	if got := len(doc.QuerySelectorAll(".hand")); got != 2 {
		t.Errorf("QuerySelectorAll(.hand) = %d elements, want 2", got)
	}
	if got := doc.QuerySelectorAll("..bad"); got != nil {
		t.Errorf("invalid selector should match nothing, got %d", len(got))
	}
}

func TestAppendChildReparents(t *testing.T) {
	a := NewElement("a")
	b := NewElement("b")
	child := NewElement("child")
	a.AppendChild(child)
	b.AppendChild(child)
	if len(a.Children()) != 0 {
		t.Errorf("old parent still has %d children", len(a.Children()))
	}
	if child.Parent() != b {
		t.Error("child should belong to the new parent")
	}
	a.AppendChild(nil)
	a.AppendChild(a)
	if len(a.Children()) != 0 {
		t.Error("nil and self should be ignored")
	}
}

func TestBoundingRectAccumulatesOffsets(t *testing.T) {
	parent := NewElement("parent")
	parent.SetBounds(RectFromLTWH(10, 20, 100, 100))
	child := NewElement("child")
	child.SetBounds(RectFromLTWH(5, 5, 30, 40))
	parent.AppendChild(child)
	want := RectFromLTWH(15, 25, 30, 40)
	if got := child.BoundingRect(); got != want {
		t.Errorf("BoundingRect() = %+v, want %+v", got, want)
	}
}

func TestRasterizeRotatedRect(t *testing.T) {
	doc := NewDocument(Size{Width: 100, Height: 100})
	bar := doc.CreateElement("bar")
	bar.SetBounds(RectFromLTWH(30, 45, 40, 10))
	bar.SetStyle(Style{Shape: ShapeRect, Fill: ColorRed})
	bar.SetTransform(Rotate(90))
	doc.Root().AppendChild(bar)

	img := Rasterize(doc)
	if got := img.Bounds().Dx(); got != 100 {
		t.Fatalf("image width = %d, want 100", got)
	}
	if _, _, _, a := img.At(50, 35).RGBA(); a == 0 {
		t.Error("rotated bar should cover (50,35)")
	}
	if _, _, _, a := img.At(35, 50).RGBA(); a != 0 {
		t.Error("rotated bar should no longer cover (35,50)")
	}
}

func TestRasterizeEllipse(t *testing.T) {
	doc := NewDocument(Size{Width: 100, Height: 100})
	face := doc.CreateElement("face")
	face.SetBounds(RectFromLTWH(0, 0, 100, 100))
	face.SetStyle(Style{Shape: ShapeEllipse, Fill: ColorBlack})
	doc.Root().AppendChild(face)

	img := Rasterize(doc)
	if _, _, _, a := img.At(50, 50).RGBA(); a == 0 {
		t.Error("center should be painted")
	}
	if _, _, _, a := img.At(1, 1).RGBA(); a != 0 {
		t.Error("corner lies outside the ellipse")
	}
}

func TestRasterizeEmptyDocument(t *testing.T) {
	img := Rasterize(NewDocument(Size{}))
	if !img.Bounds().Empty() {
		t.Errorf("expected empty image, got %v", img.Bounds())
	}
}

func TestEncodeSVG(t *testing.T) {
	doc := newTestDocument()
	hand := doc.QuerySelector(".hour-hand")
	hand.SetBounds(RectFromLTWH(95, 50, 10, 50))
	hand.SetOrigin(0.5, 1)
	hand.SetStyle(Style{Shape: ShapeRect, Fill: ColorBlack})
	hand.SetTransform(Rotate(90))

	var buf bytes.Buffer
	if err := EncodeSVG(&buf, doc); err != nil {
		t.Fatalf("EncodeSVG: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="200" height="200"`,
		`class="hand hour-hand" transform="translate(95 50) translate(5 50) rotate(90) translate(-5 -50)"`,
		`<rect width="10" height="50" fill="#000000"/>`,
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG output missing %q\n%s", want, out)
		}
	}
}

func TestInspect(t *testing.T) {
	doc := newTestDocument()
	hand := doc.QuerySelector(".hour-hand")
	hand.SetStyle(Style{Shape: ShapeRect, Fill: ColorBlack})
	hand.SetTransform(Rotate(45))

	node := Inspect(doc.Root())
	if node.Class != "root" || len(node.Children) != 1 {
		t.Fatalf("root node = %+v", node)
	}
	got := node.Children[0].Children[0].Children[0]
	if got.Class != "hand hour-hand" || got.Transform != "rotate(45deg)" || got.Fill != "#000000" {
		t.Errorf("hour hand node = %+v", got)
	}
	if node.Transform != "" || node.Fill != "" {
		t.Errorf("root should have no transform or fill, got %+v", node)
	}
}
