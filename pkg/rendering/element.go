package rendering

import (
	"slices"
	"strings"
)

// Shape selects how an element paints its own box.
type Shape int

const (
	// ShapeNone paints nothing; the element only positions its children.
	ShapeNone Shape = iota
	// ShapeRect fills the element box.
	ShapeRect
	// ShapeEllipse fills the ellipse inscribed in the element box.
	ShapeEllipse
)

// Style describes how an element paints.
type Style struct {
	Shape Shape
	Fill  Color
	// Label is optional text drawn at the element's top-left corner.
	Label string
}

// Element is a positionable node in a Document.
//
// Elements are positioned absolutely: Offset is the top-left corner relative
// to the parent's box. The transform is applied about Origin, expressed as a
// fraction of the element size (0.5, 0.5 is the center), and never affects
// the layout of siblings.
type Element struct {
	classes   []string
	offset    Offset
	size      Size
	origin    Offset
	style     Style
	transform Transform
	parent    *Element
	children  []*Element
}

// NewElement creates a detached element with the given classes.
func NewElement(classes ...string) *Element {
	e := &Element{origin: Offset{X: 0.5, Y: 0.5}}
	for _, c := range classes {
		e.AddClass(c)
	}
	return e
}

// AddClass adds one or more space-separated class names.
func (e *Element) AddClass(names string) {
	for _, name := range strings.Fields(names) {
		if !e.HasClass(name) {
			e.classes = append(e.classes, name)
		}
	}
}

// HasClass reports whether the element carries class name.
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.classes, name)
}

// ClassName returns the space-joined class list.
func (e *Element) ClassName() string {
	return strings.Join(e.classes, " ")
}

// SetBounds positions the element within its parent.
func (e *Element) SetBounds(r Rect) {
	e.offset = Offset{X: r.Left, Y: r.Top}
	e.size = r.Size()
}

// Offset returns the top-left corner relative to the parent.
func (e *Element) Offset() Offset {
	return e.offset
}

// Size returns the element's laid-out size.
func (e *Element) Size() Size {
	return e.size
}

// BoundingRect returns the untransformed box in document coordinates.
func (e *Element) BoundingRect() Rect {
	left, top := 0.0, 0.0
	for n := e; n != nil; n = n.parent {
		left += n.offset.X
		top += n.offset.Y
	}
	return RectFromLTWH(left, top, e.size.Width, e.size.Height)
}

// SetOrigin sets the transform origin as a fraction of the element size.
func (e *Element) SetOrigin(fx, fy float64) {
	e.origin = Offset{X: fx, Y: fy}
}

// Origin returns the transform origin in local pixels.
func (e *Element) Origin() Offset {
	return Offset{X: e.origin.X * e.size.Width, Y: e.origin.Y * e.size.Height}
}

// SetStyle replaces the element's paint style.
func (e *Element) SetStyle(s Style) {
	e.style = s
}

// Style returns the element's paint style.
func (e *Element) Style() Style {
	return e.style
}

// SetTransform replaces the element's transform.
func (e *Element) SetTransform(t Transform) {
	e.transform = t
}

// Transform returns the element's current transform.
func (e *Element) Transform() Transform {
	return e.transform
}

// LocalMatrix maps element-local coordinates to the parent's coordinates.
func (e *Element) LocalMatrix() Matrix {
	o := e.Origin()
	return TranslationMatrix(e.offset.X+o.X, e.offset.Y+o.Y).
		Multiply(e.transform.Matrix()).
		Multiply(TranslationMatrix(-o.X, -o.Y))
}

// AppendChild adds child as the last child, detaching it from any previous parent.
func (e *Element) AppendChild(child *Element) {
	if child == nil || child == e {
		return
	}
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
}

func (e *Element) removeChild(child *Element) {
	if i := slices.Index(e.children, child); i >= 0 {
		e.children = slices.Delete(e.children, i, i+1)
	}
	child.parent = nil
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	return slices.Clone(e.children)
}

// Parent returns the parent element, or nil if detached or the root.
func (e *Element) Parent() *Element {
	return e.parent
}

// Walk visits e and its descendants in document order. Returning false from
// visit stops the walk.
func (e *Element) Walk(visit func(*Element) bool) bool {
	if !visit(e) {
		return false
	}
	for _, c := range e.children {
		if !c.Walk(visit) {
			return false
		}
	}
	return true
}

// Document is a tree of elements rooted at a fixed-size viewport.
type Document struct {
	root *Element
}

// NewDocument creates a document whose root element covers size.
func NewDocument(size Size) *Document {
	root := NewElement("root")
	root.SetBounds(RectFromLTWH(0, 0, size.Width, size.Height))
	return &Document{root: root}
}

// Root returns the root element.
func (d *Document) Root() *Element {
	return d.root
}

// Size returns the viewport size.
func (d *Document) Size() Size {
	return d.root.size
}

// CreateElement creates a detached element. Attach it with AppendChild.
func (d *Document) CreateElement(classes ...string) *Element {
	return NewElement(classes...)
}

// QuerySelector returns the first element in document order matching
// selector, or nil. Invalid selectors match nothing.
func (d *Document) QuerySelector(selector string) *Element {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil
	}
	var found *Element
	d.root.Walk(func(e *Element) bool {
		if sel.Matches(e) {
			found = e
			return false
		}
		return true
	})
	return found
}

// QuerySelectorAll returns every element matching selector in document order.
func (d *Document) QuerySelectorAll(selector string) []*Element {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil
	}
	var out []*Element
	d.root.Walk(func(e *Element) bool {
		if sel.Matches(e) {
			out = append(out, e)
		}
		return true
	})
	return out
}
