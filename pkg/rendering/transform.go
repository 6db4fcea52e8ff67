package rendering

import (
	"strconv"
	"strings"
)

// TransformKind identifies a single transform function.
type TransformKind int

const (
	// TransformRotate rotates clockwise by Degrees.
	TransformRotate TransformKind = iota
	// TransformTranslate moves by (X, Y) pixels.
	TransformTranslate
)

// TransformOp is one function in a transform list.
type TransformOp struct {
	Kind    TransformKind
	Degrees float64
	X, Y    float64
}

// Transform is an ordered list of transform functions, like a CSS transform
// property. Functions apply right to left: in Rotate(a).TranslateY(d) a point
// is translated first and the result rotated about the element's origin.
//
// Transform values are immutable; builder methods return a new value.
type Transform struct {
	ops []TransformOp
}

// Rotate returns a transform that rotates by degrees.
func Rotate(degrees float64) Transform {
	return Transform{}.Rotate(degrees)
}

// Translate returns a transform that moves by (dx, dy).
func Translate(dx, dy float64) Transform {
	return Transform{}.Translate(dx, dy)
}

// Rotate appends a rotation.
func (t Transform) Rotate(degrees float64) Transform {
	return t.with(TransformOp{Kind: TransformRotate, Degrees: degrees})
}

// Translate appends a translation.
func (t Transform) Translate(dx, dy float64) Transform {
	return t.with(TransformOp{Kind: TransformTranslate, X: dx, Y: dy})
}

// TranslateY appends a vertical translation.
func (t Transform) TranslateY(dy float64) Transform {
	return t.Translate(0, dy)
}

func (t Transform) with(op TransformOp) Transform {
	ops := make([]TransformOp, len(t.ops), len(t.ops)+1)
	copy(ops, t.ops)
	return Transform{ops: append(ops, op)}
}

// Ops returns a copy of the transform functions in declaration order.
func (t Transform) Ops() []TransformOp {
	return append([]TransformOp(nil), t.ops...)
}

// IsIdentity reports whether the transform has no functions.
func (t Transform) IsIdentity() bool {
	return len(t.ops) == 0
}

// Rotation returns the sum of all rotate functions in degrees.
func (t Transform) Rotation() float64 {
	var deg float64
	for _, op := range t.ops {
		if op.Kind == TransformRotate {
			deg += op.Degrees
		}
	}
	return deg
}

// Matrix composes the functions into a single affine matrix.
func (t Transform) Matrix() Matrix {
	m := IdentityMatrix()
	for _, op := range t.ops {
		switch op.Kind {
		case TransformRotate:
			m = m.Multiply(RotationMatrix(op.Degrees))
		case TransformTranslate:
			m = m.Multiply(TranslationMatrix(op.X, op.Y))
		}
	}
	return m
}

// String renders the transform in CSS syntax, e.g. "rotate(30deg) translateY(-95px)".
func (t Transform) String() string {
	if len(t.ops) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(t.ops))
	for _, op := range t.ops {
		switch op.Kind {
		case TransformRotate:
			parts = append(parts, "rotate("+formatFloat(op.Degrees)+"deg)")
		case TransformTranslate:
			if op.X == 0 {
				parts = append(parts, "translateY("+formatFloat(op.Y)+"px)")
			} else {
				parts = append(parts, "translate("+formatFloat(op.X)+"px, "+formatFloat(op.Y)+"px)")
			}
		}
	}
	return strings.Join(parts, " ")
}

// SVG renders the transform as an SVG transform attribute value.
func (t Transform) SVG() string {
	parts := make([]string, 0, len(t.ops))
	for _, op := range t.ops {
		switch op.Kind {
		case TransformRotate:
			parts = append(parts, "rotate("+formatFloat(op.Degrees)+")")
		case TransformTranslate:
			parts = append(parts, "translate("+formatFloat(op.X)+" "+formatFloat(op.Y)+")")
		}
	}
	return strings.Join(parts, " ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
