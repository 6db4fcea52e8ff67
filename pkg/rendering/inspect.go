package rendering

// ElementNode is a serializable view of an element subtree.
type ElementNode struct {
	Class     string        `json:"class"`
	X         float64       `json:"x"`
	Y         float64       `json:"y"`
	Width     float64       `json:"width"`
	Height    float64       `json:"height"`
	Transform string        `json:"transform,omitempty"`
	Fill      string        `json:"fill,omitempty"`
	Label     string        `json:"label,omitempty"`
	Children  []ElementNode `json:"children,omitempty"`
}

// maxInspectDepth bounds recursion on malformed trees.
const maxInspectDepth = 64

// Inspect captures e and its descendants.
func Inspect(e *Element) ElementNode {
	return inspect(e, 0)
}

func inspect(e *Element, depth int) ElementNode {
	node := ElementNode{
		Class:  e.ClassName(),
		X:      e.offset.X,
		Y:      e.offset.Y,
		Width:  e.size.Width,
		Height: e.size.Height,
		Label:  e.style.Label,
	}
	if !e.transform.IsIdentity() {
		node.Transform = e.transform.String()
	}
	if e.style.Fill.Alpha() > 0 {
		node.Fill = e.style.Fill.Hex()
	}
	if depth >= maxInspectDepth {
		return node
	}
	for _, c := range e.children {
		node.Children = append(node.Children, inspect(c, depth+1))
	}
	return node
}
