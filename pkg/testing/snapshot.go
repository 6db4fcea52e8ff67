package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/go-drift/analogclock/pkg/rendering"
)

// Snapshot captures the element tree of a document, rounded so that float
// noise does not show up as a difference.
type Snapshot struct {
	Width  float64                `json:"width"`
	Height float64                `json:"height"`
	Tree   rendering.ElementNode `json:"tree"`
}

// CaptureSnapshot records the current state of doc.
func CaptureSnapshot(doc *rendering.Document) *Snapshot {
	size := doc.Size()
	return &Snapshot{
		Width:  round2(size.Width),
		Height: round2(size.Height),
		Tree:   roundNode(rendering.Inspect(doc.Root())),
	}
}

// JSON returns the indented JSON form of the snapshot.
func (s *Snapshot) JSON() string {
	data, err := marshalSnapshot(s)
	if err != nil {
		return fmt.Sprintf("<snapshot encode error: %v>", err)
	}
	return string(data)
}

// Diff returns a line diff between other (expected) and this snapshot
// (actual). Returns empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

func roundNode(n rendering.ElementNode) rendering.ElementNode {
	n.X, n.Y = round2(n.X), round2(n.Y)
	n.Width, n.Height = round2(n.Width), round2(n.Height)
	for i, c := range n.Children {
		n.Children[i] = roundNode(c)
	}
	return n
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := max(len(expectedLines), len(actualLines))
	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
