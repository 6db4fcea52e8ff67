package testing

import (
	"strings"
	"testing"

	"github.com/go-drift/analogclock/pkg/rendering"
)

func snapshotDocument() (*rendering.Document, *rendering.Element) {
	doc := rendering.NewDocument(rendering.Size{Width: 100, Height: 100})
	hand := doc.CreateElement("hand")
	hand.SetBounds(rendering.RectFromLTWH(48, 10, 4, 40.004))
	hand.SetStyle(rendering.Style{Shape: rendering.ShapeRect, Fill: rendering.ColorBlack})
	doc.Root().AppendChild(hand)
	return doc, hand
}

func TestCaptureSnapshotRounds(t *testing.T) {
	doc, _ := snapshotDocument()
	snap := CaptureSnapshot(doc)
	if snap.Width != 100 || snap.Height != 100 {
		t.Errorf("size = %gx%g, want 100x100", snap.Width, snap.Height)
	}
	if len(snap.Tree.Children) != 1 {
		t.Fatalf("expected one child, got %d", len(snap.Tree.Children))
	}
	if got := snap.Tree.Children[0].Height; got != 40 {
		t.Errorf("Height = %v, want 40 after rounding", got)
	}
	if !strings.Contains(snap.JSON(), `"class": "hand"`) {
		t.Errorf("JSON() missing hand class:\n%s", snap.JSON())
	}
}

func TestSnapshotDiffEqual(t *testing.T) {
	doc, _ := snapshotDocument()
	a := CaptureSnapshot(doc)
	b := CaptureSnapshot(doc)
	if diff := a.Diff(b); diff != "" {
		t.Errorf("identical documents differ:\n%s", diff)
	}
}

func TestSnapshotDiffShowsTransform(t *testing.T) {
	doc, hand := snapshotDocument()
	before := CaptureSnapshot(doc)
	hand.SetTransform(rendering.Rotate(6))
	after := CaptureSnapshot(doc)

	diff := after.Diff(before)
	if diff == "" {
		t.Fatal("expected a diff after rotating the hand")
	}
	if !strings.Contains(diff, "rotate(6deg)") {
		t.Errorf("diff should mention the new rotation:\n%s", diff)
	}
	if !strings.HasPrefix(diff, "--- expected\n+++ actual\n") {
		t.Errorf("unexpected diff header:\n%s", diff)
	}
}
