package rendering

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// EncodeSVG writes the document as a standalone SVG image. Each element
// becomes a <g> carrying its class list and its full local transform.
func EncodeSVG(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	size := doc.Size()
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		formatFloat(size.Width), formatFloat(size.Height), formatFloat(size.Width), formatFloat(size.Height))
	if err := encodeElement(bw, doc.Root(), 1); err != nil {
		return err
	}
	bw.WriteString("</svg>\n")
	return bw.Flush()
}

func encodeElement(w *bufio.Writer, e *Element, depth int) error {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, `%s<g class="%s"`, indent, escape(e.ClassName()))
	if tf := elementSVGTransform(e); tf != "" {
		fmt.Fprintf(w, ` transform="%s"`, tf)
	}
	w.WriteString(">\n")

	style := e.Style()
	size := e.Size()
	if style.Fill.Alpha() > 0 && !size.IsEmpty() {
		fill := fmt.Sprintf(`fill="%s"`, style.Fill.Hex())
		if style.Fill.Alpha() < 0xFF {
			fill += fmt.Sprintf(` fill-opacity="%.3f"`, style.Fill.Opacity())
		}
		switch style.Shape {
		case ShapeRect:
			fmt.Fprintf(w, `%s  <rect width="%s" height="%s" %s/>`+"\n",
				indent, formatFloat(size.Width), formatFloat(size.Height), fill)
		case ShapeEllipse:
			fmt.Fprintf(w, `%s  <ellipse cx="%s" cy="%s" rx="%s" ry="%s" %s/>`+"\n",
				indent, formatFloat(size.Width/2), formatFloat(size.Height/2),
				formatFloat(size.Width/2), formatFloat(size.Height/2), fill)
		}
		if style.Label != "" {
			fmt.Fprintf(w, `%s  <text y="11" font-family="monospace" font-size="11" %s>%s</text>`+"\n",
				indent, fill, escape(style.Label))
		}
	}

	for _, c := range e.children {
		if err := encodeElement(w, c, depth+1); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "%s</g>\n", indent)
	return nil
}

// elementSVGTransform mirrors Element.LocalMatrix as an SVG transform list.
func elementSVGTransform(e *Element) string {
	var parts []string
	if e.offset != (Offset{}) {
		parts = append(parts, fmt.Sprintf("translate(%s %s)", formatFloat(e.offset.X), formatFloat(e.offset.Y)))
	}
	if !e.transform.IsIdentity() {
		o := e.Origin()
		parts = append(parts,
			fmt.Sprintf("translate(%s %s)", formatFloat(o.X), formatFloat(o.Y)),
			e.transform.SVG(),
			fmt.Sprintf("translate(%s %s)", formatFloat(-o.X), formatFloat(-o.Y)),
		)
	}
	return strings.Join(parts, " ")
}

func escape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
