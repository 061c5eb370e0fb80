package export

import (
	"bytes"
	"fmt"
	"html"

	"connroute/pathgeom"
	"connroute/scene"
)

// imageMargin is the diagram-unit padding per margin step in image formats.
const imageMargin = 20.0

// SVGExporter exports layouts to SVG documents
type SVGExporter struct {
	margin float64
}

// NewSVGExporter creates a new SVG exporter
func NewSVGExporter(opts Options) *SVGExporter {
	return &SVGExporter{margin: float64(opts.Margin) * imageMargin}
}

const svgArrowMarker = `<marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="8" markerHeight="8" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z"/></marker>`

// Export converts a layout to an SVG document
func (e *SVGExporter) Export(l *scene.Layout) ([]byte, error) {
	if err := checkLayout(l); err != nil {
		return nil, err
	}

	n := pathgeom.FormatNum
	b := l.Bounds()
	x, y := b.Min.X-e.margin, b.Min.Y-e.margin
	w, h := b.Width()+2*e.margin, b.Height()+2*e.margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s">`+"\n",
		n(x), n(y), n(w), n(h), n(w), n(h))
	fmt.Fprintf(&buf, "  <defs>%s</defs>\n", svgArrowMarker)

	buf.WriteString(`  <g class="shapes" fill="white" stroke="black">` + "\n")
	for _, s := range l.Scene.Shapes {
		c := s.Center()
		fmt.Fprintf(&buf, `    <rect id="shape-%s" x="%s" y="%s" width="%s" height="%s" rx="4"/>`+"\n",
			html.EscapeString(s.ID), n(s.X), n(s.Y), n(s.Width), n(s.Height))
		fmt.Fprintf(&buf, `    <text x="%s" y="%s" fill="black" stroke="none" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			n(c.X), n(c.Y), html.EscapeString(s.ID))
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="connectors" fill="none" stroke="black" stroke-width="1.5">` + "\n")
	for _, p := range l.Paths {
		if p.Result.IsEmpty() {
			continue
		}
		fmt.Fprintf(&buf, `    <path id="connector-%s" d="%s" marker-end="url(#arrow)"/>`+"\n",
			html.EscapeString(p.ConnectorID), p.Result.Geometry.SVG())
	}
	buf.WriteString("  </g>\n")

	var labels bytes.Buffer
	for _, p := range l.Paths {
		c := l.Scene.Connector(p.ConnectorID)
		if c == nil || c.Label == "" || p.Result.IsEmpty() {
			continue
		}
		fmt.Fprintf(&labels, `    <text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" paint-order="stroke" stroke="white" stroke-width="4">%s</text>`+"\n",
			n(p.Label.X), n(p.Label.Y), html.EscapeString(c.Label))
	}
	if labels.Len() > 0 {
		buf.WriteString(`  <g class="labels">` + "\n")
		buf.Write(labels.Bytes())
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// GetFileExtension returns the file extension for SVG
func (e *SVGExporter) GetFileExtension() string {
	return ".svg"
}

// GetFormatName returns the format name
func (e *SVGExporter) GetFormatName() string {
	return "SVG"
}
