package export

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"sync"

	"connroute/core"
	"connroute/scene"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// maxImageSide bounds either side of an exported image in pixels.
const maxImageSide = 16384

// PNGExporter exports layouts to PNG images
type PNGExporter struct {
	scale    float64
	margin   float64
	fontSize float64
}

// NewPNGExporter creates a new PNG exporter
func NewPNGExporter(opts Options) *PNGExporter {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	return &PNGExporter{
		scale:    scale,
		margin:   float64(opts.Margin) * imageMargin,
		fontSize: 12,
	}
}

var (
	monoOnce sync.Once
	monoFont *truetype.Font
	monoErr  error
)

func loadMono() (*truetype.Font, error) {
	monoOnce.Do(func() {
		monoFont, monoErr = truetype.Parse(gomono.TTF)
	})
	return monoFont, monoErr
}

// ImageSize returns the pixel size the layout is drawn at.
func (e *PNGExporter) ImageSize(l *scene.Layout) (int, int) {
	b := l.Bounds()
	w := int(math.Ceil((b.Width() + 2*e.margin) * e.scale))
	h := int(math.Ceil((b.Height() + 2*e.margin) * e.scale))
	return max(w, 1), max(h, 1)
}

// Export converts a layout to a PNG image
func (e *PNGExporter) Export(l *scene.Layout) ([]byte, error) {
	if err := checkLayout(l); err != nil {
		return nil, err
	}

	w, h := e.ImageSize(l)
	if w > maxImageSide || h > maxImageSide {
		return nil, fmt.Errorf("image of %dx%d pixels is too large", w, h)
	}

	ttf, err := loadMono()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    e.fontSize * e.scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	b := l.Bounds()
	origin := core.Pt(b.Min.X-e.margin, b.Min.Y-e.margin)
	px := func(p core.Point) (float64, float64) {
		return (p.X - origin.X) * e.scale, (p.Y - origin.Y) * e.scale
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetFontFace(face)

	// connectors first so boxes sit on top of their ends
	for _, p := range l.Paths {
		e.drawPath(dc, p, px)
	}
	for _, s := range l.Scene.Shapes {
		e.drawShape(dc, s, px)
	}
	for _, p := range l.Paths {
		c := l.Scene.Connector(p.ConnectorID)
		if c == nil || c.Label == "" || p.Result.IsEmpty() {
			continue
		}
		x, y := px(p.Label)
		tw, th := dc.MeasureString(c.Label)
		dc.SetColor(color.White)
		dc.DrawRectangle(x-tw/2-2, y-th/2-2, tw+4, th+4)
		dc.Fill()
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(c.Label, x, y, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PNGExporter) drawShape(dc *gg.Context, s core.Shape, px func(core.Point) (float64, float64)) {
	x, y := px(core.Pt(s.X, s.Y))
	w, h := s.Width*e.scale, s.Height*e.scale

	dc.SetColor(color.White)
	dc.DrawRoundedRectangle(x, y, w, h, 4*e.scale)
	dc.Fill()
	dc.SetColor(color.Black)
	dc.SetLineWidth(1.0 * e.scale)
	dc.DrawRoundedRectangle(x, y, w, h, 4*e.scale)
	dc.Stroke()

	cx, cy := px(s.Center())
	dc.DrawStringAnchored(s.ID, cx, cy, 0.5, 0.5)
}

func (e *PNGExporter) drawPath(dc *gg.Context, p scene.Path, px func(core.Point) (float64, float64)) {
	pts := p.Result.Geometry.Flatten()
	if len(pts) < 2 {
		return
	}

	dc.SetColor(color.Black)
	dc.SetLineWidth(1.5 * e.scale)
	dc.MoveTo(px(pts[0]))
	for _, q := range pts[1:] {
		dc.LineTo(px(q))
	}
	dc.Stroke()

	// arrowhead along the last segment with length
	tip := pts[len(pts)-1]
	for i := len(pts) - 2; i >= 0; i-- {
		if pts[i].Dist(tip) > 0.1 {
			e.drawArrow(dc, pts[i], tip, px)
			return
		}
	}
}

func (e *PNGExporter) drawArrow(dc *gg.Context, from, to core.Point, px func(core.Point) (float64, float64)) {
	fx, fy := px(from)
	tx, ty := px(to)
	dx, dy := tx-fx, ty-fy
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	size := 8.0 * e.scale
	spread := 0.5

	dc.MoveTo(tx, ty)
	dc.LineTo(tx-size*dx+size*dy*spread, ty-size*dy-size*dx*spread)
	dc.LineTo(tx-size*dx-size*dy*spread, ty-size*dy+size*dx*spread)
	dc.ClosePath()
	dc.Fill()
}

// GetFileExtension returns the file extension for PNG
func (e *PNGExporter) GetFileExtension() string {
	return ".png"
}

// GetFormatName returns the format name
func (e *PNGExporter) GetFormatName() string {
	return "PNG"
}
