// Package render rasterizes a routed scene onto a character grid.
package render

import (
	"fmt"

	"connroute/canvas"
	"connroute/core"
	"connroute/scene"
)

// Options controls how a layout is drawn.
type Options struct {
	ScaleX float64 // diagram units per column
	ScaleY float64 // diagram units per row
	Margin int
	ASCII  bool
	Arrows bool
	Labels bool
}

// DefaultOptions draws with box-drawing glyphs, arrowheads and labels.
func DefaultOptions() Options {
	return Options{
		ScaleX: canvas.DefaultScaleX,
		ScaleY: canvas.DefaultScaleY,
		Margin: 1,
		Arrows: true,
		Labels: true,
	}
}

// Renderer draws layouts onto grids.
type Renderer struct {
	opts Options
}

// NewRenderer creates a renderer.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Options returns the renderer options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Render draws the layout and returns it as text.
func (r *Renderer) Render(l *scene.Layout) (string, error) {
	g, _, err := r.Draw(l)
	if err != nil {
		return "", err
	}
	return g.String(), nil
}

// Draw rasterizes the layout and returns the grid with the viewport it was
// drawn through.
func (r *Renderer) Draw(l *scene.Layout) (*canvas.Grid, canvas.Viewport, error) {
	if l.IsEmpty() {
		return nil, canvas.Viewport{}, fmt.Errorf("nothing to draw")
	}
	bounds := l.Bounds()
	vp := canvas.Fit(bounds, r.opts.ScaleX, r.opts.ScaleY, r.opts.Margin)
	w, h := vp.GridSize(bounds)

	g, err := canvas.NewGrid(w, h)
	if err != nil {
		return nil, vp, fmt.Errorf("allocate grid: %w", err)
	}
	g.SetASCII(r.opts.ASCII)
	r.DrawOn(g, vp, l, "")
	return g, vp, nil
}

// DrawOn draws the layout into an existing grid. The connector named by
// selected, if any, is drawn last so it stays on top.
func (r *Renderer) DrawOn(g *canvas.Grid, vp canvas.Viewport, l *scene.Layout, selected string) {
	for _, s := range l.Scene.Shapes {
		r.drawShape(g, vp, s)
	}

	var top *scene.Path
	for i := range l.Paths {
		if l.Paths[i].ConnectorID == selected {
			top = &l.Paths[i]
			continue
		}
		r.drawPath(g, vp, l.Paths[i])
	}
	if top != nil {
		r.drawPath(g, vp, *top)
	}

	if !r.opts.Labels {
		return
	}
	for _, p := range l.Paths {
		c := l.Scene.Connector(p.ConnectorID)
		if c == nil || c.Label == "" || p.Result.IsEmpty() {
			continue
		}
		at := vp.Cell(p.Label)
		g.DrawText(at.X-canvas.StringWidth(c.Label)/2, at.Y, c.Label)
	}
}

func (r *Renderer) drawShape(g *canvas.Grid, vp canvas.Viewport, s core.Shape) {
	b := s.Bounds()
	tl, br := vp.Cell(b.Min), vp.Cell(b.Max)
	w, h := max(br.X-tl.X+1, 2), max(br.Y-tl.Y+1, 2)

	style := canvas.DefaultBoxStyle
	if r.opts.ASCII {
		style = canvas.ASCIIBoxStyle
	}
	g.DrawBox(tl.X, tl.Y, w, h, style)

	if h >= 3 && w > 2 {
		name := canvas.FitText(s.ID, w-2, "…")
		g.DrawText(tl.X+(w-canvas.StringWidth(name))/2, tl.Y+h/2, name)
	}
}

func (r *Renderer) drawPath(g *canvas.Grid, vp canvas.Viewport, p scene.Path) {
	if p.Result.IsEmpty() {
		return
	}

	var cells []canvas.Cell
	switch p.Params.LineType {
	case core.Curve:
		cells = vp.Cells(p.Result.Geometry.Flatten())
	default:
		cells = vp.Cells(p.Result.Points)
	}
	if len(cells) < 2 {
		return
	}

	if !orthogonal(cells) {
		for i := 1; i < len(cells); i++ {
			g.DrawLine(cells[i-1], cells[i], '·')
		}
		return
	}
	g.DrawOrthogonal(cells)

	if !r.opts.Arrows {
		return
	}
	n := len(cells)
	if p.To.ID != core.PortNone {
		g.DrawArrowBefore(cells[n-2], cells[n-1])
	} else {
		g.DrawArrow(cells[n-2], cells[n-1])
	}
}

func orthogonal(cells []canvas.Cell) bool {
	for i := 1; i < len(cells); i++ {
		if cells[i-1].X != cells[i].X && cells[i-1].Y != cells[i].Y {
			return false
		}
	}
	return true
}
