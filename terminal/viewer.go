// Package terminal is an interactive viewer for routed scenes. It lets the
// user select connectors, drag their segments and move labels and shapes
// while the routing engine recomputes paths.
package terminal

import (
	"context"
	"fmt"
	"math"

	"connroute/canvas"
	"connroute/core"
	"connroute/geometry"
	"connroute/pathparam"
	"connroute/ports"
	"connroute/render"
	"connroute/routing"
	"connroute/scene"

	"github.com/gdamore/tcell/v2"
)

// LabelStep is how far one key press moves a label along its path.
const LabelStep = 0.05

// SaveFunc persists the scene when the user asks for it.
type SaveFunc func(*scene.Scene) error

// Viewer shows a scene on a tcell screen.
type Viewer struct {
	screen   tcell.Screen
	scene    *scene.Scene
	layout   *scene.Layout
	cfg      routing.Config
	renderer *render.Renderer
	vp       canvas.Viewport

	selected   int // index into scene.Connectors, -1 for none
	drag       *routing.DragSession
	grab       *core.Point // last click on the selected connector
	labelMode  bool
	attachMode bool
	dirty     bool
	status    string
	save      SaveFunc
}

// NewViewer routes s and prepares a viewer for it. The screen must already
// be initialised.
func NewViewer(screen tcell.Screen, s *scene.Scene, cfg routing.Config, opts render.Options) (*Viewer, error) {
	v := &Viewer{
		screen:   screen,
		scene:    s,
		cfg:      cfg,
		renderer: render.NewRenderer(opts),
		selected: -1,
	}
	if err := v.reroute(); err != nil {
		return nil, err
	}
	if len(v.scene.Connectors) > 0 {
		v.selected = 0
	}
	v.vp = canvas.Fit(v.layout.Bounds(), opts.ScaleX, opts.ScaleY, opts.Margin)
	return v, nil
}

// OnSave sets the function called by the save key.
func (v *Viewer) OnSave(fn SaveFunc) {
	v.save = fn
}

// Scene returns the scene with every committed edit.
func (v *Viewer) Scene() *scene.Scene { return v.scene }

// Layout returns the current layout.
func (v *Viewer) Layout() *scene.Layout { return v.layout }

// Dirty reports whether the scene changed since it was loaded or saved.
func (v *Viewer) Dirty() bool { return v.dirty }

// Dragging reports whether a segment drag is open.
func (v *Viewer) Dragging() bool { return v.drag != nil }

// Status returns the last status message.
func (v *Viewer) Status() string { return v.status }

// Selected returns the id of the selected connector.
func (v *Viewer) Selected() string {
	if c := v.connector(); c != nil {
		return c.ID
	}
	return ""
}

func (v *Viewer) connector() *scene.Connector {
	if v.selected < 0 || v.selected >= len(v.scene.Connectors) {
		return nil
	}
	return &v.scene.Connectors[v.selected]
}

// reroute recomputes every path and keeps the pinned ports, so later edits
// never jump to another port.
func (v *Viewer) reroute() error {
	l, err := scene.Route(v.scene, v.cfg)
	if err != nil {
		return err
	}
	v.layout = l
	v.scene = l.Scene
	return nil
}

// Run draws the scene and handles events until the user quits or ctx is
// cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	v.screen.EnableMouse()
	defer v.screen.DisableMouse()

	go func() {
		<-ctx.Done()
		_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	for {
		v.Draw()
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return ctx.Err()
		}
		if v.HandleEvent(ev) {
			return nil
		}
	}
}

// HandleEvent applies one event and reports whether the viewer should exit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			v.click(canvas.Cell{X: x, Y: y})
		}
	}
	return false
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyTab:
		v.cycle(1)
	case tcell.KeyBacktab:
		v.cycle(-1)
	case tcell.KeyUp:
		v.dragBy(core.Pt(0, -v.vp.ScaleY))
	case tcell.KeyDown:
		v.dragBy(core.Pt(0, v.vp.ScaleY))
	case tcell.KeyLeft:
		v.dragBy(core.Pt(-v.vp.ScaleX, 0))
	case tcell.KeyRight:
		v.dragBy(core.Pt(v.vp.ScaleX, 0))
	case tcell.KeyEnter:
		v.endDrag(true)
	case tcell.KeyEscape:
		if v.drag != nil {
			v.endDrag(false)
		} else {
			v.labelMode, v.attachMode = false, false
			v.status = ""
		}
	case tcell.KeyRune:
		return v.handleRune(ev.Rune())
	}
	return false
}

func (v *Viewer) handleRune(r rune) bool {
	switch r {
	case 'q':
		return true
	case '[':
		v.moveLabel(-LabelStep)
	case ']':
		v.moveLabel(LabelStep)
	case 'h':
		v.moveSource(core.Pt(-v.vp.ScaleX, 0))
	case 'l':
		v.moveSource(core.Pt(v.vp.ScaleX, 0))
	case 'k':
		v.moveSource(core.Pt(0, -v.vp.ScaleY))
	case 'j':
		v.moveSource(core.Pt(0, v.vp.ScaleY))
	case 's':
		v.cycleLineType()
	case 'r':
		v.resetOffset()
	case 'p':
		v.labelMode, v.attachMode = !v.labelMode, false
		if v.labelMode {
			v.status = "click the path to place the label"
		} else {
			v.status = ""
		}
	case 'e':
		v.attachMode, v.labelMode = !v.attachMode, false
		if v.attachMode {
			v.status = "click a shape to attach the nearer end"
		} else {
			v.status = ""
		}
	case 'w':
		v.saveScene()
	}
	return false
}

func (v *Viewer) cycle(step int) {
	n := len(v.scene.Connectors)
	if n == 0 {
		return
	}
	v.endDrag(true)
	v.selected = ((v.selected+step)%n + n) % n
	v.grab = nil
	v.status = ""
}

// dragBy opens a drag session on first use and moves the grabbed segment.
func (v *Viewer) dragBy(delta core.Point) {
	c := v.connector()
	if c == nil {
		return
	}
	p, ok := v.layout.Path(c.ID)
	if !ok || p.Result.IsEmpty() {
		return
	}
	if v.drag == nil {
		grab, ok := grabPoint(p.Result.Points, delta, v.grab)
		if p.Params.LineType != core.Step || !ok {
			grab = pathparam.PointAt(v.cfg, p.Params, nil)
		}
		v.drag = routing.BeginDrag(v.cfg, p.Params, grab)
	}
	res := v.drag.Apply(delta)
	if v.grab != nil {
		g := v.grab.Add(delta)
		v.grab = &g
	}

	p.Params = v.drag.Params()
	p.Result = res
	p.Label = pathparam.PointAt(v.cfg, p.Params, c.LabelPosition)

	off := v.drag.Offset()
	v.status = fmt.Sprintf("dragging %s segment, offset %s", v.drag.Segment(), off)
}

// grabPoint picks the step segment an arrow key should move: one that lies
// across delta, nearest to ref when there is one and the longest otherwise.
func grabPoint(pts []core.Point, delta core.Point, ref *core.Point) (core.Point, bool) {
	var (
		at    core.Point
		found bool
		score = math.Inf(1)
	)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		movable := (delta.X != 0 && geometry.IsVertical(a, b)) ||
			(delta.Y != 0 && !geometry.IsVertical(a, b))
		if !movable || a == b {
			continue
		}
		u := 0.5
		sc := -a.Dist(b)
		if ref != nil {
			var q core.Point
			u, q = geometry.ProjectOnSegment(*ref, a, b)
			sc = geometry.DistSq(*ref, q)
		}
		if sc < score {
			// Stay clear of the corners so the session grabs this segment.
			at, found, score = geometry.Lerp(a, b, geometry.Clamp(u, 0.25, 0.75)), true, sc
		}
	}
	return at, found
}

// endDrag closes the drag session, storing its offset when commit is set.
func (v *Viewer) endDrag(commit bool) {
	if v.drag == nil {
		return
	}
	if c := v.connector(); c != nil && commit {
		c.SetOffset(v.drag.Offset())
		v.dirty = true
	}
	v.drag = nil
	v.update()
}

func (v *Viewer) moveLabel(dt float64) {
	v.endDrag(true)
	c := v.connector()
	if c == nil {
		return
	}
	t := pathparam.DefaultPosition
	if c.LabelPosition != nil {
		t = *c.LabelPosition
	}
	v.setLabel(c, t+dt)
}

func (v *Viewer) setLabel(c *scene.Connector, t float64) {
	t = math.Round(math.Max(0, math.Min(1, t))*1000) / 1000
	c.LabelPosition = &t
	v.dirty = true
	v.update()
	v.status = fmt.Sprintf("label at %.2f", t)
}

func (v *Viewer) moveSource(delta core.Point) {
	v.endDrag(true)
	c := v.connector()
	if c == nil {
		return
	}
	if sh := v.scene.ShapeRef(c.FromID); sh != nil {
		sh.X += delta.X
		sh.Y += delta.Y
	} else {
		c.X += delta.X
		c.Y += delta.Y
	}
	v.dirty = true
	v.update()
}

func (v *Viewer) cycleLineType() {
	v.endDrag(true)
	c := v.connector()
	if c == nil {
		return
	}
	c.LineType = c.LineType.Next()
	v.dirty = true
	v.update()
	v.status = "line type " + c.LineType.String()
}

func (v *Viewer) resetOffset() {
	v.endDrag(false)
	c := v.connector()
	if c == nil {
		return
	}
	c.SetOffset(core.Point{})
	v.dirty = true
	v.update()
}

// click selects the connector under the pointer. In label mode it places the
// label of the selected connector and in attach mode it moves one of its ends.
func (v *Viewer) click(cell canvas.Cell) {
	at := v.vp.Point(cell)
	tolerance := math.Max(v.vp.ScaleX, v.vp.ScaleY)

	if v.attachMode {
		v.attach(at, tolerance)
		return
	}
	if v.labelMode {
		c := v.connector()
		if p, ok := v.layout.Path(v.Selected()); ok && c != nil {
			if pathparam.Hit(v.cfg, p.Params, at, tolerance) {
				v.setLabel(c, pathparam.ParameterAt(v.cfg, p.Params, at))
				v.labelMode = false
			}
		}
		return
	}

	best, bestDist := -1, tolerance
	for i, p := range v.layout.Paths {
		if d := pathparam.DistanceTo(v.cfg, p.Params, at); d <= bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return
	}
	id := v.layout.Paths[best].ConnectorID
	for i := range v.scene.Connectors {
		if v.scene.Connectors[i].ID == id {
			v.endDrag(true)
			v.selected = i
			v.grab = &at
			v.status = ""
			return
		}
	}
}

// attach pins the end of the selected connector nearer to at onto the port
// of the shape under at closest to it. The port then stays put when shapes
// move, until the end is attached again.
func (v *Viewer) attach(at core.Point, tolerance float64) {
	v.endDrag(true)
	c := v.connector()
	if c == nil {
		return
	}
	p, ok := v.layout.Path(c.ID)
	if !ok {
		return
	}
	sh, ok := v.shapeAt(at, tolerance)
	if !ok {
		v.status = "no shape there"
		return
	}

	port := ports.Nearest(sh, at)
	fromEnd := at.Dist(p.From.Point()) <= at.Dist(p.To.Point())
	other, end := c.ToID, "start"
	if !fromEnd {
		other, end = c.FromID, "end"
	}
	if other == sh.ID {
		v.status = "both ends would be on " + sh.ID
		return
	}

	if fromEnd {
		c.FromID, c.FromPort = sh.ID, port.ID
	} else {
		c.ToID, c.ToPort = sh.ID, port.ID
	}
	v.attachMode = false
	v.grab = nil
	v.dirty = true
	v.update()
	v.status = fmt.Sprintf("%s attached to %s %s", end, sh.ID, port.ID)
}

// shapeAt returns the shape closest to at, if one lies within tolerance.
func (v *Viewer) shapeAt(at core.Point, tolerance float64) (core.Shape, bool) {
	var (
		best  core.Shape
		found bool
	)
	bestDist := tolerance
	for _, sh := range v.scene.Shapes {
		b := sh.Bounds()
		dx := math.Max(0, math.Max(b.Min.X-at.X, at.X-b.Max.X))
		dy := math.Max(0, math.Max(b.Min.Y-at.Y, at.Y-b.Max.Y))
		if d := math.Hypot(dx, dy); d <= bestDist {
			best, bestDist, found = sh, d, true
		}
	}
	return best, found
}

func (v *Viewer) update() {
	if err := v.reroute(); err != nil {
		v.status = err.Error()
	}
}

func (v *Viewer) saveScene() {
	if v.save == nil {
		v.status = "no file to save to"
		return
	}
	v.endDrag(true)
	if err := v.save(v.scene); err != nil {
		v.status = "save failed: " + err.Error()
		return
	}
	v.dirty = false
	v.status = "saved"
}
