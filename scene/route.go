package scene

import (
	"fmt"

	"connroute/core"
	"connroute/pathparam"
	"connroute/ports"
	"connroute/routing"
)

// Path is a routed connector.
type Path struct {
	ConnectorID string
	From, To    core.Port // ID is PortNone for a free end
	Params      routing.Params
	Result      routing.Result
	Label       core.Point // label anchor
	LabelT      float64
}

// Layout is the result of routing every connector of a scene.
type Layout struct {
	// Scene is the snapshot the layout was computed from, with the ports
	// chosen in this pass pinned on its connectors.
	Scene  *Scene
	Paths  []Path
	Config routing.Config
}

// Route computes the path of every connector. The input scene is not
// modified; ports picked for connectors that had none are pinned on the
// snapshot returned in the layout, so saving it keeps later renders stable.
func Route(s *Scene, cfg routing.Config) (*Layout, error) {
	snap := s.Clone()
	layout := &Layout{Scene: snap, Paths: make([]Path, 0, len(snap.Connectors)), Config: cfg}

	for i := range snap.Connectors {
		p, err := RouteConnector(snap, &snap.Connectors[i], cfg)
		if err != nil {
			return nil, err
		}
		layout.Paths = append(layout.Paths, p)
	}
	return layout, nil
}

// RouteConnector routes one connector against the shapes of s and pins its
// ports on c.
func RouteConnector(s *Scene, c *Connector, cfg routing.Config) (Path, error) {
	from, to, err := Endpoints(s, c)
	if err != nil {
		return Path{}, err
	}

	params := ParamsFor(cfg, *c, from, to)
	p := Path{
		ConnectorID: c.ID,
		From:        from,
		To:          to,
		Params:      params,
		Result:      routing.Synthesize(cfg, params),
		LabelT:      pathparam.DefaultPosition,
	}
	if c.LabelPosition != nil {
		p.LabelT = *c.LabelPosition
	}
	p.Label = pathparam.PointAt(cfg, params, c.LabelPosition)
	return p, nil
}

// Endpoints resolves both ends of a connector. Attached ends use the pinned
// port when it is valid and the selector otherwise; the chosen ids are
// written back to c. Free ends become ports without direction.
func Endpoints(s *Scene, c *Connector) (core.Port, core.Port, error) {
	from, hasFrom, err := attached(s, c.FromID)
	if err != nil {
		return core.Port{}, core.Port{}, fmt.Errorf("connector %s: from: %w", c.ID, err)
	}
	to, hasTo, err := attached(s, c.ToID)
	if err != nil {
		return core.Port{}, core.Port{}, fmt.Errorf("connector %s: to: %w", c.ID, err)
	}

	start := core.Port{X: c.X, Y: c.Y}
	end := core.Port{X: c.EndX, Y: c.EndY}

	switch {
	case hasFrom && hasTo:
		start, end = ports.Resolve(from, to, c.FromPort, c.ToPort)
	case hasFrom:
		if fp, ok := ports.Find(from, c.FromPort); ok {
			start = fp
		} else {
			start = ports.SelectTowardPoint(from, c.End())
		}
	case hasTo:
		if tp, ok := ports.Find(to, c.ToPort); ok {
			end = tp
		} else {
			end = ports.SelectFromPoint(c.Start(), to)
		}
	}

	if hasFrom {
		c.FromPort = start.ID
		c.X, c.Y = start.X, start.Y
	}
	if hasTo {
		c.ToPort = end.ID
		c.EndX, c.EndY = end.X, end.Y
	}
	return start, end, nil
}

// ParamsFor builds synthesizer parameters for a connector whose ends are
// resolved.
func ParamsFor(cfg routing.Config, c Connector, start, end core.Port) routing.Params {
	return routing.Params{
		Start:       start.Point(),
		End:         end.Point(),
		LineType:    c.LineType,
		Offset:      c.Offset(),
		StartDir:    start.Dir,
		EndDir:      end.Dir,
		DisableSnap: cfg.DisableSnap,
	}
}

func attached(s *Scene, id string) (core.Shape, bool, error) {
	if id == "" {
		return core.Shape{}, false, nil
	}
	sh, ok := s.Shape(id)
	if !ok {
		return core.Shape{}, false, fmt.Errorf("%w: %q", ErrShapeNotFound, id)
	}
	return sh, true, nil
}

// Path returns the routed path of a connector.
func (l *Layout) Path(id string) (*Path, bool) {
	for i := range l.Paths {
		if l.Paths[i].ConnectorID == id {
			return &l.Paths[i], true
		}
	}
	return nil, false
}

// Bounds returns the box enclosing every shape, path and label anchor.
func (l *Layout) Bounds() core.Bounds {
	var b core.Bounds
	first := true
	add := func(o core.Bounds) {
		if first {
			b, first = o, false
			return
		}
		b = b.Union(o)
	}

	for _, s := range l.Scene.Shapes {
		add(s.Bounds())
	}
	for _, p := range l.Paths {
		if p.Result.IsEmpty() {
			continue
		}
		add(p.Result.Geometry.Bounds())
		add(core.Bounds{Min: p.Label, Max: p.Label})
	}
	return b
}

// IsEmpty reports whether there is nothing to draw.
func (l *Layout) IsEmpty() bool {
	if l == nil || l.Scene == nil {
		return true
	}
	if len(l.Scene.Shapes) > 0 {
		return false
	}
	for _, p := range l.Paths {
		if !p.Result.IsEmpty() {
			return false
		}
	}
	return true
}
