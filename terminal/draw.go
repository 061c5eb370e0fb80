package terminal

import (
	"fmt"
	"strings"

	"connroute/canvas"
	"connroute/core"
	"connroute/scene"

	"github.com/gdamore/tcell/v2"
)

var (
	styleDefault  = tcell.StyleDefault
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStatus   = tcell.StyleDefault.Reverse(true)
)

// Draw renders the scene and the status line.
func (v *Viewer) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	if w <= 0 || h <= 1 {
		v.screen.Show()
		return
	}

	g, err := canvas.NewGrid(w, h-1)
	if err == nil {
		g.SetASCII(v.renderer.Options().ASCII)
		v.renderer.DrawOn(g, v.vp, v.layout, v.Selected())
		mask := v.selectionMask(w, h-1)

		for y, row := range g.Rows() {
			for x, r := range row {
				if r == 0 || r == ' ' {
					continue
				}
				st := styleDefault
				if mask != nil && mask.Get(x, y) != ' ' {
					st = styleSelected
				}
				v.screen.SetContent(x, y, r, nil, st)
			}
		}
	}

	v.drawStatus(w, h-1)
	v.screen.Show()
}

// selectionMask draws the selected path alone so its cells can be
// highlighted.
func (v *Viewer) selectionMask(w, h int) *canvas.Grid {
	p, ok := v.layout.Path(v.Selected())
	if !ok {
		return nil
	}
	mask, err := canvas.NewGrid(w, h)
	if err != nil {
		return nil
	}
	only := &scene.Layout{
		Scene: &scene.Scene{Connectors: v.scene.Connectors},
		Paths: []scene.Path{*p},
	}
	v.renderer.DrawOn(mask, v.vp, only, "")
	return mask
}

func (v *Viewer) drawStatus(w, y int) {
	text := canvas.FitText(v.statusLine(), w, "…")
	x := 0
	for _, r := range text {
		v.screen.SetContent(x, y, r, nil, styleStatus)
		x += canvas.StringWidth(string(r))
	}
	for ; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
}

func (v *Viewer) statusLine() string {
	c := v.connector()
	if c == nil {
		return " no connectors  q quit"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, " %s %d/%d  %s", c.ID, v.selected+1, len(v.scene.Connectors), c.LineType)

	if p, ok := v.layout.Path(c.ID); ok {
		if p.Params.LineType == core.Step && p.Result.Mode != core.ModeAuto {
			sb.WriteString("  " + p.Result.Mode.String())
		}
		if off := p.Params.Offset; off != (core.Point{}) {
			sb.WriteString("  offset " + off.String())
		}
	}
	if v.drag != nil {
		sb.WriteString("  [drag: Enter keeps, Esc cancels]")
	}
	if v.labelMode {
		sb.WriteString("  [label]")
	}
	if v.attachMode {
		sb.WriteString("  [attach]")
	}
	if v.dirty {
		sb.WriteString("  *")
	}
	if v.status != "" {
		sb.WriteString("  " + v.status)
	}
	return sb.String()
}
