package canvas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Common errors
var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrInvalidSize = errors.New("invalid canvas size")
)

// Cell is a position on the grid in character cells.
type Cell struct {
	X, Y int
}

// Grid is a rune matrix with line drawing primitives. Lines drawn over
// each other merge into junctions.
//
// Grid is not safe for concurrent writes.
//
// Coordinate System:
//   - Origin (0,0) is top-left
//   - X increases rightward
//   - Y increases downward
type Grid struct {
	cells  [][]rune
	width  int
	height int
	merger Merger
}

// NewGrid creates a blank grid.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = make([]rune, width)
		for x := range cells[y] {
			cells[y][x] = ' '
		}
	}
	return &Grid{cells: cells, width: width, height: height}, nil
}

// SetASCII switches junction merging to ASCII glyphs.
func (g *Grid) SetASCII(ascii bool) {
	g.merger.ASCII = ascii
}

// Size returns the width and height of the grid.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// Rows returns the underlying rune matrix.
func (g *Grid) Rows() [][]rune {
	return g.cells
}

func (g *Grid) inside(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the rune at x,y, or a space outside the grid.
func (g *Grid) Get(x, y int) rune {
	if !g.inside(x, y) {
		return ' '
	}
	return g.cells[y][x]
}

// Set merges r into the cell at x,y.
func (g *Grid) Set(x, y int, r rune) error {
	if !g.inside(x, y) {
		return ErrOutOfBounds
	}
	g.cells[y][x] = g.merger.Merge(g.cells[y][x], r)
	return nil
}

// Put overwrites the cell at x,y. Positions outside the grid are ignored.
func (g *Grid) Put(x, y int, r rune) {
	if g.inside(x, y) {
		g.cells[y][x] = r
	}
}

// Clear resets every cell to a space.
func (g *Grid) Clear() {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = ' '
		}
	}
}

// String returns the grid as text with trailing spaces removed.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.height * (g.width + 1))

	for y, row := range g.cells {
		var line strings.Builder
		for _, r := range row {
			if r == 0 {
				// continuation of a wide rune
				continue
			}
			line.WriteRune(r)
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		if y < g.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// DrawBox draws a rectangle. Boxes partly outside the grid are clipped.
func (g *Grid) DrawBox(x, y, width, height int, style BoxStyle) error {
	if width < 2 || height < 2 {
		return fmt.Errorf("%w: box %dx%d", ErrInvalidSize, width, height)
	}
	x2, y2 := x+width-1, y+height-1

	for i := x + 1; i < x2; i++ {
		g.Set(i, y, style.Horizontal)
		g.Set(i, y2, style.Horizontal)
	}
	for j := y + 1; j < y2; j++ {
		g.Set(x, j, style.Vertical)
		g.Set(x2, j, style.Vertical)
	}
	g.Set(x, y, style.TopLeft)
	g.Set(x2, y, style.TopRight)
	g.Set(x, y2, style.BottomLeft)
	g.Set(x2, y2, style.BottomRight)
	return nil
}

// DrawHorizontalLine draws from x1 to x2 on row y, clipped to the grid.
func (g *Grid) DrawHorizontalLine(x1, y, x2 int, r rune) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := max(x1, 0); x <= min(x2, g.width-1); x++ {
		g.Set(x, y, r)
	}
}

// DrawVerticalLine draws from y1 to y2 in column x, clipped to the grid.
func (g *Grid) DrawVerticalLine(x, y1, y2 int, r rune) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := max(y1, 0); y <= min(y2, g.height-1); y++ {
		g.Set(x, y, r)
	}
}

// DrawLine draws a line of r between two cells using Bresenham's algorithm.
// It does not merge: free lines only fill empty cells.
func (g *Grid) DrawLine(a, b Cell, r rune) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	x, y := a.X, a.Y
	e := dx + dy
	for {
		if g.Get(x, y) == ' ' {
			g.Put(x, y, r)
		}
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// DrawOrthogonal draws a polyline of axis-aligned runs. Each cell gets only
// the arms the path actually uses, so bends become rounded corners and an
// end touching a box border becomes a tee. Diagonal runs fall back to
// DrawLine with a dot.
func (g *Grid) DrawOrthogonal(pts []Cell) error {
	if len(pts) < 2 {
		return fmt.Errorf("path must have at least 2 points")
	}

	arms := make(map[Cell]Arms)
	var order []Cell
	add := func(c Cell, a Arms) {
		if _, ok := arms[c]; !ok {
			order = append(order, c)
		}
		arms[c] |= a
	}

	for i := 1; i < len(pts); i++ {
		p1, p2 := pts[i-1], pts[i]
		h := heading(p1, p2)
		if h == 0 {
			if p1 != p2 {
				g.DrawLine(p1, p2, '·')
			}
			continue
		}
		step := Cell{}
		switch h {
		case ArmN:
			step.Y = -1
		case ArmS:
			step.Y = 1
		case ArmE:
			step.X = 1
		case ArmW:
			step.X = -1
		}
		add(p1, h)
		for c := (Cell{p1.X + step.X, p1.Y + step.Y}); c != p2; c = (Cell{c.X + step.X, c.Y + step.Y}) {
			add(c, h|h.Opposite())
		}
		add(p2, h.Opposite())
	}

	for _, c := range order {
		if g.inside(c.X, c.Y) {
			g.cells[c.Y][c.X] = g.merger.MergeArms(g.cells[c.Y][c.X], arms[c])
		}
	}
	return nil
}

// heading returns the single arm pointing from a to b on an axis-aligned run.
func heading(a, b Cell) Arms {
	switch {
	case a.X == b.X && b.Y < a.Y:
		return ArmN
	case a.X == b.X && b.Y > a.Y:
		return ArmS
	case a.Y == b.Y && b.X > a.X:
		return ArmE
	case a.Y == b.Y && b.X < a.X:
		return ArmW
	}
	return 0
}

// DrawArrow puts an arrowhead at the end of a run arriving from prev.
func (g *Grid) DrawArrow(prev, end Cell) {
	var r rune
	switch heading(prev, end) {
	case ArmN:
		r = ArrowUp
	case ArmS:
		r = ArrowDown
	case ArmE:
		r = ArrowRight
	case ArmW:
		r = ArrowLeft
	default:
		return
	}
	if g.merger.ASCII {
		r = map[rune]rune{ArrowUp: '^', ArrowDown: 'v', ArrowRight: '>', ArrowLeft: '<'}[r]
	}
	g.Put(end.X, end.Y, r)
}

// DrawArrowBefore puts an arrowhead on the cell next to end on the side of
// prev, pointing at end. Used when end sits on a box border.
func (g *Grid) DrawArrowBefore(prev, end Cell) {
	h := heading(prev, end)
	at := end
	switch h {
	case ArmN:
		at.Y++
	case ArmS:
		at.Y--
	case ArmE:
		at.X--
	case ArmW:
		at.X++
	default:
		return
	}
	if at == prev {
		g.DrawArrow(prev, end)
		return
	}
	g.DrawArrow(prev, at)
}

// DrawText writes text starting at x,y, overwriting what is there. Wide
// runes take two cells.
func (g *Grid) DrawText(x, y int, text string) {
	if y < 0 || y >= g.height {
		return
	}
	cx := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if cx >= g.width || (w == 2 && cx+1 >= g.width) {
			return
		}
		if cx >= 0 {
			g.cells[y][cx] = r
			if w == 2 {
				g.cells[y][cx+1] = 0
			}
		}
		cx += w
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
