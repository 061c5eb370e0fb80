// Package validation checks scenes before routing and rendered diagrams
// after it.
package validation

import (
	"fmt"
	"strings"

	"connroute/canvas"
)

// GlyphChecker checks that a rendered diagram joins up: every arm of a
// line glyph must meet a glyph reaching back, an arrowhead on the same
// axis, or a cell that is not part of a line.
type GlyphChecker struct {
	errors []GlyphError
	// strict also flags arms ending in blank cells and mixed ASCII/Unicode
	strict bool
}

// GlyphError is a problem at one cell of a rendered diagram.
type GlyphError struct {
	X, Y    int
	Char    rune
	Context string
	Message string
}

// NewGlyphChecker creates a checker in lenient mode.
func NewGlyphChecker() *GlyphChecker {
	return &GlyphChecker{}
}

// SetStrictMode enables or disables strict checking.
func (v *GlyphChecker) SetStrictMode(strict bool) {
	v.strict = strict
}

var neighbours = []struct {
	arm    canvas.Arms
	dx, dy int
	name   string
}{
	{canvas.ArmN, 0, -1, "north"},
	{canvas.ArmE, 1, 0, "east"},
	{canvas.ArmS, 0, 1, "south"},
	{canvas.ArmW, -1, 0, "west"},
}

// Check validates a rendered diagram and returns every problem found.
func (v *GlyphChecker) Check(diagram string) []GlyphError {
	v.errors = nil
	grid := toGrid(diagram)

	ascii, unicode := false, false
	for y := range grid {
		for x, char := range grid[y] {
			switch {
			case canvas.ArmsOf(char) != 0:
				if canvas.IsASCIILine(char) {
					ascii = true
				} else {
					unicode = true
				}
				v.checkLine(grid, x, y, char)
			case v.isArrow(grid, x, y):
				v.checkArrow(grid, x, y, char)
			}
		}
	}

	if v.strict && ascii && unicode {
		v.addError(0, 0, ' ', "diagram", "mixes ASCII and Unicode line glyphs")
	}
	return v.errors
}

func (v *GlyphChecker) checkLine(grid [][]rune, x, y int, char rune) {
	arms := canvas.ArmsOf(char)
	for _, n := range neighbours {
		if !arms.Has(n.arm) {
			continue
		}
		nx, ny := x+n.dx, y+n.dy
		next := v.getChar(grid, nx, ny)
		ctx := fmt.Sprintf("%s=%c", n.name, next)

		switch {
		case canvas.ArmsOf(next) != 0:
			if !canvas.ArmsOf(next).Has(n.arm.Opposite()) {
				v.addError(x, y, char, ctx, "line reaching %s meets %c which does not reach back", n.name, next)
			}
		case v.isArrow(grid, nx, ny):
			if !sameAxis(canvas.ArrowArm(next), n.arm) {
				v.addError(x, y, char, ctx, "line reaching %s meets the side of arrowhead %c", n.name, next)
			}
		case next == ' ' || next == 0:
			// box corners drawn with '+' reach every way
			if v.strict && char != '+' {
				v.addError(x, y, char, ctx, "line reaching %s ends in a blank cell", n.name)
			}
		}
	}
}

func (v *GlyphChecker) checkArrow(grid [][]rune, x, y int, char rune) {
	tail := canvas.ArrowArm(char)
	for _, n := range neighbours {
		if n.arm != tail {
			continue
		}
		next := v.getChar(grid, x+n.dx, y+n.dy)
		if !canvas.ArmsOf(next).Has(n.arm.Opposite()) && v.strict {
			v.addError(x, y, char, fmt.Sprintf("%s=%c", n.name, next), "arrowhead has no line on its %s side", n.name)
		}
	}
}

// isArrow treats the ASCII arrowheads (which are also letters and
// punctuation) as arrows only when a line feeds their tail.
func (v *GlyphChecker) isArrow(grid [][]rune, x, y int) bool {
	char := v.getChar(grid, x, y)
	if !canvas.IsArrow(char) {
		return false
	}
	switch char {
	case canvas.ArrowUp, canvas.ArrowDown, canvas.ArrowLeft, canvas.ArrowRight:
		return true
	}
	tail := canvas.ArrowArm(char)
	for _, n := range neighbours {
		if n.arm == tail {
			return canvas.ArmsOf(v.getChar(grid, x+n.dx, y+n.dy)).Has(tail.Opposite())
		}
	}
	return false
}

func sameAxis(a, b canvas.Arms) bool {
	if a == 0 || b == 0 {
		return false
	}
	return (a&canvas.ArmsVertical != 0) == (b&canvas.ArmsVertical != 0)
}

// toGrid splits a diagram into rows of cells, padding after wide runes so
// columns line up with the terminal.
func toGrid(diagram string) [][]rune {
	lines := strings.Split(strings.TrimRight(diagram, "\n"), "\n")
	grid := make([][]rune, len(lines))
	for i, line := range lines {
		row := make([]rune, 0, len(line))
		for _, r := range line {
			row = append(row, r)
			for w := canvas.StringWidth(string(r)); w > 1; w-- {
				row = append(row, 0)
			}
		}
		grid[i] = row
	}
	return grid
}

func (v *GlyphChecker) getChar(grid [][]rune, x, y int) rune {
	if y < 0 || y >= len(grid) {
		return ' '
	}
	if x < 0 || x >= len(grid[y]) {
		return ' '
	}
	return grid[y][x]
}

func (v *GlyphChecker) addError(x, y int, char rune, context, format string, args ...interface{}) {
	v.errors = append(v.errors, GlyphError{
		X:       x,
		Y:       y,
		Char:    char,
		Context: context,
		Message: fmt.Sprintf(format, args...),
	})
}

func (e GlyphError) String() string {
	return fmt.Sprintf("(%d,%d) '%c' [%s]: %s", e.X, e.Y, e.Char, e.Context, e.Message)
}

func (e GlyphError) Error() string {
	return e.String()
}
