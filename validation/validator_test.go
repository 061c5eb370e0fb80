package validation

import (
	"strings"
	"testing"

	"connroute/core"
	"connroute/render"
	"connroute/routing"
	"connroute/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diagram(rows ...string) string {
	return strings.Join(rows, "\n")
}

func messages(errs []GlyphError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.String()
	}
	return strings.Join(parts, "\n")
}

func TestGlyphChecker(t *testing.T) {
	tests := []struct {
		name    string
		diagram string
		strict  bool
		errMsg  string // empty means no errors
	}{
		{name: "horizontal line", diagram: diagram("─────")},
		{name: "vertical line", diagram: diagram("│", "│", "│")},
		{name: "broken horizontal line", diagram: diagram("──│──"), errMsg: "does not reach back"},
		{name: "broken vertical line", diagram: diagram("│", "─", "│"), errMsg: "does not reach back"},
		{name: "box", diagram: diagram("┌───┐", "│   │", "└───┘")},
		{name: "corner facing a line side", diagram: diagram("┌│"), errMsg: "reaching east"},
		{name: "line touching a line side", diagram: diagram("─────", "  │  "), errMsg: "reaching north"},
		{name: "cross", diagram: diagram(" │ ", "─┼─", " │ ")},
		{name: "tee", diagram: diagram(" │ ", " ├─", " │ ")},
		{name: "open tee passes leniently", diagram: diagram(" │ ", " ├ ", " │ ")},
		{name: "open tee fails strictly", diagram: diagram(" │ ", " ├ ", " │ "), strict: true, errMsg: "blank cell"},
		{name: "right arrow", diagram: diagram("──▶")},
		{name: "down arrow", diagram: diagram("│", "▼")},
		{name: "line into arrow side", diagram: diagram("─▲"), errMsg: "side of arrowhead"},
		{name: "arrow without line", diagram: diagram("▶"), strict: true, errMsg: "no line on its west side"},
		{name: "ascii box", diagram: diagram("+---+", "|   |", "+---+"), strict: true},
		{name: "ascii letter is text", diagram: diagram("-v")},
		{name: "mixed glyphs", diagram: diagram("+─+"), strict: true, errMsg: "mixes ASCII and Unicode"},
		{name: "wide text", diagram: diagram("世──")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewGlyphChecker()
			v.SetStrictMode(tt.strict)
			errs := v.Check(tt.diagram)

			if tt.errMsg == "" {
				assert.Empty(t, errs, messages(errs))
				return
			}
			require.NotEmpty(t, errs)
			assert.Contains(t, messages(errs), tt.errMsg)
		})
	}
}

func TestGlyphCheckerComplexDiagram(t *testing.T) {
	d := diagram(
		"┌─────┐     ┌─────┐",
		"│  A  ├────▶│  B  │",
		"└──┬──┘     └──┬──┘",
		"   │           │",
		"   ▼           ▼",
		"┌─────┐     ┌─────┐",
		"│  C  │     │  D  │",
		"└─────┘     └─────┘",
	)

	v := NewGlyphChecker()
	v.SetStrictMode(true)
	errs := v.Check(d)
	assert.Empty(t, errs, messages(errs))
}

func TestToGridPadsWideRunes(t *testing.T) {
	assert.Equal(t, [][]rune{{'a', '世', 0, 'b'}, {'c'}}, toGrid("a世b\nc\n"))
}

func TestRenderedLayoutsJoinUp(t *testing.T) {
	s := &scene.Scene{
		Shapes: []core.Shape{
			{ID: "a", X: 0, Y: 0, Width: 100, Height: 40},
			{ID: "b", X: 240, Y: 160, Width: 100, Height: 40},
			{ID: "c", X: 0, Y: 240, Width: 100, Height: 40},
		},
		Connectors: []scene.Connector{
			{ID: "ab", FromID: "a", ToID: "b", LineType: core.Step},
			{ID: "ac", FromID: "a", ToID: "c", LineType: core.Step, Label: "x"},
		},
	}
	l, err := scene.Route(s, routing.DefaultConfig())
	require.NoError(t, err)

	for _, ascii := range []bool{false, true} {
		opts := render.DefaultOptions()
		opts.ASCII = ascii
		out, err := render.NewRenderer(opts).Render(l)
		require.NoError(t, err)

		errs := NewGlyphChecker().Check(out)
		assert.Empty(t, errs, "%s\n%s", out, messages(errs))
	}
}
