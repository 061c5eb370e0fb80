package export_test

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"connroute/core"
	"connroute/export"
	"connroute/routing"
	"connroute/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stacked(t *testing.T, label string) *scene.Layout {
	t.Helper()
	s := &scene.Scene{
		Metadata: scene.Metadata{Name: "stack"},
		Shapes: []core.Shape{
			{ID: "a", X: 0, Y: 0, Width: 100, Height: 40},
			{ID: "b", X: 0, Y: 120, Width: 100, Height: 40},
		},
		Connectors: []scene.Connector{{ID: "ab", FromID: "a", ToID: "b", Label: label}},
	}
	l, err := scene.Route(s, routing.DefaultConfig())
	require.NoError(t, err)
	return l
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected export.Format
		wantErr  bool
	}{
		{"ascii", export.FormatASCII, false},
		{"text", export.FormatASCII, false},
		{"txt", export.FormatASCII, false},
		{"SVG", export.FormatSVG, false},
		{"png", export.FormatPNG, false},
		{"json", export.FormatJSON, false},
		{"snap", export.FormatSnapshot, false},
		{"mermaid", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := export.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNewExporter(t *testing.T) {
	for _, f := range export.GetAvailableFormats() {
		e, err := export.NewExporter(f, export.DefaultOptions())
		require.NoError(t, err, f)
		assert.NotEmpty(t, e.GetFormatName())
		assert.Contains(t, export.GetFormatDescriptions(), f)
	}

	_, err := export.NewExporter("gif", export.DefaultOptions())
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	f, ok := export.FormatForPath("out/diagram.SVG")
	assert.True(t, ok)
	assert.Equal(t, export.FormatSVG, f)

	f, ok = export.FormatForPath("routes.snap")
	assert.True(t, ok)
	assert.Equal(t, export.FormatSnapshot, f)

	_, ok = export.FormatForPath("diagram.gif")
	assert.False(t, ok)
}

func TestEmptyLayout(t *testing.T) {
	l, err := scene.Route(&scene.Scene{}, routing.DefaultConfig())
	require.NoError(t, err)

	for _, f := range export.GetAvailableFormats() {
		e, err := export.NewExporter(f, export.DefaultOptions())
		require.NoError(t, err)
		_, err = e.Export(l)
		assert.ErrorIs(t, err, export.ErrEmptyLayout, f)
	}
}

func TestASCIIExport(t *testing.T) {
	opts := export.DefaultOptions()
	opts.Margin = 0
	opts.Verify = true

	out, err := export.NewASCIIExporter(opts).Export(stacked(t, ""))
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"┌─────────┐",
		"│    a    │",
		"└────┬────┘",
		"     │",
		"     │",
		"     ▼",
		"┌────┴────┐",
		"│    b    │",
		"└─────────┘",
	}, "\n")+"\n", string(out))
}

func TestSVGExport(t *testing.T) {
	out, err := export.NewSVGExporter(export.DefaultOptions()).Export(stacked(t, "a<b"))
	require.NoError(t, err)
	svg := string(out)

	assert.True(t, strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="-20 -20 140 200" width="140" height="200">`))
	assert.Contains(t, svg, `<rect id="shape-a" x="0" y="0" width="100" height="40" rx="4"/>`)
	assert.Contains(t, svg, `<rect id="shape-b" x="0" y="120" width="100" height="40" rx="4"/>`)
	assert.Contains(t, svg, `<path id="connector-ab" d="M 50 40 L 50 120" marker-end="url(#arrow)"/>`)
	assert.Contains(t, svg, `>a&lt;b</text>`)
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))
}

func TestJSONExport(t *testing.T) {
	out, err := export.NewJSONExporter().Export(stacked(t, "go"))
	require.NoError(t, err)

	var doc export.Document
	require.NoError(t, json.Unmarshal(out, &doc))

	assert.Equal(t, "stack", doc.Metadata.Name)
	assert.Len(t, doc.Shapes, 2)
	require.Len(t, doc.Paths, 1)

	p := doc.Paths[0]
	assert.Equal(t, "ab", p.ID)
	assert.Equal(t, core.PortBottom, p.From.ID)
	assert.Equal(t, core.Down, p.From.Dir)
	assert.Equal(t, core.PortTop, p.To.ID)
	assert.Equal(t, core.Straight, p.LineType)
	assert.Empty(t, p.Mode)
	assert.Equal(t, "M 50 40 L 50 120", p.D)
	assert.InDelta(t, 80, p.Length, 1e-9)
	require.NotNil(t, p.Label)
	assert.Equal(t, "go", p.Label.Text)
	assert.Equal(t, core.Pt(50, 80), p.Label.At)
	assert.InDelta(t, 0.5, p.Label.T, 1e-9)

	assert.Contains(t, string(out), `"lineType": "straight"`)
}

func TestPNGExport(t *testing.T) {
	l := stacked(t, "")
	e := export.NewPNGExporter(export.DefaultOptions())

	w, h := e.ImageSize(l)
	assert.Equal(t, 140, w)
	assert.Equal(t, 200, h)

	out, err := e.Export(l)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 140, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	r, _, _, _ := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r, "background is white")

	r, _, _, _ = img.At(70, 100).RGBA()
	assert.Less(t, r, uint32(0x8000), "connector is drawn")
}

func TestPNGScale(t *testing.T) {
	opts := export.DefaultOptions()
	opts.Scale = 2
	opts.Margin = 0
	w, h := export.NewPNGExporter(opts).ImageSize(stacked(t, ""))
	assert.Equal(t, 200, w)
	assert.Equal(t, 320, h)
}

func TestSnapshotRoundTrip(t *testing.T) {
	l := stacked(t, "go")
	out, err := export.NewSnapshotExporter().Export(l)
	require.NoError(t, err)

	snap, err := export.ReadSnapshot(out)
	require.NoError(t, err)

	assert.Equal(t, export.SnapshotVersion, snap.Version)
	assert.Equal(t, l.Scene, snap.Scene)
	require.Len(t, snap.Paths, 1)
	assert.Equal(t, "ab", snap.Paths[0].ConnectorID)
	assert.Equal(t, core.PortBottom, snap.Paths[0].From)
	assert.Equal(t, "M 50 40 L 50 120", snap.Paths[0].D)
	assert.Equal(t, []core.Point{core.Pt(50, 40), core.Pt(50, 120)}, snap.Paths[0].Points)

	relayout, err := scene.Route(snap.Scene, routing.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, l.Paths[0].Result.Points, relayout.Paths[0].Result.Points)
}

func TestReadSnapshotRejectsGarbage(t *testing.T) {
	_, err := export.ReadSnapshot([]byte("not a snapshot"))
	assert.Error(t, err)
}
