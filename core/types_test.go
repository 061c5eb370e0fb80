package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeGeometry(t *testing.T) {
	s := Shape{ID: "a", X: 10, Y: 20, Width: 100, Height: 40}

	assert.Equal(t, Pt(60, 40), s.Center())
	assert.True(t, s.Contains(Pt(10, 20)), "top-left corner is on the shape")
	assert.True(t, s.Contains(Pt(110, 60)), "bottom-right corner is on the shape")
	assert.False(t, s.Contains(Pt(111, 60)))

	b := s.Bounds()
	assert.Equal(t, 100.0, b.Width())
	assert.Equal(t, 40.0, b.Height())
}

func TestBoundsUnion(t *testing.T) {
	a := Bounds{Min: Pt(0, 0), Max: Pt(10, 10)}
	b := Bounds{Min: Pt(-5, 5), Max: Pt(3, 20)}

	u := a.Union(b)
	assert.Equal(t, Pt(-5, 0), u.Min)
	assert.Equal(t, Pt(10, 20), u.Max)

	e := a.Extend(Pt(15, -1))
	assert.Equal(t, Pt(0, -1), e.Min)
	assert.Equal(t, Pt(15, 10), e.Max)
}

func TestDirection(t *testing.T) {
	tests := []struct {
		dir        Direction
		opposite   Direction
		vertical   bool
		horizontal bool
		vec        Point
	}{
		{Up, Down, true, false, Pt(0, -1)},
		{Down, Up, true, false, Pt(0, 1)},
		{Left, Right, false, true, Pt(-1, 0)},
		{Right, Left, false, true, Pt(1, 0)},
		{None, None, false, false, Pt(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			assert.Equal(t, tt.opposite, tt.dir.Opposite())
			assert.Equal(t, tt.vertical, tt.dir.IsVertical())
			assert.Equal(t, tt.horizontal, tt.dir.IsHorizontal())
			assert.Equal(t, tt.vec, tt.dir.Vector())
		})
	}
}

func TestParseDirectionAcceptsSideNames(t *testing.T) {
	for in, want := range map[string]Direction{
		"top":    Up,
		"bottom": Down,
		"Left":   Left,
		"right":  Right,
		"":       None,
	} {
		got, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDirection("diagonal")
	assert.Error(t, err)
}

func TestPortIDs(t *testing.T) {
	seen := map[PortID]bool{}
	for _, id := range PortIDs {
		assert.True(t, id.Valid(), id)
		assert.False(t, seen[id], "duplicate port id %s", id)
		seen[id] = true

		assert.True(t, id.Direction().Known(), id)
		assert.Equal(t, id, id.Mirror().Mirror(), "mirror is an involution for %s", id)
		assert.Equal(t, id.Direction().Opposite(), id.Mirror().Direction(), id)
	}
	assert.Len(t, seen, 16)

	_, err := ParsePortID("middle")
	assert.Error(t, err)

	id, err := ParsePortID("")
	require.NoError(t, err)
	assert.Equal(t, PortNone, id)
}

func TestLineTypeJSON(t *testing.T) {
	type wrapper struct {
		Type LineType `json:"lineType"`
	}

	data, err := json.Marshal(wrapper{Type: Step})
	require.NoError(t, err)
	assert.JSONEq(t, `{"lineType":"step"}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"lineType":"curve"}`), &w))
	assert.Equal(t, Curve, w.Type)

	assert.Error(t, json.Unmarshal([]byte(`{"lineType":"zigzag"}`), &w))
}

func TestLineTypeNextCycles(t *testing.T) {
	assert.Equal(t, Step, Straight.Next())
	assert.Equal(t, Curve, Step.Next())
	assert.Equal(t, Straight, Curve.Next())
}
