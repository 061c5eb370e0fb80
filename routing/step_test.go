package routing

import (
	"math"
	"testing"

	"connroute/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pts(xy ...float64) []core.Point {
	out := make([]core.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, core.Pt(xy[i], xy[i+1]))
	}
	return out
}

func TestStepDiagonalDefault(t *testing.T) {
	route := Step(DefaultConfig(), StepInput{Start: core.Pt(0, 0), End: core.Pt(200, 200)})

	assert.Equal(t, core.ModeHorizontalFirst, route.Mode)
	assert.Equal(t, pts(0, 0, 100, 0, 100, 100, 200, 100, 200, 200), route.Points)
	assert.GreaterOrEqual(t, route.Points[1].Dist(route.Points[0]), DefaultConfig().MinStub)
}

func TestStepDegenerate(t *testing.T) {
	tests := []struct {
		name string
		end  core.Point
	}{
		{"near horizontal", core.Pt(100, 4)},
		{"near vertical", core.Pt(-3, 250)},
		{"same point", core.Pt(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route := Step(DefaultConfig(), StepInput{Start: core.Pt(0, 0), End: tt.end})
			assert.Equal(t, []core.Point{core.Pt(0, 0), tt.end}, route.Points)
		})
	}
}

func TestStepNonFinite(t *testing.T) {
	inputs := []StepInput{
		{Start: core.Pt(math.NaN(), 0), End: core.Pt(100, 100)},
		{Start: core.Pt(0, 0), End: core.Pt(math.Inf(1), 100)},
		{Start: core.Pt(0, 0), End: core.Pt(100, 100), Offset: core.Pt(0, math.Inf(-1))},
	}
	for _, in := range inputs {
		assert.Empty(t, Step(DefaultConfig(), in).Points)
	}
}

func TestStepVerticalStubBetweenStackedPorts(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("aligned", func(t *testing.T) {
		route := Step(cfg, StepInput{
			Start: core.Pt(100, 100), End: core.Pt(100, 300),
			StartDir: core.Down, EndDir: core.Up,
		})
		require.Len(t, route.Points, 2)
		first := route.Points[1].Sub(route.Points[0])
		assert.Zero(t, first.X)
		assert.GreaterOrEqual(t, first.Y, cfg.MinStub)
	})

	t.Run("shifted", func(t *testing.T) {
		route := Step(cfg, StepInput{
			Start: core.Pt(100, 100), End: core.Pt(180, 300),
			StartDir: core.Down, EndDir: core.Up,
		})
		assert.Equal(t, core.ModeVerticalFirst, route.Mode)
		assert.Equal(t, pts(100, 100, 100, 200, 180, 200, 180, 300), route.Points)
	})

	t.Run("close", func(t *testing.T) {
		route := Step(cfg, StepInput{
			Start: core.Pt(0, 0), End: core.Pt(200, 80),
			StartDir: core.Down, EndDir: core.Up,
		})
		first := route.Points[1].Sub(route.Points[0])
		assert.Zero(t, first.X)
		assert.GreaterOrEqual(t, first.Y, cfg.MinStub)
	})
}

func TestStepMinimumStub(t *testing.T) {
	route := Step(DefaultConfig(), StepInput{Start: core.Pt(0, 0), End: core.Pt(80, 200)})
	assert.Equal(t, pts(0, 0, 50, 0, 50, 100, 80, 100, 80, 200), route.Points)
}

func TestStepStubClampThenSnap(t *testing.T) {
	route := Step(DefaultConfig(), StepInput{Start: core.Pt(0, 0), End: core.Pt(60, 200)})
	assert.Equal(t, pts(0, 0, 60, 0, 60, 200), route.Points)
}

func TestStepTargetHugging(t *testing.T) {
	route := Step(DefaultConfig(), StepInput{
		Start: core.Pt(0, 0), End: core.Pt(200, 30),
		StartDir: core.Right, EndDir: core.Up,
	})
	assert.Equal(t, pts(0, 0, 100, 0, 100, -20, 200, -20, 200, 30), route.Points)

	n := len(route.Points)
	last := route.Points[n-1].Sub(route.Points[n-2])
	assert.Zero(t, last.X)
	assert.GreaterOrEqual(t, last.Y, DefaultConfig().MinStub)
}

func TestStepDirectionTable(t *testing.T) {
	tests := []struct {
		name     string
		startDir core.Direction
		endDir   core.Direction
		end      core.Point
		mode     core.Mode
		want     []core.Point
	}{
		{"horizontal to vertical is an L", core.Right, core.Up, core.Pt(200, 200),
			core.ModeHorizontalFirst, pts(0, 0, 200, 0, 200, 200)},
		{"vertical to horizontal is an L", core.Down, core.Left, core.Pt(200, 200),
			core.ModeVerticalFirst, pts(0, 0, 0, 200, 200, 200)},
		{"horizontal to horizontal", core.Right, core.Left, core.Pt(200, 100),
			core.ModeHorizontalFirst, pts(0, 0, 100, 0, 100, 100, 200, 100)},
		{"vertical to vertical", core.Up, core.Down, core.Pt(120, -200),
			core.ModeVerticalFirst, pts(0, 0, 0, -100, 120, -100, 120, -200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route := Step(DefaultConfig(), StepInput{
				Start: core.Pt(0, 0), End: tt.end,
				StartDir: tt.startDir, EndDir: tt.endDir,
			})
			assert.Equal(t, tt.mode, route.Mode)
			assert.Equal(t, tt.want, route.Points)
		})
	}
}

func TestStepUserIntent(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("vertical offset picks vertical-first", func(t *testing.T) {
		route := Step(cfg, StepInput{Start: core.Pt(0, 0), End: core.Pt(200, 200), Offset: core.Pt(0, 40)})
		assert.Equal(t, core.ModeVerticalFirst, route.Mode)
		assert.Equal(t, pts(0, 0, 0, 140, 100, 140, 100, 200, 200, 200), route.Points)
	})

	t.Run("horizontal offset picks horizontal-first", func(t *testing.T) {
		route := Step(cfg, StepInput{Start: core.Pt(0, 0), End: core.Pt(300, 200), Offset: core.Pt(40, 0)})
		assert.Equal(t, core.ModeHorizontalFirst, route.Mode)
		assert.Equal(t, pts(0, 0, 190, 0, 190, 100, 300, 100, 300, 200), route.Points)
	})

	t.Run("both axes keep the default", func(t *testing.T) {
		route := Step(cfg, StepInput{Start: core.Pt(0, 0), End: core.Pt(300, 200), Offset: core.Pt(20, 20)})
		assert.Equal(t, core.ModeVerticalFirst, route.Mode)
	})
}

func TestStepLockedMode(t *testing.T) {
	cfg := DefaultConfig()

	route := Step(cfg, StepInput{
		Start: core.Pt(0, 0), End: core.Pt(200, 200),
		Offset: core.Pt(0, 40), Mode: core.ModeHorizontalFirst,
	})
	assert.Equal(t, core.ModeHorizontalFirst, route.Mode)
	assert.Equal(t, pts(0, 0, 100, 0, 100, 140, 200, 140, 200, 200), route.Points)

	// port directions outrank the lock
	route = Step(cfg, StepInput{
		Start: core.Pt(0, 0), End: core.Pt(200, 200),
		StartDir: core.Down, Mode: core.ModeHorizontalFirst,
	})
	assert.Equal(t, core.ModeVerticalFirst, route.Mode)
}

func TestStepSnap(t *testing.T) {
	in := StepInput{Start: core.Pt(0, 0), End: core.Pt(100, 200), Offset: core.Pt(45, 0)}

	route := Step(DefaultConfig(), in)
	assert.Equal(t, pts(0, 0, 100, 0, 100, 200), route.Points)

	in.DisableSnap = true
	route = Step(DefaultConfig(), in)
	assert.Equal(t, pts(0, 0, 95, 0, 95, 100, 100, 100, 100, 200), route.Points)
}

func TestStepSkipsSnapThatFolds(t *testing.T) {
	// Snapping cy onto the end row would run the path past the end port and
	// straight back along the same line.
	in := StepInput{Start: core.Pt(98.56, 71.15), End: core.Pt(106.45, 124.33), EndDir: core.Right}
	route := Step(DefaultConfig(), in)

	assert.Equal(t, core.ModeVerticalFirst, route.Mode)
	require.Len(t, route.Points, 5)
	assert.False(t, folds(route.Points))
	assert.InDelta(t, 121.15, route.Points[1].Y, 1e-9)
	assert.InDelta(t, 156.45, route.Points[2].X, 1e-9)

	in.DisableSnap = true
	assert.Equal(t, route, Step(DefaultConfig(), in))
}

func TestFolds(t *testing.T) {
	assert.True(t, folds(pts(0, 0, 10, 0, 5, 0)))
	assert.True(t, folds(pts(0, 0, 0, 10, 20, 10, 10, 10)))
	assert.False(t, folds(pts(0, 0, 10, 0, 10, 10, 0, 10)))
	assert.False(t, folds(pts(0, 0, 10, 0)))
}

func TestModeFor(t *testing.T) {
	assert.Equal(t, core.ModeVerticalFirst, ModeFor(core.Down, core.None, 500, 1))
	assert.Equal(t, core.ModeHorizontalFirst, ModeFor(core.Left, core.Up, 1, 500))
	assert.Equal(t, core.ModeHorizontalFirst, ModeFor(core.None, core.Up, 500, 1))
	assert.Equal(t, core.ModeVerticalFirst, ModeFor(core.None, core.Right, 1, 500))
	assert.Equal(t, core.ModeHorizontalFirst, ModeFor(core.None, core.None, 100, 100))
	assert.Equal(t, core.ModeVerticalFirst, ModeFor(core.None, core.None, 101, 100))
}

func TestSimplify(t *testing.T) {
	assert.Equal(t, pts(0, 0, 10, 0, 10, 10),
		Simplify(pts(0, 0, 5, 0, 10, 0, 10, 0, 10, 10)))
	// reversals are kept
	assert.Equal(t, pts(0, 0, 10, 0, 5, 0), Simplify(pts(0, 0, 10, 0, 5, 0)))
	assert.Empty(t, Simplify(nil))
}

func TestStepShapeInvariants(t *testing.T) {
	cfg := DefaultConfig()
	coords := []float64{-300, -120, -40, -8, 8, 40, 120, 300}
	dirs := []core.Direction{core.None, core.Up, core.Down, core.Left, core.Right}
	offsets := []core.Point{{}, core.Pt(30, 0), core.Pt(0, -30)}

	for _, x := range coords {
		for _, y := range coords {
			for _, sd := range dirs {
				for _, ed := range dirs {
					for _, off := range offsets {
						in := StepInput{Start: core.Pt(0, 0), End: core.Pt(x, y), Offset: off, StartDir: sd, EndDir: ed}
						route := Step(cfg, in)

						require.GreaterOrEqual(t, len(route.Points), 2, "%+v", in)
						assert.Equal(t, in.Start, route.Points[0])
						assert.Equal(t, in.End, route.Points[len(route.Points)-1])
						assert.LessOrEqual(t, len(route.Points), 5)
						if len(route.Points) > 2 {
							for i := 1; i < len(route.Points); i++ {
								d := route.Points[i].Sub(route.Points[i-1])
								assert.True(t, d.X == 0 || d.Y == 0, "segment %d of %+v is not axis aligned", i, in)
							}
						}
						assert.Equal(t, route, Step(cfg, in))
					}
				}
			}
		}
	}
}
