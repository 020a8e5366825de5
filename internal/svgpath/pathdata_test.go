package svgpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/curve"

	"github.com/tphakala/go-epicycles/internal/testutil"
)

// TestParsePathData_OnlyCubicElements tests that every drawing command
// lowers to MoveTo/CubicTo/ClosePath.
func TestParsePathData_OnlyCubicElements(t *testing.T) {
	const d = "M 0 0 L 10 0 H 20 V 10 Q 25 15 30 10 T 40 10 " +
		"C 45 5 50 5 55 10 S 65 15 70 10 A 5 5 0 0 1 80 10 Z"

	path, err := ParsePathData(d)
	require.NoError(t, err)
	require.NotEmpty(t, path)

	for i, el := range path {
		assert.Contains(t,
			[]curve.PathElementKind{curve.MoveToKind, curve.CubicToKind, curve.ClosePathKind},
			el.Kind, "element %d", i)
	}
	assert.Equal(t, curve.MoveToKind, path[0].Kind)
	assert.Equal(t, curve.ClosePathKind, path[len(path)-1].Kind)
}

// TestParsePathData_RelativeAbsoluteAgree tests that relative commands
// resolve to the same geometry as their absolute forms.
func TestParsePathData_RelativeAbsoluteAgree(t *testing.T) {
	tests := []struct {
		name     string
		absolute string
		relative string
	}{
		{
			"Lines",
			"M 10 10 L 20 20 L 20 30",
			"m 10 10 l 10 10 l 0 10",
		},
		{
			"Horizontal and vertical",
			"M 5 5 H 15 V 25",
			"m 5 5 h 10 v 20",
		},
		{
			"Cubic",
			"M 10 10 C 15 0 25 0 30 10",
			"m 10 10 c 5 -10 15 -10 20 0",
		},
		{
			"Quadratic",
			"M 0 0 Q 5 10 10 0",
			"m 0 0 q 5 10 10 0",
		},
		{
			"Smooth chain",
			"M 0 0 C 0 10 10 10 10 0 S 20 -10 20 0",
			"m 0 0 c 0 10 10 10 10 0 s 10 -10 10 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abs, err := ParsePathData(tt.absolute)
			require.NoError(t, err)
			rel, err := ParsePathData(tt.relative)
			require.NoError(t, err)
			assert.Equal(t, abs, rel)
		})
	}
}

// TestParsePathData_QuadRaise tests the quadratic-to-cubic control points.
func TestParsePathData_QuadRaise(t *testing.T) {
	path, err := ParsePathData("M 0 0 Q 3 6 6 0")
	require.NoError(t, err)
	require.Len(t, path, 2)
	require.Equal(t, curve.CubicToKind, path[1].Kind)

	testutil.AssertPointClose(t, curve.Pt(2, 4), path[1].P0, testutil.DefaultTolerance)
	testutil.AssertPointClose(t, curve.Pt(4, 4), path[1].P1, testutil.DefaultTolerance)
	testutil.AssertPointClose(t, curve.Pt(6, 0), path[1].P2, testutil.DefaultTolerance)
}

// TestParsePathData_SmoothReflection tests the control point mirroring for
// S and T, and its reset after a non-curve command.
func TestParsePathData_SmoothReflection(t *testing.T) {
	t.Run("S reflects the cubic control", func(t *testing.T) {
		path, err := ParsePathData("M 0 0 C 0 10 10 10 10 0 S 20 -10 20 0")
		require.NoError(t, err)
		require.Len(t, path, 3)
		assert.Equal(t, curve.Pt(10, -10), path[2].P0)
	})

	t.Run("S after a line starts at the pen", func(t *testing.T) {
		path, err := ParsePathData("M 0 0 L 5 0 S 10 5 10 0")
		require.NoError(t, err)
		require.Len(t, path, 3)
		assert.Equal(t, curve.Pt(5, 0), path[2].P0)
	})

	t.Run("T reflects the quadratic control", func(t *testing.T) {
		path, err := ParsePathData("M 0 0 Q 5 10 10 0 T 20 0")
		require.NoError(t, err)
		require.Len(t, path, 3)

		want := curve.QuadBez{
			P0: curve.Pt(10, 0),
			P1: curve.Pt(15, -10), // 2*(10,0) - (5,10)
			P2: curve.Pt(20, 0),
		}.Raise()
		testutil.AssertPointClose(t, want.P1, path[2].P0, testutil.DefaultTolerance)
		testutil.AssertPointClose(t, want.P2, path[2].P1, testutil.DefaultTolerance)
		testutil.AssertPointClose(t, want.P3, path[2].P2, testutil.DefaultTolerance)
	})
}

// TestParsePathData_Arc tests arc decomposition invariants: endpoints are
// preserved, each piece spans at most a quarter turn, and the on-curve
// joins stay on the circle.
func TestParsePathData_Arc(t *testing.T) {
	path, err := ParsePathData("M 0 0 A 5 5 0 0 1 10 0")
	require.NoError(t, err)

	// A semicircle of radius 5 needs two quarter-turn cubics.
	require.Len(t, path, 3)
	require.Equal(t, curve.CubicToKind, path[1].Kind)
	require.Equal(t, curve.CubicToKind, path[2].Kind)

	testutil.AssertPointClose(t, curve.Pt(10, 0), path[2].P2, testutil.GeometryTolerance,
		"arc endpoint")

	center := curve.Pt(5, 0)
	for _, join := range []curve.Point{path[1].P2, path[2].P2} {
		r := join.Sub(center).Hypot()
		assert.InDelta(t, 5.0, r, testutil.GeometryTolerance, "join off the circle")
	}
}

// TestParsePathData_ArcDegenerate tests the SVG error recovery rules.
func TestParsePathData_ArcDegenerate(t *testing.T) {
	t.Run("Zero radius draws the chord", func(t *testing.T) {
		path, err := ParsePathData("M 0 0 A 0 5 0 0 1 10 0")
		require.NoError(t, err)
		require.Len(t, path, 2)
		require.Equal(t, curve.CubicToKind, path[1].Kind)
		assert.Equal(t, curve.Pt(10, 0), path[1].P2)
	})

	t.Run("Arc to the pen position vanishes", func(t *testing.T) {
		path, err := ParsePathData("M 5 5 A 3 3 0 0 1 5 5")
		require.NoError(t, err)
		assert.Len(t, path, 1)
	})

	t.Run("Oversized chord scales the radii", func(t *testing.T) {
		// Radius 1 cannot span a chord of 10; the radii grow to fit and
		// the endpoints must still be honored.
		path, err := ParsePathData("M 0 0 A 1 1 0 0 1 10 0")
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(path), 2)
		last := path[len(path)-1]
		testutil.AssertPointClose(t, curve.Pt(10, 0), last.P2, testutil.GeometryTolerance)
	})
}

// TestParsePathData_ImplicitLineTo tests that extra moveto pairs continue
// as linetos.
func TestParsePathData_ImplicitLineTo(t *testing.T) {
	path, err := ParsePathData("M 0 0 10 0 20 10")
	require.NoError(t, err)
	require.Len(t, path, 3)
	assert.Equal(t, curve.MoveToKind, path[0].Kind)
	assert.Equal(t, curve.CubicToKind, path[1].Kind)
	assert.Equal(t, curve.Pt(10, 0), path[1].P2)
	assert.Equal(t, curve.Pt(20, 10), path[2].P2)

	rel, err := ParsePathData("m 5 5 5 0")
	require.NoError(t, err)
	require.Len(t, rel, 2)
	assert.Equal(t, curve.Pt(5, 5), rel[0].P0)
	assert.Equal(t, curve.Pt(10, 5), rel[1].P2)
}

// TestParsePathData_NumberFormats tests the compressed syntax real SVG
// exporters emit.
func TestParsePathData_NumberFormats(t *testing.T) {
	t.Run("Signs as separators", func(t *testing.T) {
		path, err := ParsePathData("M.5.5L-1-2")
		require.NoError(t, err)
		require.Len(t, path, 2)
		assert.Equal(t, curve.Pt(0.5, 0.5), path[0].P0)
		assert.Equal(t, curve.Pt(-1, -2), path[1].P2)
	})

	t.Run("Exponents", func(t *testing.T) {
		path, err := ParsePathData("M 1e2 1E-1 L 3 4")
		require.NoError(t, err)
		assert.Equal(t, curve.Pt(100, 0.1), path[0].P0)
	})

	t.Run("Packed arc flags", func(t *testing.T) {
		path, err := ParsePathData("M 0 0 A 5 5 0 01 10 0")
		require.NoError(t, err)
		last := path[len(path)-1]
		testutil.AssertPointClose(t, curve.Pt(10, 0), last.P2, testutil.GeometryTolerance)
	})
}

// TestParsePathData_Errors tests rejection of malformed data with the
// sentinel error.
func TestParsePathData_Errors(t *testing.T) {
	tests := []struct {
		name string
		d    string
	}{
		{"Drawing before moveto", "L 10 0"},
		{"Missing coordinate", "M 0"},
		{"Unknown command", "M 0 0 X 3 4"},
		{"Cubic with missing points", "M 0 0 C 1 2 3"},
		{"Bad arc flag", "M 0 0 A 5 5 0 2 1 10 0"},
		{"Dangling sign", "M 0 0 L - 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePathData(tt.d)
			assert.ErrorIs(t, err, ErrBadPathData)
		})
	}

	t.Run("Empty data is an empty path", func(t *testing.T) {
		path, err := ParsePathData("")
		assert.NoError(t, err)
		assert.Empty(t, path)
	})
}

// TestParsePathData_ArcSweepDirections tests that the sweep flag picks the
// mirror-image arc.
func TestParsePathData_ArcSweepDirections(t *testing.T) {
	up, err := ParsePathData("M 0 0 A 5 5 0 0 0 10 0")
	require.NoError(t, err)
	down, err := ParsePathData("M 0 0 A 5 5 0 0 1 10 0")
	require.NoError(t, err)

	// The two arcs bow to opposite sides of the chord.
	upMid := up[1].P2
	downMid := down[1].P2
	assert.InDelta(t, -upMid.Y, downMid.Y, testutil.GeometryTolerance)
	assert.False(t, math.Signbit(upMid.Y) == math.Signbit(downMid.Y) &&
		upMid.Y != 0, "arcs must bow apart")
}
