package epicycles

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/curve"

	"github.com/tphakala/go-epicycles/internal/testutil"
)

// kappa is the control point offset approximating a quarter circle with one
// cubic Bezier.
const kappa = 0.5522847498307936

// circlePath builds a closed four-cubic approximation of a circle.
func circlePath(cx, cy, r float64) curve.BezPath {
	k := kappa * r
	return curve.BezPath{
		curve.MoveTo(curve.Pt(cx+r, cy)),
		curve.CubicTo(curve.Pt(cx+r, cy+k), curve.Pt(cx+k, cy+r), curve.Pt(cx, cy+r)),
		curve.CubicTo(curve.Pt(cx-k, cy+r), curve.Pt(cx-r, cy+k), curve.Pt(cx-r, cy)),
		curve.CubicTo(curve.Pt(cx-r, cy-k), curve.Pt(cx-k, cy-r), curve.Pt(cx, cy-r)),
		curve.CubicTo(curve.Pt(cx+k, cy-r), curve.Pt(cx+r, cy-k), curve.Pt(cx+r, cy)),
		curve.ClosePath(),
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"valid", Config{SampleCount: 100, ContourSamples: 2000}, false},
		{"minimal", Config{SampleCount: 1, ContourSamples: 1}, false},
		{"max sample count", Config{SampleCount: 10000, ContourSamples: 1}, false},
		{"zero sample count", Config{SampleCount: 0, ContourSamples: 2000}, true},
		{"negative sample count", Config{SampleCount: -5, ContourSamples: 2000}, true},
		{"sample count too large", Config{SampleCount: 10001, ContourSamples: 2000}, true},
		{"zero contour samples", Config{SampleCount: 100, ContourSamples: 0}, true},
		{"negative workers", Config{SampleCount: 100, ContourSamples: 2000, Workers: -1}, true},
		{"parallel with workers", Config{SampleCount: 100, ContourSamples: 2000, Parallel: true, Workers: 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	require.NoError(t, config.Validate())
	assert.Equal(t, defaultSampleCount, config.SampleCount)
	assert.Equal(t, defaultContourSamples, config.ContourSamples)
	assert.False(t, config.Parallel)
	assert.Zero(t, config.Workers)
}

func TestNew_NilConfig(t *testing.T) {
	a, err := New(nil)

	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Nil(t, a)
}

func TestNew_InvalidConfig(t *testing.T) {
	a, err := New(&Config{SampleCount: 0, ContourSamples: 2000})

	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Nil(t, a)
}

func TestAnimator_LoadPoints_Empty(t *testing.T) {
	a, err := New(DefaultConfig())
	require.NoError(t, err)

	assert.ErrorIs(t, a.LoadPoints(nil), ErrNoInput)
	assert.ErrorIs(t, a.LoadPoints([]curve.Point{}), ErrNoInput)
}

// TestAnimator_UnitSquare walks the canonical example end to end: four
// corners in, four vectors out, and the full tip retracing the corners at
// the sample times.
func TestAnimator_UnitSquare(t *testing.T) {
	corners := []curve.Point{
		curve.Pt(0, 0),
		curve.Pt(1, 0),
		curve.Pt(1, 1),
		curve.Pt(0, 1),
	}

	a, err := New(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, a.LoadPoints(corners))

	info := a.Info()
	assert.Equal(t, "radix2", info.Algorithm)
	assert.Equal(t, 4, info.Size)
	assert.Equal(t, 4, info.ActiveCount)

	for i, want := range corners {
		got := a.TipAt(float64(i) / 4)
		testutil.AssertPointClose(t, want, got, testutil.DefaultTolerance,
			"tip at t=%d/4", i)
	}
}

func TestAnimator_LoadPath(t *testing.T) {
	a, err := New(&Config{SampleCount: 64, ContourSamples: 200})
	require.NoError(t, err)
	require.NoError(t, a.LoadPath(circlePath(0, 0, 5)))

	info := a.Info()
	assert.Equal(t, 64, info.Size)
	assert.Equal(t, "radix2", info.Algorithm)

	// Every reconstructed tip stays near the circle.
	for i := 0; i <= 20; i++ {
		tip := a.TipAt(float64(i) / 20)
		radius := math.Hypot(tip.X, tip.Y)
		assert.InDelta(t, 5.0, radius, 0.05, "radius at t=%d/20", i)
	}
}

func TestAnimator_LoadPath_NoGeometry(t *testing.T) {
	a, err := New(DefaultConfig())
	require.NoError(t, err)

	assert.ErrorIs(t, a.LoadPath(nil), ErrNoInput)
	assert.ErrorIs(t, a.LoadPath(curve.BezPath{curve.MoveTo(curve.Pt(3, 4))}), ErrNoInput)

	// A zero-length cubic measures as nothing as well.
	degenerate := curve.BezPath{
		curve.MoveTo(curve.Pt(2, 2)),
		curve.CubicTo(curve.Pt(2, 2), curve.Pt(2, 2), curve.Pt(2, 2)),
	}
	assert.ErrorIs(t, a.LoadPath(degenerate), ErrNoInput)
}

func TestAnimator_ActiveCount(t *testing.T) {
	a, err := New(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, a.LoadPoints(flowerPoints(8)))

	assert.Equal(t, 8, a.ActiveCount())

	a.SetActiveCount(5)
	assert.Equal(t, 5, a.ActiveCount())

	a.SetActiveCount(-3)
	assert.Equal(t, 0, a.ActiveCount())

	a.SetActiveCount(100)
	assert.Equal(t, 8, a.ActiveCount())

	// Loading new input restores the full count.
	a.SetActiveCount(2)
	require.NoError(t, a.LoadPoints(flowerPoints(6)))
	assert.Equal(t, 6, a.ActiveCount())
}

func TestAnimator_TipAtMatchesEvaluate(t *testing.T) {
	a, err := New(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, a.LoadPoints(flowerPoints(12)))

	for _, tv := range []float64{0, 0.1, 0.25, 0.5, 0.9} {
		_, tip := a.Evaluate(tv)
		assert.Equal(t, tip, a.TipAt(tv), "t=%v", tv)
	}
}

func TestAnimator_EvaluateReusesBuffer(t *testing.T) {
	a, err := New(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, a.LoadPoints(flowerPoints(16)))

	vecs1, _ := a.Evaluate(0)
	vecs2, _ := a.Evaluate(0.5)

	require.Len(t, vecs1, 16)
	assert.Same(t, &vecs1[0], &vecs2[0])
}

func TestAnimator_Components(t *testing.T) {
	a, err := New(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, a.LoadPoints(flowerPoints(25)))

	components := a.Components()
	require.Len(t, components, 25)

	amps := make([]float64, len(components))
	for i, c := range components {
		amps[i] = c.Amplitude
		assert.GreaterOrEqual(t, c.Freq, -12, "component %d", i)
		assert.LessOrEqual(t, c.Freq, 12, "component %d", i)
	}
	testutil.AssertNonIncreasing(t, amps, 0, "amplitudes in energy order")
}

func TestAnimator_Trace(t *testing.T) {
	a, err := New(&Config{SampleCount: 32, ContourSamples: 100})
	require.NoError(t, err)
	require.NoError(t, a.LoadPath(circlePath(1, 2, 3)))

	contour := a.Trace(nil)
	require.Len(t, contour, 101)

	// The contour closes: integer frequencies return to their start.
	testutil.AssertPointClose(t, contour[0], contour[100], testutil.GeometryTolerance)

	for _, pt := range contour {
		assert.False(t, math.IsNaN(pt.X) || math.IsNaN(pt.Y))
	}
}

func TestAnimator_TraceAppends(t *testing.T) {
	a, err := New(&Config{SampleCount: 16, ContourSamples: 10})
	require.NoError(t, err)
	require.NoError(t, a.LoadPoints(flowerPoints(16)))

	sentinel := curve.Pt(123, 456)
	dst := []curve.Point{sentinel}

	dst = a.Trace(dst)
	require.Len(t, dst, 12)
	assert.Equal(t, sentinel, dst[0])
	assert.Equal(t, a.TipAt(0), dst[1])
}

func TestAnimator_TraceHonorsActiveCount(t *testing.T) {
	a, err := New(&Config{SampleCount: 32, ContourSamples: 50})
	require.NoError(t, err)
	require.NoError(t, a.LoadPath(circlePath(0, 0, 2)))

	a.SetActiveCount(3)
	contour := a.Trace(nil)

	require.Len(t, contour, 51)
	for i, pt := range contour {
		assert.Equal(t, a.TipAt(float64(i)/50), pt, "index %d", i)
	}
}

func TestAnimator_Reset(t *testing.T) {
	a, err := New(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, a.LoadPoints(flowerPoints(20)))

	a.Reset()

	info := a.Info()
	assert.Equal(t, "none", info.Algorithm)
	assert.Zero(t, info.Size)
	assert.Zero(t, info.ActiveCount)
	assert.Zero(t, info.MemoryUsage)

	// The animator accepts new input after a reset.
	require.NoError(t, a.LoadPoints(flowerPoints(5)))
	assert.Equal(t, 5, a.Info().Size)
}

func TestAnimator_Info(t *testing.T) {
	a, err := New(&Config{SampleCount: 100, ContourSamples: 500, Parallel: true, Workers: 2})
	require.NoError(t, err)
	require.NoError(t, a.LoadPoints(flowerPoints(100)))

	info := a.Info()
	assert.Equal(t, "bluestein", info.Algorithm)
	assert.Equal(t, 100, info.Size)
	assert.Equal(t, 100, info.ActiveCount)
	assert.Equal(t, 500, info.ContourSamples)
	assert.Positive(t, info.MemoryUsage)
	assert.True(t, info.Parallel)
}

func TestGetInfo(t *testing.T) {
	assert.Equal(t, Info{Algorithm: "none"}, GetInfo(nil))

	a, err := New(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, a.LoadPoints(flowerPoints(64)))

	assert.Equal(t, a.Info(), GetInfo(a))
}

func TestDecomposePoints(t *testing.T) {
	a, err := DecomposePoints(flowerPoints(10))
	require.NoError(t, err)

	assert.Equal(t, 10, a.Info().Size)

	_, err = DecomposePoints(nil)
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestResamplePath(t *testing.T) {
	line := curve.BezPath{
		curve.MoveTo(curve.Pt(0, 0)),
		curve.LineTo(curve.Pt(10, 0)),
	}

	points, err := ResamplePath(line, 5)
	require.NoError(t, err)
	require.Len(t, points, 5)
	for _, pt := range points {
		assert.GreaterOrEqual(t, pt.X, 0.0)
		assert.LessOrEqual(t, pt.X, 10.0)
	}

	_, err = ResamplePath(line, 0)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = ResamplePath(line, 10001)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestTraceSVG(t *testing.T) {
	const doc = `<svg viewBox="0 0 10 10"><path d="M 1 1 L 9 1 L 9 9 L 1 9 Z"/></svg>`

	contour, err := TraceSVG(strings.NewReader(doc), 32, 100)
	require.NoError(t, err)
	require.Len(t, contour, 101)

	inside := 0
	for _, pt := range contour {
		if pt.X >= 0.5 && pt.X <= 9.5 && pt.Y >= 0.5 && pt.Y <= 9.5 {
			inside++
		}
	}
	assert.Equal(t, len(contour), inside, "contour strays outside the square")
}

func TestTraceSVG_Defaults(t *testing.T) {
	const doc = `<svg><path d="M 0 0 L 4 0 L 4 4 Z"/></svg>`

	contour, err := TraceSVG(strings.NewReader(doc), 0, 0)
	require.NoError(t, err)
	assert.Len(t, contour, defaultContourSamples+1)
}

func TestTraceSVG_Errors(t *testing.T) {
	t.Run("no paths", func(t *testing.T) {
		_, err := TraceSVG(strings.NewReader(`<svg viewBox="0 0 1 1"></svg>`), 10, 10)
		assert.ErrorIs(t, err, ErrNoInput)
	})

	t.Run("malformed xml", func(t *testing.T) {
		_, err := TraceSVG(strings.NewReader(`<svg><path`), 10, 10)
		assert.Error(t, err)
	})

	t.Run("bad path data", func(t *testing.T) {
		_, err := TraceSVG(strings.NewReader(`<svg><path d="L 1 2"/></svg>`), 10, 10)
		assert.Error(t, err)
	})
}

// flowerPoints returns n points on a closed five-petal flower curve.
func flowerPoints(n int) []curve.Point {
	points := make([]curve.Point, n)
	for i := range points {
		theta := 2 * math.Pi * float64(i) / float64(n)
		r := 2 + math.Cos(5*theta)
		points[i] = curve.Pt(r*math.Cos(theta), r*math.Sin(theta))
	}
	return points
}
