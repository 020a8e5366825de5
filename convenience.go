package epicycles

import (
	"fmt"
	"io"

	"honnef.co/go/curve"

	"github.com/tphakala/go-epicycles/internal/resample"
	"github.com/tphakala/go-epicycles/internal/svgpath"
)

// DecomposePoints creates an Animator with default configuration, preloaded
// with the given points. This is the shortest route from a point set to
// Evaluate and Trace.
func DecomposePoints(points []curve.Point) (Animator, error) {
	a, err := New(DefaultConfig())
	if err != nil {
		return nil, err
	}

	if err := a.LoadPoints(points); err != nil {
		return nil, err
	}

	return a, nil
}

// ResamplePath extracts n points from a Bezier path, spaced uniformly by
// arc length. n must lie in 1..10000. Degenerate geometry does not error;
// it yields n points at the origin.
func ResamplePath(path curve.BezPath, n int) ([]curve.Point, error) {
	if n < minSampleCount || n > maxSampleCount {
		return nil, fmt.Errorf("%w: %d outside %d..%d",
			ErrInvalidSize, n, minSampleCount, maxSampleCount)
	}

	return resample.ResamplePath(path, n), nil
}

// TraceSVG parses an SVG document from r, resamples all its paths as one
// multi-subpath curve, decomposes, and returns the traced contour of
// contourSamples+1 points. Non-positive sampleCount or contourSamples fall
// back to the defaults.
func TraceSVG(r io.Reader, sampleCount, contourSamples int) ([]curve.Point, error) {
	doc, err := svgpath.Parse(r)
	if err != nil {
		return nil, err
	}

	var combined curve.BezPath
	for _, p := range doc.Paths() {
		combined = append(combined, p...)
	}
	if len(combined) == 0 {
		return nil, fmt.Errorf("%w: document has no paths", ErrNoInput)
	}

	config := DefaultConfig()
	if sampleCount > 0 {
		config.SampleCount = sampleCount
	}
	if contourSamples > 0 {
		config.ContourSamples = contourSamples
	}

	a, err := New(config)
	if err != nil {
		return nil, err
	}

	if err := a.LoadPath(combined); err != nil {
		return nil, err
	}

	return a.Trace(nil), nil
}
