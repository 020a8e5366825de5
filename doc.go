// Package epicycles reconstructs closed 2D curves as sums of rotating
// vectors, in pure Go.
//
// A closed curve sampled at N points has an exact representation as N
// vectors, each spinning at a fixed integer frequency: the discrete Fourier
// coefficients of the points read as complex numbers. Drawn tip to tail,
// the vectors form a chain whose endpoint retraces the curve once per
// period. Truncating the chain to its largest vectors yields progressively
// smoother approximations, which is what makes the decomposition useful for
// animation and curve analysis.
//
// # Features
//
//   - Exact decomposition for any point count: power-of-two sizes run a
//     radix-2 FFT, all other sizes Bluestein's chirp-z algorithm
//   - Arc-length-uniform resampling of cubic Bezier paths, with proportional
//     point allocation across subpaths
//   - SVG ingestion: path data (all ten command types), polylines, polygons,
//     group transforms
//   - Energy-ordered vectors with per-vector frequency and amplitude
//   - Partial evaluation: animate with the K dominant vectors only
//   - Optional parallel contour tracing across goroutines
//   - Allocation-free per-frame evaluation at steady state
//
// # Quick Start
//
// For one-shot tracing of an SVG file:
//
//	f, err := os.Open("curve.svg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	contour, err := epicycles.TraceSVG(f, 100, 2000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For frame-by-frame animation with a reusable Animator:
//
//	config := &epicycles.Config{
//	    SampleCount:    100,
//	    ContourSamples: 2000,
//	}
//	anim, err := epicycles.New(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := anim.LoadPath(path); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Render one revolution
//	for frame := 0; frame < frames; frame++ {
//	    t := float64(frame) / float64(frames)
//	    vectors, tip := anim.Evaluate(t)
//	    draw(vectors, tip)
//	}
//
// # Active Vector Count
//
// [Animator.SetActiveCount] limits [Animator.TipAt] and [Animator.Trace] to
// the K vectors of largest amplitude. K = N reproduces the input exactly at
// the sample times; smaller K trades fidelity for fewer terms, and the
// root-mean-square error over a period never increases as K grows. Loading
// new input resets the count to N.
//
// # Architecture
//
// The pipeline has three stages, each usable on its own:
//
//	SVG / BezPath -> [Resample] -> [Transform] -> [Evaluate] -> contour
//	                 (arc length)   (FFT, 1/N)     (rotation)
//
// Resampling walks every cubic segment by estimated arc length and places
// samples at equal distances, so dense and sparse path regions contribute
// points in proportion to their length. The transform treats samples as
// complex numbers and normalizes by 1/N, making each coefficient directly
// the radius and phase of one vector.
//
// # Thread Safety
//
// An [Animator] is not safe for concurrent mutation: LoadPath, LoadPoints,
// Evaluate, SetActiveCount and Reset must be serialized. [Animator.Trace]
// with Parallel enabled manages its own goroutines internally and gives
// each one an independent evaluation scratch; the shared spectrum is
// read-only for the duration of the call.
package epicycles
