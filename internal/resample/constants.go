package resample

// Flattening and sampling parameters.
const (
	// estimateSamples is the number of uniform chords summed for the
	// initial per-cubic length estimate.
	estimateSamples = 32

	// minSegmentEstimate discards cubics whose estimated length is too
	// small to contribute geometry.
	minSegmentEstimate = 1e-8

	// oversampleFactor controls polyline density: each subpath is
	// flattened to roughly oversampleFactor vertices per requested output
	// point.
	oversampleFactor = 8.0

	// dedupEpsilonSq is the squared distance under which a flattened
	// vertex collapses into its predecessor.
	dedupEpsilonSq = 1e-12

	// minSpanLength floors the vertex span length used for inverse
	// arc-length interpolation.
	minSpanLength = 1e-12
)
