package epicycles

import (
	"errors"
	"fmt"

	"honnef.co/go/curve"
)

// Animator decomposes a closed 2D curve into rotating vectors and evaluates
// the resulting epicycle machine at arbitrary points in its period.
type Animator interface {
	// LoadPath resamples a Bezier path to the configured sample count and
	// decomposes the samples into rotating vectors. Geometry that resamples
	// to nothing (an empty path, or one whose subpaths are all degenerate)
	// is reported as ErrNoInput.
	LoadPath(path curve.BezPath) error

	// LoadPoints decomposes caller-supplied points directly, bypassing
	// resampling. Any point count >= 1 is accepted; the configured sample
	// count does not apply.
	LoadPoints(points []curve.Point) error

	// Evaluate rotates every vector to time t in [0,1) and returns them in
	// descending-amplitude order together with the tip, the sum of all
	// vectors. The returned slice aliases an internal buffer that the next
	// Evaluate overwrites.
	Evaluate(t float64) ([]curve.Vec2, curve.Point)

	// Components returns per-vector metadata in descending-amplitude order.
	Components() []Component

	// SetActiveCount limits TipAt and Trace to the c largest vectors,
	// clamped to [0, N]. Loading new input resets the count to N.
	SetActiveCount(c int)

	// ActiveCount returns the current active vector count.
	ActiveCount() int

	// TipAt returns the tip of the active vectors at time t, the best
	// ActiveCount-term approximation of the loaded curve.
	TipAt(t float64) curve.Point

	// Trace appends one full contour to dst and returns the extended slice:
	// ContourSamples+1 tips at t = i/ContourSamples, so the contour closes.
	// dst may be nil.
	Trace(dst []curve.Point) []curve.Point

	// Reset drops the loaded curve, its spectrum and all scratch buffers.
	Reset()

	// Info returns diagnostic details about the loaded curve and config.
	Info() Info
}

// Component describes one rotating vector.
type Component struct {
	// Index is the vector's position in the unsorted spectrum.
	Index int

	// Freq is the signed rotation frequency in full turns per period.
	Freq int

	// Amplitude is the vector's length, the radius of the circle it sweeps.
	Amplitude float64
}

// Config specifies how curves are sampled and traced.
type Config struct {
	// SampleCount is the number of arc-length-uniform points LoadPath
	// extracts from a curve before decomposition. Valid range is
	// 1 to 10000.
	SampleCount int

	// ContourSamples is the number of uniform time steps per traced
	// period. Trace emits ContourSamples+1 points. Must be >= 1.
	ContourSamples int

	// Parallel enables concurrent contour tracing.
	Parallel bool

	// Workers is the number of tracing goroutines when Parallel is set.
	// Zero means GOMAXPROCS.
	Workers int
}

// Common errors returned by the package. Failures inside the numerics
// surface wrapped in these via errors.Is.
var (
	// ErrInvalidConfig is returned when configuration parameters are invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoInput is returned when a load yields no usable geometry.
	ErrNoInput = errors.New("no usable input geometry")

	// ErrInvalidSize is returned when a requested point count is outside
	// the supported range.
	ErrInvalidSize = errors.New("invalid point count")
)

// Validate checks the configuration for validity.
func (c *Config) Validate() error {
	if c.SampleCount < minSampleCount || c.SampleCount > maxSampleCount {
		return fmt.Errorf("%w: sample count %d outside %d..%d",
			ErrInvalidConfig, c.SampleCount, minSampleCount, maxSampleCount)
	}

	if c.ContourSamples < minContourSamples {
		return fmt.Errorf("%w: contour samples %d, need at least %d",
			ErrInvalidConfig, c.ContourSamples, minContourSamples)
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidConfig, c.Workers)
	}

	return nil
}

// DefaultConfig returns a configuration suitable for interactive tracing:
// 100 samples per curve and a 2000-step contour, sequential.
func DefaultConfig() *Config {
	return &Config{
		SampleCount:    defaultSampleCount,
		ContourSamples: defaultContourSamples,
	}
}

// New creates an Animator with the given configuration.
func New(config *Config) (Animator, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config cannot be nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return newAnimator(config), nil
}

// Info provides diagnostic details about an Animator.
type Info struct {
	// Algorithm names the transform behind the current spectrum:
	// "radix2", "bluestein", or "none" before any input.
	Algorithm string

	// Size is the number of rotating vectors, the loaded point count.
	Size int

	// ActiveCount is the number of vectors TipAt and Trace sum.
	ActiveCount int

	// ContourSamples is the configured trace resolution.
	ContourSamples int

	// MemoryUsage is the approximate spectrum and scratch footprint
	// in bytes.
	MemoryUsage int64

	// Parallel reports whether contour tracing fans out across goroutines.
	Parallel bool
}

// GetInfo returns diagnostic information about an Animator. It tolerates
// nil, reporting an empty Info, so callers can log unconditionally.
func GetInfo(a Animator) Info {
	if a == nil {
		return Info{Algorithm: "none"}
	}
	return a.Info()
}
