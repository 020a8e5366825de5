package epicycles

import (
	"fmt"
	"runtime"
	"sync"

	"honnef.co/go/curve"

	"github.com/tphakala/go-epicycles/internal/epicycle"
	"github.com/tphakala/go-epicycles/internal/resample"
)

// animator implements Animator on top of the internal decomposer.
// The spectrum is read-only between loads, so Trace may fan evaluation out
// across goroutines; every other method must be serialized by the caller.
type animator struct {
	config Config
	dec    *epicycle.Decomposer
	active int
}

// newAnimator creates an empty animator with a validated configuration.
func newAnimator(config *Config) *animator {
	return &animator{
		config: *config,
		dec:    epicycle.New(),
	}
}

// LoadPath resamples the path and decomposes the samples.
func (a *animator) LoadPath(path curve.BezPath) error {
	points := resample.ResamplePath(path, a.config.SampleCount)
	if allOrigin(points) {
		return fmt.Errorf("%w: path has no measurable geometry", ErrNoInput)
	}
	return a.load(points)
}

// LoadPoints decomposes caller-supplied points directly.
func (a *animator) LoadPoints(points []curve.Point) error {
	if len(points) == 0 {
		return fmt.Errorf("%w: empty point set", ErrNoInput)
	}
	return a.load(points)
}

// load installs a new input and resets the active count to the full set.
func (a *animator) load(points []curve.Point) error {
	if err := a.dec.SetInput(points); err != nil {
		return err
	}
	a.active = a.dec.Size()
	return nil
}

// allOrigin reports whether every point sits at the origin, the resampler's
// fallback output for geometry it could not measure.
func allOrigin(points []curve.Point) bool {
	for _, pt := range points {
		if pt.X != 0 || pt.Y != 0 {
			return false
		}
	}
	return true
}

// Evaluate returns all vectors at time t plus their tip.
func (a *animator) Evaluate(t float64) ([]curve.Vec2, curve.Point) {
	return a.dec.Evaluate(t)
}

// Components returns per-vector metadata in descending-amplitude order.
func (a *animator) Components() []Component {
	internal := a.dec.Components()
	out := make([]Component, len(internal))
	for i, c := range internal {
		out[i] = Component{Index: c.Index, Freq: c.Freq, Amplitude: c.Amplitude}
	}
	return out
}

// SetActiveCount clamps c to [0, N] and stores it.
func (a *animator) SetActiveCount(c int) {
	if c < 0 {
		c = 0
	}
	if n := a.dec.Size(); c > n {
		c = n
	}
	a.active = c
}

// ActiveCount returns the current active vector count.
func (a *animator) ActiveCount() int { return a.active }

// TipAt sums the active vectors at time t.
func (a *animator) TipAt(t float64) curve.Point {
	return a.dec.PartialTip(t, a.active)
}

// Trace appends ContourSamples+1 tips at t = i/ContourSamples to dst.
// When Parallel is set, the index range is split across Workers goroutines,
// each evaluating through its own clone of the decomposer. Output order is
// index order regardless of schedule.
func (a *animator) Trace(dst []curve.Point) []curve.Point {
	total := a.config.ContourSamples + 1

	base := len(dst)
	dst = append(dst, make([]curve.Point, total)...)
	out := dst[base:]

	if !a.config.Parallel {
		a.traceRange(a.dec, out, 0, total)
		return dst
	}

	workers := a.config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > total {
		workers = total
	}

	chunk := (total + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= total {
			break
		}
		hi := min(lo+chunk, total)

		wg.Add(1)
		go func(dec *epicycle.Decomposer, lo, hi int) {
			defer wg.Done()
			a.traceRange(dec, out, lo, hi)
		}(a.dec.Clone(), lo, hi)
	}
	wg.Wait()

	return dst
}

// traceRange fills out[lo:hi] with the active-count tips for its indices.
func (a *animator) traceRange(dec *epicycle.Decomposer, out []curve.Point, lo, hi int) {
	inv := 1 / float64(a.config.ContourSamples)
	for i := lo; i < hi; i++ {
		out[i] = dec.PartialTip(float64(i)*inv, a.active)
	}
}

// Reset drops the loaded curve and all derived state.
func (a *animator) Reset() {
	a.dec.Reset()
	a.active = 0
}

// Info reports the animator's current state.
func (a *animator) Info() Info {
	return Info{
		Algorithm:      a.dec.Algorithm(),
		Size:           a.dec.Size(),
		ActiveCount:    a.active,
		ContourSamples: a.config.ContourSamples,
		MemoryUsage:    a.dec.MemoryUsage(),
		Parallel:       a.config.Parallel,
	}
}
