// Package epicycle converts closed 2D point sequences into sums of rotating
// vectors. Each Fourier coefficient becomes one vector that spins at a fixed
// integer frequency; drawing the vectors tip to tail and tracking the final
// tip over one period retraces the input curve.
package epicycle

import (
	"fmt"
	"math"
	"sort"

	"honnef.co/go/curve"

	"github.com/tphakala/go-epicycles/internal/transform"
)

// Component describes one rotating vector in energy order.
type Component struct {
	// Index is the coefficient's position in the unsorted spectrum.
	Index int

	// Freq is the signed rotation frequency in full turns per unit time.
	// Spectrum index n maps to n for n <= N/2 and to n-N above, keeping
	// every vector at the slowest rotation that represents its bin.
	Freq int

	// Amplitude is the coefficient magnitude, the radius of the circle the
	// vector sweeps.
	Amplitude float64
}

// Decomposer owns the spectrum of one input curve and evaluates its
// epicycle vectors at arbitrary times. All buffers are reused across inputs
// of the same size; Evaluate and PartialTip never allocate.
//
// A Decomposer is not safe for concurrent use. For read-only parallel
// evaluation, give each goroutine its own view via Clone.
type Decomposer struct {
	n    int
	plan *transform.Plan

	coef  []complex128 // normalized coefficients, spectrum order
	freq  []int        // signed frequency per spectrum index
	amp   []float64    // coefficient magnitude per spectrum index
	order []int        // spectrum indices, descending energy, stable
	vecs  []curve.Vec2 // evaluation scratch, energy order
}

// New returns an empty Decomposer. Evaluate on an empty Decomposer yields
// no vectors and a tip at the origin.
func New() *Decomposer {
	return &Decomposer{}
}

// SetInput decomposes the given closed curve: the points become complex
// samples (x real, y imaginary), the forward transform runs over them, and
// every coefficient is scaled by 1/N. Changing the point count rebuilds the
// plan and all buffers; repeated same-size inputs reuse them.
func (d *Decomposer) SetInput(points []curve.Point) error {
	n := len(points)
	if n == 0 {
		return fmt.Errorf("decompose: empty input")
	}
	if err := d.ensureSize(n); err != nil {
		return err
	}

	for i, pt := range points {
		d.coef[i] = complex(pt.X, pt.Y)
	}
	if err := d.plan.Execute(d.coef); err != nil {
		return err
	}

	inv := complex(1/float64(n), 0)
	for i := range d.coef {
		d.coef[i] *= inv
	}
	d.index()
	return nil
}

// SetCoefficients installs an already-normalized spectrum directly, skipping
// the transform. The slice is copied.
func (d *Decomposer) SetCoefficients(coef []complex128) error {
	n := len(coef)
	if n == 0 {
		return fmt.Errorf("decompose: empty spectrum")
	}
	if err := d.ensureSize(n); err != nil {
		return err
	}

	copy(d.coef, coef)
	d.index()
	return nil
}

// ensureSize sizes the plan and buffers for n points, reusing them when the
// size is unchanged.
func (d *Decomposer) ensureSize(n int) error {
	if n == d.n && d.plan != nil {
		return nil
	}

	plan, err := transform.New(n, transform.Forward)
	if err != nil {
		return err
	}

	d.n = n
	d.plan = plan
	d.coef = make([]complex128, n)
	d.freq = make([]int, n)
	d.amp = make([]float64, n)
	d.order = make([]int, n)
	d.vecs = make([]curve.Vec2, n)
	return nil
}

// index derives frequencies and amplitudes from the spectrum and sorts the
// evaluation order by descending energy, keeping spectrum order between
// equal coefficients.
func (d *Decomposer) index() {
	for i, c := range d.coef {
		if i <= d.n/2 {
			d.freq[i] = i
		} else {
			d.freq[i] = i - d.n
		}
		a, b := real(c), imag(c)
		d.amp[i] = math.Sqrt(a*a + b*b)
	}

	for i := range d.order {
		d.order[i] = i
	}
	sort.Stable(byEnergy{d})
}

// byEnergy orders spectrum indices by descending coefficient magnitude.
type byEnergy struct{ d *Decomposer }

func (s byEnergy) Len() int { return len(s.d.order) }
func (s byEnergy) Less(i, j int) bool {
	return s.d.amp[s.d.order[i]] > s.d.amp[s.d.order[j]]
}
func (s byEnergy) Swap(i, j int) {
	s.d.order[i], s.d.order[j] = s.d.order[j], s.d.order[i]
}

// Evaluate rotates every vector to time t in [0,1) and returns them in
// energy order together with the tip, the sum of all vectors. The returned
// slice aliases an internal buffer that the next Evaluate overwrites.
func (d *Decomposer) Evaluate(t float64) ([]curve.Vec2, curve.Point) {
	var tip curve.Point
	for slot, i := range d.order {
		v := d.rotate(i, t)
		d.vecs[slot] = v
		tip.X += v.X
		tip.Y += v.Y
	}
	return d.vecs, tip
}

// PartialTip sums the first c vectors in energy order at time t, the best
// c-term approximation of the curve. c is clamped to [0, N].
func (d *Decomposer) PartialTip(t float64, c int) curve.Point {
	if c > d.n {
		c = d.n
	}
	var tip curve.Point
	for slot := 0; slot < c; slot++ {
		v := d.rotate(d.order[slot], t)
		tip.X += v.X
		tip.Y += v.Y
	}
	return tip
}

// rotate evaluates the vector of spectrum index i at time t: the coefficient
// (a+bi) rotated by theta = 2*pi*freq*t.
func (d *Decomposer) rotate(i int, t float64) curve.Vec2 {
	theta := 2 * math.Pi * float64(d.freq[i]) * t
	sin, cos := math.Sincos(theta)
	a, b := real(d.coef[i]), imag(d.coef[i])
	return curve.Vec2{X: a*cos - b*sin, Y: a*sin + b*cos}
}

// Components returns per-vector metadata in energy order. The slice is
// freshly allocated on every call.
func (d *Decomposer) Components() []Component {
	out := make([]Component, d.n)
	for slot, i := range d.order {
		out[slot] = Component{Index: i, Freq: d.freq[i], Amplitude: d.amp[i]}
	}
	return out
}

// Size returns the number of vectors, the input point count.
func (d *Decomposer) Size() int { return d.n }

// Buffer element sizes in bytes, for footprint reporting.
const (
	bytesPerComplex128 = 16
	bytesPerFloat64    = 8
	bytesPerInt        = 8
	bytesPerVec2       = 16
)

// MemoryUsage returns the approximate footprint in bytes of the spectrum,
// its index tables, the evaluation scratch and the plan's own tables.
func (d *Decomposer) MemoryUsage() int64 {
	total := int64(len(d.coef)) * bytesPerComplex128
	total += int64(len(d.freq)+len(d.order)) * bytesPerInt
	total += int64(len(d.amp)) * bytesPerFloat64
	total += int64(len(d.vecs)) * bytesPerVec2
	if d.plan != nil {
		total += d.plan.MemoryUsage()
	}
	return total
}

// Algorithm names the transform path behind the current spectrum, or "none"
// before any input.
func (d *Decomposer) Algorithm() string {
	if d.plan == nil {
		return "none"
	}
	return d.plan.Algorithm()
}

// Clone returns an independent Decomposer sharing this one's immutable
// spectrum but owning its own evaluation scratch. Clones support concurrent
// Evaluate and PartialTip calls as long as nobody mutates any of them.
func (d *Decomposer) Clone() *Decomposer {
	c := *d
	c.vecs = make([]curve.Vec2, len(d.vecs))
	return &c
}

// Reset drops the spectrum and releases every buffer, returning the
// Decomposer to its freshly constructed state.
func (d *Decomposer) Reset() {
	d.n = 0
	d.plan = nil
	d.coef = nil
	d.freq = nil
	d.amp = nil
	d.order = nil
	d.vecs = nil
}
