// Package transform implements the discrete Fourier transform of 2D points
// treated as complex numbers, for any positive length.
//
// Power-of-two lengths use an iterative in-place radix-2 FFT (bit-reversal
// permutation followed by log2(n) butterfly stages). All other lengths use
// Bluestein's chirp-z algorithm, which rewrites the transform as a circular
// convolution and carries that convolution out with the radix-2 kernel at
// the next power of two >= 2n-1.
package transform

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-epicycles/internal/mathutil"
)

// Direction selects the transform direction.
type Direction int

const (
	// Forward computes the unnormalized forward transform. Producing true
	// Fourier coefficients (dividing by n) is the caller's responsibility.
	Forward Direction = iota

	// Inverse computes the inverse transform, scaling every output by 1/n.
	Inverse
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Inverse {
		return "inverse"
	}
	return "forward"
}

// Transform contract errors.
var (
	// ErrInvalidSize is returned when a plan is requested for size <= 0.
	ErrInvalidSize = errors.New("transform size must be positive")

	// ErrSizeMismatch is returned when Execute receives input whose length
	// differs from the planned size.
	ErrSizeMismatch = errors.New("input length does not match plan size")
)

// Plan holds the precomputed state for transforms of one fixed size and
// direction. A plan exclusively owns its scratch buffers: Execute performs
// no allocation, and a plan may be reused across any number of calls.
// Changing the size means constructing a new plan.
//
// A Plan is not safe for concurrent Execute calls; its convolution scratch
// is shared across calls.
type Plan struct {
	n    int
	dir  Direction
	pow2 bool

	// Bluestein state; nil for power-of-two sizes.
	m     int          // convolution size, next power of two >= 2n-1
	chirp []complex128 // c[k] = exp(s*i*pi*k^2/n), length n
	bSpec []complex128 // forward spectrum of the mirrored conjugate chirp, length m
	work  []complex128 // convolution scratch, length m
}

// New builds a plan for transforms of length n in the given direction.
// It fails if n <= 0.
func New(n int, dir Direction) (*Plan, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	p := &Plan{
		n:    n,
		dir:  dir,
		pow2: mathutil.IsPow2(n),
	}
	if !p.pow2 {
		p.m = mathutil.NextPow2(2*n - 1)
		p.precomputeChirp()
	}
	return p, nil
}

// Execute transforms data in place. It fails, leaving data untouched, when
// len(data) differs from the planned size.
func (p *Plan) Execute(data []complex128) error {
	if len(data) != p.n {
		return fmt.Errorf("%w: plan size %d, input length %d", ErrSizeMismatch, p.n, len(data))
	}

	if p.pow2 {
		radix2(data, p.dir)
	} else {
		p.bluestein(data)
	}
	return nil
}

// Size returns the planned transform length.
func (p *Plan) Size() int { return p.n }

// Direction returns the planned direction.
func (p *Plan) Direction() Direction { return p.dir }

// IsPowerOfTwo reports whether the plan uses the radix-2 path directly.
func (p *Plan) IsPowerOfTwo() bool { return p.pow2 }

// Algorithm returns the name of the algorithm the plan executes.
func (p *Plan) Algorithm() string {
	if p.pow2 {
		return "radix2"
	}
	return "bluestein"
}

// MemoryUsage returns the approximate size in bytes of the plan's
// precomputed tables and convolution scratch. Power-of-two plans hold no
// state and report zero.
func (p *Plan) MemoryUsage() int64 {
	return int64(len(p.chirp)+len(p.bSpec)+len(p.work)) * bytesPerComplex128
}
