package transform

import (
	"math"
	"math/cmplx"

	"github.com/tphakala/simd/c128"
)

// precomputeChirp fills the chirp sequence c[k] = exp(s*i*pi*k^2/n), with
// s = +1 for Forward and -1 for Inverse, and the forward spectrum of the
// mirrored conjugate chirp. Both are fixed for the life of the plan, so
// repeated Execute calls never recompute them.
func (p *Plan) precomputeChirp() {
	p.chirp = make([]complex128, p.n)
	p.bSpec = make([]complex128, p.m)
	p.work = make([]complex128, p.m)

	s := 1.0
	if p.dir == Inverse {
		s = -1.0
	}

	for k := 0; k < p.n; k++ {
		kk := float64(k) * float64(k)
		ang := s * math.Pi * kk / float64(p.n)
		p.chirp[k] = complex(math.Cos(ang), math.Sin(ang))
	}

	// b[k] = conj(c[k]) for k < n, mirrored at m-k for k > 0, zero elsewhere.
	for k := 0; k < p.n; k++ {
		c := cmplx.Conj(p.chirp[k])
		p.bSpec[k] = c
		if k != 0 {
			p.bSpec[p.m-k] = c
		}
	}
	radix2(p.bSpec, Forward)
}

// bluestein transforms data in place via chirp-z: a[k] = data[k]*c[k] zero
// padded to m, convolved with the mirrored conjugate chirp through the
// radix-2 kernel, then multiplied by c[k] again. len(data) is p.n.
func (p *Plan) bluestein(data []complex128) {
	a := p.work
	for k := 0; k < p.n; k++ {
		a[k] = data[k] * p.chirp[k]
	}
	for k := p.n; k < p.m; k++ {
		a[k] = 0
	}

	radix2(a, Forward)
	c128.Mul(a, a, p.bSpec)
	radix2(a, Inverse)

	for k := 0; k < p.n; k++ {
		data[k] = a[k] * p.chirp[k]
	}

	if p.dir == Inverse {
		inv := complex(1/float64(p.n), 0)
		for k := 0; k < p.n; k++ {
			data[k] *= inv
		}
	}
}
