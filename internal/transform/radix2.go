package transform

import "math"

// radix2 applies the iterative in-place radix-2 FFT to a. The length of a
// must be a power of two. The stage twiddle at length L is exp(sign*2*pi*i/L)
// with sign = -1 for Forward and +1 for Inverse; Inverse also scales every
// output by 1/n.
func radix2(a []complex128, dir Direction) {
	n := len(a)
	if n <= 1 {
		return
	}

	bitReverse(a)

	sign := -1.0
	if dir == Inverse {
		sign = 1.0
	}

	for l := 2; l <= n; l <<= 1 {
		ang := sign * 2 * math.Pi / float64(l)
		step := complex(math.Cos(ang), math.Sin(ang))
		half := l >> 1

		for i := 0; i < n; i += l {
			w := complex(1, 0)
			for j := 0; j < half; j++ {
				u := a[i+j]
				v := a[i+j+half] * w
				a[i+j] = u + v
				a[i+j+half] = u - v
				w *= step
			}
		}
	}

	if dir == Inverse {
		inv := complex(1/float64(n), 0)
		for i := range a {
			a[i] *= inv
		}
	}
}

// bitReverse permutes a into bit-reversed index order in place.
func bitReverse(a []complex128) {
	n := len(a)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j |= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}
}
