// Package mathutil provides mathematical helpers for the transform engine
// and the curve resampler.
package mathutil

import (
	"math/bits"
)

// IsPow2 reports whether n is a positive power of two.
func IsPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPow2 returns the smallest power of two greater than or equal to n.
// NextPow2(0) is 1. n must be non-negative and small enough that the result
// fits in an int.
func NextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
