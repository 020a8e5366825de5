package mathutil

// Numerical tolerance constants shared by the transform engine and the
// curve resampler.
const (
	// Epsilon is the double-precision machine epsilon, the smallest value
	// with 1+Epsilon != 1. Used as a floor for step sizes derived from
	// measured lengths so they never divide by zero.
	Epsilon = 2.220446049250313e-16
)
