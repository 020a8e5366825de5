// Package testutil provides reusable test helper functions for the epicycle
// engine tests.
package testutil

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"honnef.co/go/curve"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance   = 1e-10
	TransformTolerance = 1e-4
	GeometryTolerance  = 1e-6
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertComplexNoNaNOrInf verifies that no elements have NaN or Inf components.
func AssertComplexNoNaNOrInf(t *testing.T, s []complex128, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if cmplx.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if cmplx.IsInf(v) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertComplexClose verifies that two complex slices match element-wise
// within an absolute tolerance on each component.
func AssertComplexClose(t *testing.T, expected, actual []complex128, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if !assert.InDelta(t, real(expected[i]), real(actual[i]), tolerance,
			"real part mismatch at %d: want %v, got %v", i, expected[i], actual[i]) {
			return false
		}
		if !assert.InDelta(t, imag(expected[i]), imag(actual[i]), tolerance,
			"imag part mismatch at %d: want %v, got %v", i, expected[i], actual[i]) {
			return false
		}
	}
	return true
}

// AssertPointClose verifies that two points match within an absolute
// tolerance on each coordinate.
func AssertPointClose(t *testing.T, expected, actual curve.Point, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	okX := assert.InDelta(t, expected.X, actual.X, tolerance, msgAndArgs...)
	okY := assert.InDelta(t, expected.Y, actual.Y, tolerance, msgAndArgs...)
	return okX && okY
}

// AssertPointsClose verifies that two point slices match element-wise within
// an absolute tolerance on each coordinate.
func AssertPointsClose(t *testing.T, expected, actual []curve.Point, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if !AssertPointClose(t, expected[i], actual[i], tolerance,
			"point mismatch at %d", i) {
			return false
		}
	}
	return true
}

// AssertAllPointsEqual verifies that every point in the slice equals want.
func AssertAllPointsEqual(t *testing.T, s []curve.Point, want curve.Point, msgAndArgs ...any) bool {
	t.Helper()
	for i, p := range s {
		if p != want {
			return assert.Fail(t, "point differs",
				"s[%d]=(%v,%v), want (%v,%v)", i, p.X, p.Y, want.X, want.Y)
		}
	}
	return true
}

// AssertNonIncreasing verifies that a slice never increases from one element
// to the next by more than tolerance.
func AssertNonIncreasing(t *testing.T, s []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] > s[i-1]+tolerance {
			return assert.Fail(t, "not non-increasing",
				"s[%d]=%v > s[%d]=%v", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and
// expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}
