package errors

import (
	"math"
)

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CheckScalar returns an error when value is NaN or infinite.
func CheckScalar(operation string, value float64) error {
	if !IsFinite(value) {
		return Newf("numerical instability detected in %s: %g", operation, value)
	}
	return nil
}

// SafeDivide performs division with protection against a zero denominator.
// Returns NaN when the denominator is zero or close to zero, so callers can
// emit an explicit NA rather than a bogus value.
func SafeDivide(numerator, denominator float64) float64 {
	if math.Abs(denominator) < 1e-12 {
		return math.NaN()
	}
	return numerator / denominator
}

// StabilizeExp computes exp with protection against overflow. Inputs above
// the float64 exponent range are clipped so an extreme coefficient estimate
// yields a large finite ratio instead of +Inf.
func StabilizeExp(value float64) float64 {
	const maxExp = 700.0 // exp(700) is close to the maximum float64
	if value > maxExp {
		return math.Exp(maxExp)
	}
	if value < -maxExp {
		return 0
	}
	return math.Exp(value)
}

// ClipProbability clips a p-value into [0, 1]; correction procedures can push
// intermediate values slightly outside the unit interval.
func ClipProbability(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
