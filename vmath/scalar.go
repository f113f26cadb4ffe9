package vmath

import (
	"math"
)

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b by t in [0,1]
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ApproachExp moves current toward target with frame-rate independent
// exponential smoothing: rate is the decay constant per second
func ApproachExp(current, target, rate, dt float64) float64 {
	if rate <= 0 || dt <= 0 {
		return current
	}
	return target + (current-target)*math.Exp(-rate*dt)
}
