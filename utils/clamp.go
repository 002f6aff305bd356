// SPDX-License-Identifier: EPL-2.0

package utils

// Clamp01 limits x to [0,1]. NaN maps to 0 so a bad control value can never
// reach the render path.
func Clamp01(x float32) float32 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// ClampUnit limits an audio sample to [-1,1]. NaN maps to 0.
func ClampUnit(x float32) float32 {
	if x != x {
		return 0
	}
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// Clamp64 limits x to [lo,hi].
func Clamp64(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
