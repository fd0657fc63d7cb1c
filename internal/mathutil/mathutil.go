package mathutil

import "math"

// IntMin returns the smaller of two ints.
func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IntMax returns the larger of two ints.
func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IntClamp limits x to [lo, hi].
func IntClamp(x, lo, hi int) int {
	return IntMax(lo, IntMin(x, hi))
}

// FloatSign returns -1, 0, or 1 based on sign.
func FloatSign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// FloorInt converts a world coordinate to the index of the grid cell containing it.
func FloorInt(x float64) int {
	return int(math.Floor(x))
}

// Frac returns x - floor(x), which is in [0, 1) for negative inputs too.
func Frac(x float64) float64 {
	return x - math.Floor(x)
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}
