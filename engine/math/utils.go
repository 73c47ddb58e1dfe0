package math

import "golang.org/x/exp/constraints"

// Clamp limits f to [low, high].
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Saturate clamps a color or blend factor to [0, 1]. NaN maps to 0.
func Saturate[T constraints.Float](f T) T {
	if f != f {
		return 0
	}
	return Clamp(f, 0, 1)
}
