package render

import "math"

// NiceLevels chooses about n contour levels strictly inside (min, max),
// snapped to a 1/2/5 step so labels stay readable. It returns nil when the
// range is empty or degenerate.
func NiceLevels(min, max float64, n int) []float64 {
	if n < 1 || !(max > min) || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	step := niceNum((max - min) / float64(n+1))
	if step <= 0 {
		return nil
	}
	var levels []float64
	for v := math.Ceil(min/step) * step; v < max; v += step {
		if v > min {
			levels = append(levels, v)
		}
	}
	return levels
}

// niceNum rounds x up to the nearest 1, 2 or 5 times a power of ten.
func niceNum(x float64) float64 {
	if x <= 0 {
		return 0
	}
	exp := math.Floor(math.Log10(x))
	frac := x / math.Pow(10, exp)
	var nice float64
	switch {
	case frac <= 1:
		nice = 1
	case frac <= 2:
		nice = 2
	case frac <= 5:
		nice = 5
	default:
		nice = 10
	}
	return nice * math.Pow(10, exp)
}
