package demon

import "math/rand/v2"

// Place draws a point uniformly from viewport inset by padding. When avoid is
// non-nil the point is redrawn up to attempts times while it falls inside
// avoid; the last candidate is returned regardless.
func Place(rng *rand.Rand, viewport Rect, padding float64, avoid *Rect, attempts int) (float64, float64) {
	draw := func() (float64, float64) {
		return uniform(rng, viewport.Left+padding, viewport.Right-padding),
			uniform(rng, viewport.Top+padding, viewport.Bottom-padding)
	}
	x, y := draw()
	if avoid == nil {
		return x, y
	}
	for i := 0; i < attempts && avoid.Contains(x, y); i++ {
		x, y = draw()
	}
	return x, y
}

// uniform returns a value in [lo, hi), or lo when the range is empty.
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
