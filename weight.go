package walker

import "math"

// floatScale is the fixed precision for quantizing float weights.
// Proportions closer together than 1e-4 of each other collapse.
const floatScale = 10000

// normalize scales integer weights so that their mean is an exact integer,
// which keeps the redistribution in calcTable free of fractional thresholds.
func normalize(weights []uint32) []uint64 {
	n := uint64(len(weights))
	out := make([]uint64, len(weights))
	for i, w := range weights {
		out[i] = uint64(w) * n
	}
	return out
}

// quantize converts relative proportions to integer weights. Negative values
// are clamped to zero. Each value is scaled by floatScale and rounded to the
// nearest integer, then the whole set is divided by its collective GCD to
// keep magnitudes small.
func quantize(weights []float64) []uint32 {
	out := make([]uint32, len(weights))
	for i, w := range weights {
		if w < 0 {
			w = 0
		}
		out[i] = uint32(math.Round(w * floatScale))
	}
	g := gcdNonzero(out)
	if g == 0 {
		// All weights quantized to zero. Nothing to reduce.
		return out
	}
	for i := range out {
		out[i] /= g
	}
	return out
}

// gcdNonzero returns the greatest common divisor of the nonzero elements of
// weights. The GCD of an empty or all-zero set is 0; callers must not divide
// by it.
func gcdNonzero(weights []uint32) uint32 {
	var g uint32
	for _, w := range weights {
		if w == 0 {
			continue
		}
		g = gcd(g, w)
	}
	return g
}

func gcd(a, b uint32) uint32 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
