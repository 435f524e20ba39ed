package model

import "math"

// roundEpsilon nudges exact half values upward so .xx5 rounds up instead of
// falling to banker's rounding. Must stay small enough not to move any value
// that is not an exact half at two decimals.
const roundEpsilon = 1e-9

// SanitizeMetric coerces a malformed metric to zero. The core degrades
// gracefully when upstream collectors are partially broken: NaN, infinite
// and negative values all count as "nothing observed".
func SanitizeMetric(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// RoundScore rounds a score-shaped value half-up to two decimal places.
// Every emitted score-like number (raw, capped, penalty, total, final score)
// goes through this exact function; consumers on other runtimes replicate it
// bit-for-bit.
func RoundScore(v float64) float64 {
	return math.Round((v+roundEpsilon)*100) / 100
}

// ClampScore clamps v into the [0,100] score range.
func ClampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
