package risk

import "github.com/pagesentry/pagesentry/internal/model"

// Band maps a closed score interval to an overall risk level.
type Band struct {
	Level model.RiskLevel
	Min   float64
	Max   float64

	// Explanation summarizes what landing in this band means.
	Explanation string
}

// bands is the canonical band table. The three bands are contiguous,
// non-overlapping and cover [0,100] exactly; scores carry two decimals, so
// the 0.01 gaps between Max and the next Min are unreachable.
var bands = []Band{
	{
		Level:       model.RiskHigh,
		Min:         0,
		Max:         39.99,
		Explanation: "The privacy score is very low; the page shows heavy third-party and tracking activity.",
	},
	{
		Level:       model.RiskMedium,
		Min:         40,
		Max:         69.99,
		Explanation: "The privacy score is moderate; the page shows notable third-party or tracking activity.",
	},
	{
		Level:       model.RiskLow,
		Min:         70,
		Max:         100,
		Explanation: "The privacy score is healthy; the page shows limited third-party and tracking activity.",
	},
}

// Bands returns a copy of the canonical band table, in declaration order.
func Bands() []Band {
	return append([]Band(nil), bands...)
}

// bandFor looks up the band containing the (already clamped) score.
// The bool result is false only if the band table has a coverage bug.
func bandFor(score float64) (Band, bool) {
	for _, b := range bands {
		if score >= b.Min && score <= b.Max {
			return b, true
		}
	}
	return Band{}, false
}
