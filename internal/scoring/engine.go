// Package scoring computes the 0-100 privacy score from normalized page
// signals using a weighted, capped penalty model. ComputeScore is pure and
// total: identical inputs produce byte-identical outputs and malformed
// numerics are coerced to zero instead of failing.
package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/pagesentry/pagesentry/internal/model"
)

const baseScore = 100

// ComputeScore evaluates every penalty factor against the input and returns
// the full score computation, including per-factor contributions and the
// strongest negative reasons.
func ComputeScore(in *model.NormalizedAnalysisInput) model.PrivacyScoreComputation {
	contributions := make([]model.FactorContribution, 0, len(factors))

	totalPenalty := 0.0
	for _, f := range factors {
		raw := f.Raw(in)
		capped := math.Min(raw, f.HardCap)

		// HardCap 0 would divide by zero; treat the ratio as 0.
		ratio := 0.0
		if f.HardCap > 0 {
			ratio = capped / f.HardCap
		}
		penalty := model.RoundScore(f.Weight * ratio)

		contributions = append(contributions, model.FactorContribution{
			FactorID:    f.ID,
			Label:       f.Label,
			RawValue:    model.RoundScore(raw),
			CappedValue: model.RoundScore(capped),
			HardCap:     f.HardCap,
			Weight:      f.Weight,
			Penalty:     penalty,
		})

		// Sum the already-rounded penalties. Rounding the raw sum once can
		// diverge by a few hundredths from this order of operations.
		totalPenalty += penalty
	}

	totalPenalty = model.RoundScore(totalPenalty)
	score := model.RoundScore(model.ClampScore(baseScore - totalPenalty))

	return model.PrivacyScoreComputation{
		BaseScore:                baseScore,
		TotalPenalty:             totalPenalty,
		Score:                    score,
		RoundingStrategy:         model.RoundingHalfUp2,
		Contributions:            contributions,
		StrongestNegativeReasons: strongestReasons(contributions),
		RulesetVersion:           model.RulesetVersion,
	}
}

// strongestReasons picks the top three penalized factors, sorted by
// descending penalty. Ties keep canonical factor order, which is why the
// sort must be stable over the contribution slice.
func strongestReasons(contributions []model.FactorContribution) []model.ScoreReason {
	penalized := make([]model.FactorContribution, 0, len(contributions))
	for _, c := range contributions {
		if c.Penalty > 0 {
			penalized = append(penalized, c)
		}
	}

	sort.SliceStable(penalized, func(i, j int) bool {
		return penalized[i].Penalty > penalized[j].Penalty
	})

	if len(penalized) > 3 {
		penalized = penalized[:3]
	}

	reasons := make([]model.ScoreReason, 0, len(penalized))
	for _, c := range penalized {
		reasons = append(reasons, model.ScoreReason{
			FactorID: c.FactorID,
			Penalty:  c.Penalty,
			Text:     reasonText(c),
		})
	}
	return reasons
}

// reasonText renders the human-readable reason for one contribution.
// Storage is byte-denominated; every other factor counts signals.
func reasonText(c model.FactorContribution) string {
	rounded := int64(math.Round(c.RawValue))
	if c.FactorID == FactorStorageUsage {
		return fmt.Sprintf("%s consumed %d bytes", c.Label, rounded)
	}
	return fmt.Sprintf("%s triggered %d signals", c.Label, rounded)
}
