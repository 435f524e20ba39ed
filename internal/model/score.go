package model

// FactorContribution records how one penalty factor contributed to the final
// privacy score. One entry is emitted per factor, in canonical factor order,
// whether or not the factor produced a penalty.
type FactorContribution struct {
	// FactorID is the stable identifier of the factor (e.g. "third_party_cookies").
	FactorID string `json:"factor_id"`

	// Label is the human-readable factor name used in reason texts.
	Label string `json:"label"`

	// RawValue is the sanitized, rounded raw signal value before capping.
	RawValue float64 `json:"raw_value"`

	// CappedValue is min(RawValue, HardCap), rounded.
	CappedValue float64 `json:"capped_value"`

	// HardCap is the raw-value ceiling applied before normalization.
	HardCap float64 `json:"hard_cap"`

	// Weight is the maximum penalty this factor can deduct.
	Weight float64 `json:"weight"`

	// Penalty is Weight * (CappedValue / HardCap), rounded.
	Penalty float64 `json:"penalty"`
}

// ScoreReason is one of the strongest negative contributions to a score.
type ScoreReason struct {
	FactorID string  `json:"factor_id"`
	Penalty  float64 `json:"penalty"`
	Text     string  `json:"text"`
}

// PrivacyScoreComputation is the canonical Score Engine output for a single
// page analysis.
type PrivacyScoreComputation struct {
	// BaseScore is the starting score before deductions; always 100.
	BaseScore float64 `json:"base_score"`

	// TotalPenalty is the rounded sum of the per-factor rounded penalties.
	// Kept as sum-of-rounded-components (not one rounding pass over the raw
	// sum) so independent implementations agree at the cent level.
	TotalPenalty float64 `json:"total_penalty"`

	// Score is clamp(BaseScore - TotalPenalty, 0, 100), rounded.
	Score float64 `json:"score"`

	// RoundingStrategy tags the rounding applied to every value above.
	RoundingStrategy string `json:"rounding_strategy"`

	// Contributions holds one entry per factor in canonical order.
	Contributions []FactorContribution `json:"contributions"`

	// StrongestNegativeReasons lists at most three factors sorted by
	// descending penalty, ties broken by canonical factor order.
	StrongestNegativeReasons []ScoreReason `json:"strongest_negative_reasons"`

	// RulesetVersion identifies the factor table used.
	RulesetVersion string `json:"ruleset_version"`
}
