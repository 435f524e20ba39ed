package model

// RulesetVersion identifies the scoring/risk/recommendation rule tables in
// effect. Bump whenever thresholds, weights or mapping tables change so
// downstream consumers can detect incompatible rule changes.
const RulesetVersion = "1.0.0"

// RoundingHalfUp2 tags the rounding strategy applied to every score-shaped
// value: round half up to two decimal places.
const RoundingHalfUp2 = "half_up_2dp"
