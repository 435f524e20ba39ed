package model

// Recommendation is one deduplicated, actionable mitigation derived from the
// detected risk items.
type Recommendation struct {
	// ActionID is the stable catalog identifier (e.g. "block_known_trackers").
	ActionID string `json:"action_id"`

	// Title is the short human-readable action name.
	Title string `json:"title"`

	// Rationale explains what the action mitigates.
	Rationale string `json:"rationale"`

	// Severity is the worst severity among all risks that triggered the action.
	Severity Severity `json:"severity"`

	// Priority is the most urgent of the catalog default and the priorities
	// of the triggering risks.
	Priority MitigationPriority `json:"priority"`

	// TriggeredByRiskIDs lists the rule ids that mapped to this action,
	// sorted lexicographically.
	TriggeredByRiskIDs []string `json:"triggered_by_risk_ids"`
}

// RecommendationOutput is the Recommendation Generator result for one analysis.
type RecommendationOutput struct {
	// Recommendations is sorted by severity (high first), then priority
	// (p1 first), then action id.
	Recommendations []Recommendation `json:"recommendations"`

	// RulesetVersion identifies the catalog and mapping tables used.
	RulesetVersion string `json:"ruleset_version"`
}
