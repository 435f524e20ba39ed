package model

// RiskItem is one fired threshold rule describing a concrete privacy concern.
type RiskItem struct {
	// RuleID identifies the rule that fired (e.g. "third_party_cookie_volume").
	RuleID string `json:"rule_id"`

	// Title is a short human-readable name for the concern.
	Title string `json:"title"`

	// Severity buckets the concern: high, medium or low.
	Severity Severity `json:"severity"`

	// MitigationPriority ranks how urgently the concern should be addressed.
	MitigationPriority MitigationPriority `json:"mitigation_priority"`

	// Source names the signal family the rule reads (score, content, cookie,
	// storage, tracking or network).
	Source string `json:"source"`

	// Value is the sanitized actual value the rule compared.
	Value float64 `json:"value"`

	// Threshold is the rule's comparison threshold.
	Threshold float64 `json:"threshold"`

	// Operator is the comparison applied, one of ">=", ">", "<=", "<".
	Operator string `json:"operator"`

	// Explanation describes why the rule fired, with the observed value.
	Explanation string `json:"explanation"`
}

// RiskDetectionOutput is the Risk Detector result for a single analysis.
type RiskDetectionOutput struct {
	// OverallRisk is the score band the privacy score landed in.
	OverallRisk RiskLevel `json:"overall_risk"`

	// OverallExplanation describes the band placement.
	OverallExplanation string `json:"overall_explanation"`

	// MappingFallbackUsed is true only when the score fell outside every
	// defined band. Bands cover [0,100], so this is a defensive guard
	// against a band-table configuration bug.
	MappingFallbackUsed bool `json:"mapping_fallback_used"`

	// NetworkFallbackUsed is true when network signals were unavailable and
	// the synthetic network_signals_unavailable item was appended.
	NetworkFallbackUsed bool `json:"network_fallback_used"`

	// NetworkUnavailableReason surfaces the collector's reason, if any.
	NetworkUnavailableReason string `json:"network_unavailable_reason,omitempty"`

	// RiskItems lists fired rules in rule-evaluation order, plus the
	// synthetic network item when applicable.
	RiskItems []RiskItem `json:"risk_items"`

	// RulesetVersion identifies the rule table used.
	RulesetVersion string `json:"ruleset_version"`
}
