package model

// ConfidenceReason records one applied confidence penalty rule.
type ConfidenceReason struct {
	// Code is the stable identifier of the penalty (e.g. "CONTENT_UNREACHABLE").
	Code string `json:"code"`

	// Penalty is the flat deduction this rule applied.
	Penalty float64 `json:"penalty"`

	// Message explains the missing signal source.
	Message string `json:"message"`
}

// ConfidenceAssessment measures how complete the signal collection was,
// independent of how privacy-risky the page itself is.
type ConfidenceAssessment struct {
	// Score is the 0-100 confidence score.
	Score float64 `json:"score"`

	// Level buckets Score: >=80 high, >=50 medium, else low.
	Level ConfidenceLevel `json:"level"`

	// Reasons lists applied penalties in rule-application order.
	Reasons []ConfidenceReason `json:"reasons"`

	// RulesetVersion identifies the penalty table used.
	RulesetVersion string `json:"ruleset_version"`
}
