package model

import "time"

// AnalysisReport bundles the full pipeline output for one page analysis.
// Reports are plain data: safe to serialize to JSON for transport to a
// rendering layer or to persist for audit.
type AnalysisReport struct {
	// ID is an opaque identifier assigned by the store when persisting.
	ID string `json:"id,omitempty"`

	// PageURL is the analyzed page, when the caller supplied one.
	PageURL string `json:"page_url,omitempty"`

	// AnalyzedAt is the time the analysis ran (supplied by the caller so
	// the core itself stays deterministic).
	AnalyzedAt time.Time `json:"analyzed_at"`

	Score           PrivacyScoreComputation `json:"score"`
	Risks           RiskDetectionOutput     `json:"risks"`
	Confidence      ConfidenceAssessment    `json:"confidence"`
	Recommendations RecommendationOutput    `json:"recommendations"`

	// RulesetVersion identifies the rule tables that produced this report.
	RulesetVersion string `json:"ruleset_version"`
}
