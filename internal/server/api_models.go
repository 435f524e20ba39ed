package server

import "github.com/pagesentry/pagesentry/internal/model"

// AnalyzeRequest is the payload for running one analysis.
type AnalyzeRequest struct {
	PageURL string                        `json:"page_url" example:"https://news.example.com/article"`
	Input   model.NormalizedAnalysisInput `json:"input"`
}

// RulesetFactor describes one scoring factor for consumers of GET /ruleset.
type RulesetFactor struct {
	ID      string  `json:"id" example:"third_party_cookies"`
	Label   string  `json:"label" example:"Third-party cookies"`
	Weight  float64 `json:"weight" example:"20"`
	HardCap float64 `json:"hard_cap" example:"40"`
}

// RulesetBand describes one risk band.
type RulesetBand struct {
	Level string  `json:"level" example:"medium"`
	Min   float64 `json:"min" example:"40"`
	Max   float64 `json:"max" example:"69.99"`
}

// RulesetRule describes one threshold rule.
type RulesetRule struct {
	ID                 string  `json:"id" example:"third_party_cookie_volume"`
	Title              string  `json:"title" example:"Large third-party cookie volume"`
	Severity           string  `json:"severity" example:"high"`
	MitigationPriority string  `json:"mitigation_priority" example:"p1"`
	Source             string  `json:"source" example:"cookie"`
	Operator           string  `json:"operator" example:">="`
	Threshold          float64 `json:"threshold" example:"25"`
}

// RulesetAction describes one recommendation catalog entry.
type RulesetAction struct {
	ID              string `json:"id" example:"block_known_trackers"`
	Title           string `json:"title" example:"Block known trackers"`
	Rationale       string `json:"rationale"`
	DefaultPriority string `json:"default_priority" example:"p1"`
}

// RulesetResponse publishes the rule tables in effect so downstream
// consumers can detect incompatible rule changes.
type RulesetResponse struct {
	RulesetVersion   string          `json:"ruleset_version" example:"1.0.0"`
	RoundingStrategy string          `json:"rounding_strategy" example:"half_up_2dp"`
	Factors          []RulesetFactor `json:"factors"`
	Bands            []RulesetBand   `json:"bands"`
	Rules            []RulesetRule   `json:"rules"`
	Actions          []RulesetAction `json:"actions"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"not found"`
}
