package model

// RiskLevel is the overall privacy risk band for a page.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Severity is a human-level severity bucket for one risk item or
// recommendation.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// severityRanks orders severities explicitly; smaller rank is worse.
// Ordering must never rely on enum declaration order so behavior stays
// language-independent.
var severityRanks = map[Severity]int{
	SeverityHigh:   0,
	SeverityMedium: 1,
	SeverityLow:    2,
}

// Rank returns the explicit sort rank of s; unknown severities rank last.
func (s Severity) Rank() int {
	if r, ok := severityRanks[s]; ok {
		return r
	}
	return len(severityRanks)
}

// Worse returns the more severe of s and other.
func (s Severity) Worse(other Severity) Severity {
	if other.Rank() < s.Rank() {
		return other
	}
	return s
}

// MitigationPriority ranks the urgency of a recommended action, p1 most urgent.
type MitigationPriority string

const (
	PriorityP1 MitigationPriority = "p1"
	PriorityP2 MitigationPriority = "p2"
	PriorityP3 MitigationPriority = "p3"
)

var priorityRanks = map[MitigationPriority]int{
	PriorityP1: 0,
	PriorityP2: 1,
	PriorityP3: 2,
}

// Rank returns the explicit sort rank of p; unknown priorities rank last.
func (p MitigationPriority) Rank() int {
	if r, ok := priorityRanks[p]; ok {
		return r
	}
	return len(priorityRanks)
}

// MoreUrgent returns the higher-priority (lower rank) of p and other.
func (p MitigationPriority) MoreUrgent(other MitigationPriority) MitigationPriority {
	if other.Rank() < p.Rank() {
		return other
	}
	return p
}

// ConfidenceLevel buckets the 0-100 confidence score.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)
