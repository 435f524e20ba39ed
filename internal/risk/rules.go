package risk

import (
	"fmt"

	"github.com/pagesentry/pagesentry/internal/model"
)

// Rule sources name the signal family a rule reads. Network-sourced rules
// are skipped entirely when network signals are unavailable.
const (
	SourceScore    = "score"
	SourceCookie   = "cookie"
	SourceContent  = "content"
	SourceStorage  = "storage"
	SourceTracking = "tracking"
	SourceNetwork  = "network"
)

// Comparison operators supported by threshold rules.
const (
	OpGTE = ">="
	OpGT  = ">"
	OpLTE = "<="
	OpLT  = "<"
)

// Rule is one independent threshold rule. Every rule is evaluated against
// the same input regardless of other rules' outcomes.
type Rule struct {
	ID                 string
	Title              string
	Severity           model.Severity
	MitigationPriority model.MitigationPriority
	Source             string
	Operator           string
	Threshold          float64

	// Value extracts the sanitized actual value the rule compares. The
	// privacy score is passed alongside the input so score-sourced rules
	// share the same shape.
	Value func(score float64, in *model.NormalizedAnalysisInput) float64

	// Explain renders the fired-rule explanation for the observed value.
	Explain func(value float64) string
}

// Rule ids, exported for consumers (the recommendation mapping keys on them).
const (
	RuleOverallScoreHigh           = "overall_score_high"
	RuleThirdPartyCookieVolume     = "third_party_cookie_volume"
	RuleThirdPartyScriptDomains    = "third_party_script_domains"
	RulePersistentStorageFootprint = "persistent_storage_footprint"
	RuleTrackingIndicatorDensity   = "tracking_indicator_density"
	RuleNetworkHeavyThirdParty     = "network_heavy_third_party_requests"
	RuleNetworkSuspiciousEndpoints = "network_suspicious_endpoint_repetition"
	RuleNetworkTrackerDomains      = "network_tracker_domain_concentration"
	RuleNetworkShortWindowBurst    = "network_short_window_burst"

	// RuleNetworkSignalsUnavailable is the synthetic item appended when the
	// network collector did not run; it is not part of the rule table.
	RuleNetworkSignalsUnavailable = "network_signals_unavailable"
)

// rules is the canonical rule table, in evaluation order. Declaration order
// is load-bearing: fired items are emitted in this order.
var rules = []Rule{
	{
		ID:                 RuleOverallScoreHigh,
		Title:              "Overall privacy score is critically low",
		Severity:           model.SeverityHigh,
		MitigationPriority: model.PriorityP1,
		Source:             SourceScore,
		Operator:           OpLT,
		Threshold:          40,
		Value: func(score float64, _ *model.NormalizedAnalysisInput) float64 {
			return score
		},
		Explain: func(v float64) string {
			return fmt.Sprintf("The privacy score of %.2f is below 40, indicating pervasive privacy-hostile behavior.", v)
		},
	},
	{
		ID:                 RuleThirdPartyCookieVolume,
		Title:              "Large third-party cookie volume",
		Severity:           model.SeverityHigh,
		MitigationPriority: model.PriorityP1,
		Source:             SourceCookie,
		Operator:           OpGTE,
		Threshold:          25,
		Value: func(_ float64, in *model.NormalizedAnalysisInput) float64 {
			return model.SanitizeMetric(in.CookieSignals.ThirdPartyCookieEstimateCount)
		},
		Explain: func(v float64) string {
			return fmt.Sprintf("An estimated %.0f third-party cookies are set, enabling cross-site tracking.", v)
		},
	},
	{
		ID:                 RuleThirdPartyScriptDomains,
		Title:              "Many third-party script domains",
		Severity:           model.SeverityMedium,
		MitigationPriority: model.PriorityP2,
		Source:             SourceContent,
		Operator:           OpGTE,
		Threshold:          10,
		Value: func(_ float64, in *model.NormalizedAnalysisInput) float64 {
			return model.SanitizeMetric(in.ScriptSignals.ThirdPartyScriptDomainCount)
		},
		Explain: func(v float64) string {
			return fmt.Sprintf("Scripts load from %.0f distinct third-party domains, each a potential data recipient.", v)
		},
	},
	{
		ID:                 RulePersistentStorageFootprint,
		Title:              "Heavy persistent storage footprint",
		Severity:           model.SeverityMedium,
		MitigationPriority: model.PriorityP2,
		Source:             SourceStorage,
		Operator:           OpGTE,
		Threshold:          2_000_000,
		Value: func(_ float64, in *model.NormalizedAnalysisInput) float64 {
			return in.CombinedStorageBytes()
		},
		Explain: func(v float64) string {
			return fmt.Sprintf("The page keeps roughly %.0f bytes in web storage, enough to persist identifiers long-term.", v)
		},
	},
	{
		ID:                 RuleTrackingIndicatorDensity,
		Title:              "Dense tracking indicators",
		Severity:           model.SeverityHigh,
		MitigationPriority: model.PriorityP1,
		Source:             SourceTracking,
		Operator:           OpGTE,
		Threshold:          12,
		Value: func(_ float64, in *model.NormalizedAnalysisInput) float64 {
			return in.TrackingHitSum()
		},
		Explain: func(v float64) string {
			return fmt.Sprintf("Tracking heuristics matched %.0f times across domains, endpoints and query parameters.", v)
		},
	},
	{
		ID:                 RuleNetworkHeavyThirdParty,
		Title:              "Heavy third-party request volume",
		Severity:           model.SeverityMedium,
		MitigationPriority: model.PriorityP2,
		Source:             SourceNetwork,
		Operator:           OpGTE,
		Threshold:          40,
		Value: func(_ float64, in *model.NormalizedAnalysisInput) float64 {
			return model.SanitizeMetric(in.NetworkSignals.ThirdPartyRequestCount)
		},
		Explain: func(v float64) string {
			return fmt.Sprintf("The page issued %.0f requests to third-party origins during observation.", v)
		},
	},
	{
		ID:                 RuleNetworkSuspiciousEndpoints,
		Title:              "Repeated suspicious endpoint hits",
		Severity:           model.SeverityHigh,
		MitigationPriority: model.PriorityP1,
		Source:             SourceNetwork,
		Operator:           OpGTE,
		Threshold:          15,
		Value: func(_ float64, in *model.NormalizedAnalysisInput) float64 {
			return model.SanitizeMetric(in.NetworkSignals.SuspiciousEndpointHitCount)
		},
		Explain: func(v float64) string {
			return fmt.Sprintf("Suspicious collection endpoints were hit %.0f times, suggesting active beaconing.", v)
		},
	},
	{
		ID:                 RuleNetworkTrackerDomains,
		Title:              "Concentrated known-tracker traffic",
		Severity:           model.SeverityHigh,
		MitigationPriority: model.PriorityP1,
		Source:             SourceNetwork,
		Operator:           OpGTE,
		Threshold:          8,
		Value: func(_ float64, in *model.NormalizedAnalysisInput) float64 {
			return model.SanitizeMetric(in.NetworkSignals.KnownTrackerDomainHitCount)
		},
		Explain: func(v float64) string {
			return fmt.Sprintf("Known tracker domains were contacted %.0f times during observation.", v)
		},
	},
	{
		ID:                 RuleNetworkShortWindowBurst,
		Title:              "Short-window request bursts",
		Severity:           model.SeverityMedium,
		MitigationPriority: model.PriorityP2,
		Source:             SourceNetwork,
		Operator:           OpGTE,
		Threshold:          25,
		Value: func(_ float64, in *model.NormalizedAnalysisInput) float64 {
			return model.SanitizeMetric(in.NetworkSignals.ShortWindowBurstCount)
		},
		Explain: func(v float64) string {
			return fmt.Sprintf("%.0f request bursts fired inside the short observation window, a telemetry pattern.", v)
		},
	},
}

// Rules returns a copy of the canonical rule table, in evaluation order.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

// compare applies op to (value, threshold). Unknown operators never fire.
func compare(value float64, op string, threshold float64) bool {
	switch op {
	case OpGTE:
		return value >= threshold
	case OpGT:
		return value > threshold
	case OpLTE:
		return value <= threshold
	case OpLT:
		return value < threshold
	default:
		return false
	}
}
