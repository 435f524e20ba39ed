package scoring

import "github.com/pagesentry/pagesentry/internal/model"

// Factor defines one weighted penalty dimension of the privacy score.
type Factor struct {
	// ID is the stable factor identifier.
	ID string

	// Label is the human-readable name used in reason texts.
	Label string

	// Weight is the maximum penalty the factor can deduct. All weights sum
	// to 100, so a fully saturated input scores 0.
	Weight float64

	// HardCap is the raw-value ceiling applied before normalization.
	HardCap float64

	// Raw extracts the factor's raw signal value from the input. Extractors
	// sanitize every field they read; they never trust upstream hygiene.
	Raw func(in *model.NormalizedAnalysisInput) float64
}

// factors is the canonical factor table. Declaration order is load-bearing:
// it is the tie-break for StrongestNegativeReasons and the emission order of
// Contributions.
var factors = []Factor{
	{
		ID:      FactorThirdPartyScripts,
		Label:   "Third-party script domains",
		Weight:  20,
		HardCap: 20,
		Raw: func(in *model.NormalizedAnalysisInput) float64 {
			return model.SanitizeMetric(in.ScriptSignals.ThirdPartyScriptDomainCount)
		},
	},
	{
		ID:      FactorThirdPartyCookies,
		Label:   "Third-party cookies",
		Weight:  20,
		HardCap: 40,
		Raw: func(in *model.NormalizedAnalysisInput) float64 {
			return model.SanitizeMetric(in.CookieSignals.ThirdPartyCookieEstimateCount)
		},
	},
	{
		ID:      FactorStorageUsage,
		Label:   "Persistent storage",
		Weight:  15,
		HardCap: 4_000_000,
		Raw: func(in *model.NormalizedAnalysisInput) float64 {
			return in.CombinedStorageBytes()
		},
	},
	{
		ID:      FactorTrackingIndicators,
		Label:   "Tracking indicators",
		Weight:  25,
		HardCap: 30,
		Raw: func(in *model.NormalizedAnalysisInput) float64 {
			return in.TrackingHitSum()
		},
	},
	{
		ID:      FactorNetworkSuspiciousness,
		Label:   "Suspicious network activity",
		Weight:  20,
		HardCap: 80,
		Raw: func(in *model.NormalizedAnalysisInput) float64 {
			return in.NetworkActivitySum()
		},
	},
}

// Factor ids, exported for consumers that key on contributions.
const (
	FactorThirdPartyScripts     = "third_party_scripts"
	FactorThirdPartyCookies     = "third_party_cookies"
	FactorStorageUsage          = "storage_usage"
	FactorTrackingIndicators    = "tracking_indicators"
	FactorNetworkSuspiciousness = "network_suspiciousness"
)

// Factors returns a copy of the canonical factor table, in declaration order.
func Factors() []Factor {
	return append([]Factor(nil), factors...)
}
