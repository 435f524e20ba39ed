package model

// SourceFlags records which upstream collectors succeeded for one analysis.
// Each flag covers one leg of the collection pipeline; a false value means
// the corresponding signals are missing or untrustworthy, never that the
// page itself is risky.
type SourceFlags struct {
	// ContentReachable reports whether the page document could be reached at all.
	ContentReachable bool `json:"content_reachable"`

	// ContentSignalsAvailable reports whether DOM-derived signals (scripts,
	// storage, tracking heuristics) were collected.
	ContentSignalsAvailable bool `json:"content_signals_available"`

	// CookieSignalsAvailable reports whether the cookie jar could be enumerated.
	CookieSignalsAvailable bool `json:"cookie_signals_available"`

	// NetworkSignalsAvailable reports whether request-level network signals
	// were observed for the page.
	NetworkSignalsAvailable bool `json:"network_signals_available"`
}

// ScriptSignals summarizes script usage observed on the page.
type ScriptSignals struct {
	// ThirdPartyScriptDomainCount is the number of distinct third-party
	// hosts that served scripts to the page.
	ThirdPartyScriptDomainCount float64 `json:"third_party_script_domain_count"`

	// ExternalScriptCount is the total number of external script tags.
	ExternalScriptCount float64 `json:"external_script_count"`
}

// CookieSignals summarizes cookie observations for the page origin.
type CookieSignals struct {
	// ThirdPartyCookieEstimateCount estimates how many cookies belong to
	// third-party domains.
	ThirdPartyCookieEstimateCount float64 `json:"third_party_cookie_estimate_count"`

	// TotalCookieCount is the total number of cookies visible for the page.
	TotalCookieCount float64 `json:"total_cookie_count"`
}

// StorageArea describes one web-storage area (localStorage or sessionStorage).
type StorageArea struct {
	// ApproxBytes is a byte estimate of the serialized storage content.
	ApproxBytes float64 `json:"approx_bytes"`

	// KeyCount is the number of keys present in the area.
	KeyCount float64 `json:"key_count"`
}

// StorageSignals carries per-area web-storage observations.
type StorageSignals struct {
	LocalStorage   StorageArea `json:"local_storage"`
	SessionStorage StorageArea `json:"session_storage"`
}

// TrackingHeuristics holds independent tracker-pattern match counts produced
// by the content collector.
type TrackingHeuristics struct {
	// TrackerDomainHitCount counts resources served from known tracker domains.
	TrackerDomainHitCount float64 `json:"tracker_domain_hit_count"`

	// EndpointPatternHitCount counts URLs matching tracking endpoint patterns.
	EndpointPatternHitCount float64 `json:"endpoint_pattern_hit_count"`

	// TrackingQueryParamCount counts tracking-flavored query parameters.
	TrackingQueryParamCount float64 `json:"tracking_query_param_count"`
}

// NetworkSignals carries request-level observations for the page.
// When Available is false every numeric field is treated as zero by all
// consumers regardless of its literal value.
type NetworkSignals struct {
	// Available reports whether network observation ran for this page.
	Available bool `json:"available"`

	// UnavailableReason optionally explains why network observation failed.
	UnavailableReason string `json:"unavailable_reason,omitempty"`

	// ThirdPartyRequestCount counts requests to third-party origins.
	ThirdPartyRequestCount float64 `json:"third_party_request_count"`

	// SuspiciousEndpointHitCount counts requests hitting suspicious endpoints.
	SuspiciousEndpointHitCount float64 `json:"suspicious_endpoint_hit_count"`

	// KnownTrackerDomainHitCount counts requests to known tracker domains.
	KnownTrackerDomainHitCount float64 `json:"known_tracker_domain_hit_count"`

	// ShortWindowBurstCount counts request bursts inside a short observation window.
	ShortWindowBurstCount float64 `json:"short_window_burst_count"`
}

// NormalizedAnalysisInput is the sole input contract of the analysis core:
// a flat, fully-populated record produced by the external collection layer.
// The core never trusts upstream numeric hygiene — any non-finite or
// negative numeric field is treated as zero by every consumer.
type NormalizedAnalysisInput struct {
	SourceFlags        SourceFlags        `json:"source_flags"`
	ScriptSignals      ScriptSignals      `json:"script_signals"`
	CookieSignals      CookieSignals      `json:"cookie_signals"`
	StorageSignals     StorageSignals     `json:"storage_signals"`
	TrackingHeuristics TrackingHeuristics `json:"tracking_heuristics"`
	NetworkSignals     NetworkSignals     `json:"network_signals"`

	// Confidence is a legacy pass-through tag set by some collectors.
	// The core derives its own ConfidenceAssessment and ignores this field.
	Confidence string `json:"confidence,omitempty"`
}

// CombinedStorageBytes returns the sanitized localStorage + sessionStorage
// byte estimate.
func (in *NormalizedAnalysisInput) CombinedStorageBytes() float64 {
	return SanitizeMetric(in.StorageSignals.LocalStorage.ApproxBytes) +
		SanitizeMetric(in.StorageSignals.SessionStorage.ApproxBytes)
}

// TrackingHitSum returns the sanitized sum of all tracking-heuristic hits.
func (in *NormalizedAnalysisInput) TrackingHitSum() float64 {
	return SanitizeMetric(in.TrackingHeuristics.TrackerDomainHitCount) +
		SanitizeMetric(in.TrackingHeuristics.EndpointPatternHitCount) +
		SanitizeMetric(in.TrackingHeuristics.TrackingQueryParamCount)
}

// NetworkActivitySum returns the sanitized sum of all network counters, or 0
// when network signals are unavailable.
func (in *NormalizedAnalysisInput) NetworkActivitySum() float64 {
	if !in.NetworkSignals.Available {
		return 0
	}
	return SanitizeMetric(in.NetworkSignals.ThirdPartyRequestCount) +
		SanitizeMetric(in.NetworkSignals.SuspiciousEndpointHitCount) +
		SanitizeMetric(in.NetworkSignals.KnownTrackerDomainHitCount) +
		SanitizeMetric(in.NetworkSignals.ShortWindowBurstCount)
}
