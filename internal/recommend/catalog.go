package recommend

import (
	"github.com/pagesentry/pagesentry/internal/model"
	"github.com/pagesentry/pagesentry/internal/risk"
)

// Action is one entry of the static recommendation catalog.
type Action struct {
	ID        string
	Title     string
	Rationale string

	// DefaultPriority is the catalog baseline; a triggering risk with a
	// more urgent mitigation priority raises the final priority.
	DefaultPriority model.MitigationPriority
}

// Action ids.
const (
	ActionReduceThirdPartyCookies = "reduce_third_party_cookies"
	ActionLimitThirdPartyScripts  = "limit_third_party_scripts"
	ActionClearSiteStorageData    = "clear_site_storage_data"
	ActionBlockKnownTrackers      = "block_known_trackers"
	ActionReviewTrackingPerms     = "review_tracking_permissions"
	ActionHardenNetworkPrivacy    = "harden_network_privacy"
)

// catalog is the canonical action catalog. Keyed lookups go through
// actionByID; declaration order itself is not a tie-break (the output sort
// is fully determined by severity, priority and action id).
var catalog = []Action{
	{
		ID:              ActionReduceThirdPartyCookies,
		Title:           "Reduce third-party cookies",
		Rationale:       "Blocking or clearing third-party cookies removes the most common cross-site tracking channel.",
		DefaultPriority: model.PriorityP1,
	},
	{
		ID:              ActionLimitThirdPartyScripts,
		Title:           "Limit third-party scripts",
		Rationale:       "Every third-party script domain can observe page activity; trimming them shrinks the exposure surface.",
		DefaultPriority: model.PriorityP2,
	},
	{
		ID:              ActionClearSiteStorageData,
		Title:           "Clear site storage data",
		Rationale:       "Large persistent storage lets sites keep identifiers across visits; clearing it resets that state.",
		DefaultPriority: model.PriorityP2,
	},
	{
		ID:              ActionBlockKnownTrackers,
		Title:           "Block known trackers",
		Rationale:       "A tracker blocklist stops requests to domains whose business is cross-site profiling.",
		DefaultPriority: model.PriorityP1,
	},
	{
		ID:              ActionReviewTrackingPerms,
		Title:           "Review tracking permissions",
		Rationale:       "Site permissions and consent settings may be granting more tracking than intended.",
		DefaultPriority: model.PriorityP2,
	},
	{
		ID:              ActionHardenNetworkPrivacy,
		Title:           "Harden network privacy",
		Rationale:       "DNS filtering, request blocking or a privacy proxy reduces beaconing and burst telemetry.",
		DefaultPriority: model.PriorityP2,
	},
}

// riskActions maps a risk rule id to the catalog actions that mitigate it.
// Many-to-many: several rules can point at the same action, and one rule can
// demand several actions. Rules absent from the map (e.g. the synthetic
// network-unavailable item) contribute nothing.
var riskActions = map[string][]string{
	risk.RuleOverallScoreHigh:           {ActionReviewTrackingPerms},
	risk.RuleThirdPartyCookieVolume:     {ActionReduceThirdPartyCookies},
	risk.RuleThirdPartyScriptDomains:    {ActionLimitThirdPartyScripts},
	risk.RulePersistentStorageFootprint: {ActionClearSiteStorageData},
	risk.RuleTrackingIndicatorDensity:   {ActionBlockKnownTrackers, ActionReviewTrackingPerms},
	risk.RuleNetworkHeavyThirdParty:     {ActionHardenNetworkPrivacy, ActionLimitThirdPartyScripts},
	risk.RuleNetworkSuspiciousEndpoints: {ActionHardenNetworkPrivacy, ActionBlockKnownTrackers},
	risk.RuleNetworkTrackerDomains:      {ActionBlockKnownTrackers},
	risk.RuleNetworkShortWindowBurst:    {ActionHardenNetworkPrivacy},
}

// actionByID resolves a catalog action. The bool result is false for ids the
// catalog does not know (a mapping-table bug).
func actionByID(id string) (Action, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

// Catalog returns a copy of the canonical action catalog.
func Catalog() []Action {
	return append([]Action(nil), catalog...)
}
