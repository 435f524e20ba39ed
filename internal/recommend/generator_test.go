package recommend_test

import (
	"reflect"
	"sort"
	"testing"

	"github.com/pagesentry/pagesentry/internal/model"
	"github.com/pagesentry/pagesentry/internal/recommend"
	"github.com/pagesentry/pagesentry/internal/risk"
	"github.com/pagesentry/pagesentry/internal/testutil"
)

func detectSaturated() model.RiskDetectionOutput {
	return risk.DetectRisks(0, testutil.SaturatedInput())
}

// ─── Dedup & merging ───────────────────────────────────────────────────

func TestGenerateRecommendations_DedupByActionID(t *testing.T) {
	t.Parallel()
	out := recommend.GenerateRecommendations(detectSaturated())

	seen := map[string]bool{}
	for _, rec := range out.Recommendations {
		if seen[rec.ActionID] {
			t.Errorf("duplicate action id %s", rec.ActionID)
		}
		seen[rec.ActionID] = true
		if len(rec.TriggeredByRiskIDs) == 0 {
			t.Errorf("action %s has empty triggered_by_risk_ids", rec.ActionID)
		}
	}
}

func TestGenerateRecommendations_SaturatedYieldsFullCatalog(t *testing.T) {
	t.Parallel()
	out := recommend.GenerateRecommendations(detectSaturated())

	if len(out.Recommendations) != 6 {
		t.Fatalf("got %d recommendations, want all 6 catalog actions", len(out.Recommendations))
	}

	// Total deterministic order: severity (high first), priority (p1 first),
	// then action id.
	wantOrder := []string{
		recommend.ActionBlockKnownTrackers,
		recommend.ActionHardenNetworkPrivacy,
		recommend.ActionReduceThirdPartyCookies,
		recommend.ActionReviewTrackingPerms,
		recommend.ActionClearSiteStorageData,
		recommend.ActionLimitThirdPartyScripts,
	}
	gotOrder := make([]string, 0, len(out.Recommendations))
	for _, rec := range out.Recommendations {
		gotOrder = append(gotOrder, rec.ActionID)
	}
	if !reflect.DeepEqual(gotOrder, wantOrder) {
		t.Errorf("order = %v, want %v", gotOrder, wantOrder)
	}

	first := out.Recommendations[0]
	if first.Severity != model.SeverityHigh || first.Priority != model.PriorityP1 {
		t.Errorf("first recommendation is %s/%s, want high/p1", first.Severity, first.Priority)
	}
}

func TestGenerateRecommendations_SeverityAndPriorityMerge(t *testing.T) {
	t.Parallel()
	// harden_network_privacy defaults to p2; the high/p1 suspicious-endpoint
	// rule must raise it, and the medium burst rule must not lower it back.
	risks := model.RiskDetectionOutput{
		RiskItems: []model.RiskItem{
			{RuleID: risk.RuleNetworkShortWindowBurst, Severity: model.SeverityMedium, MitigationPriority: model.PriorityP2},
			{RuleID: risk.RuleNetworkSuspiciousEndpoints, Severity: model.SeverityHigh, MitigationPriority: model.PriorityP1},
		},
	}

	out := recommend.GenerateRecommendations(risks)

	var harden *model.Recommendation
	for i := range out.Recommendations {
		if out.Recommendations[i].ActionID == recommend.ActionHardenNetworkPrivacy {
			harden = &out.Recommendations[i]
		}
	}
	if harden == nil {
		t.Fatal("harden_network_privacy not emitted")
	}
	if harden.Severity != model.SeverityHigh {
		t.Errorf("severity = %s, want high (worse of medium and high)", harden.Severity)
	}
	if harden.Priority != model.PriorityP1 {
		t.Errorf("priority = %s, want p1 (more urgent of default p2 and risk p1)", harden.Priority)
	}

	wantTriggers := []string{risk.RuleNetworkShortWindowBurst, risk.RuleNetworkSuspiciousEndpoints}
	sort.Strings(wantTriggers)
	if !reflect.DeepEqual(harden.TriggeredByRiskIDs, wantTriggers) {
		t.Errorf("triggers = %v, want %v (sorted)", harden.TriggeredByRiskIDs, wantTriggers)
	}
}

func TestGenerateRecommendations_CatalogDefaultFloorsPriority(t *testing.T) {
	t.Parallel()
	// reduce_third_party_cookies defaults to p1; even a p2-ish trigger must
	// not demote it.
	risks := model.RiskDetectionOutput{
		RiskItems: []model.RiskItem{
			{RuleID: risk.RuleThirdPartyCookieVolume, Severity: model.SeverityMedium, MitigationPriority: model.PriorityP2},
		},
	}

	out := recommend.GenerateRecommendations(risks)
	if len(out.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(out.Recommendations))
	}
	if out.Recommendations[0].Priority != model.PriorityP1 {
		t.Errorf("priority = %s, want catalog default p1", out.Recommendations[0].Priority)
	}
}

// ─── Unmapped risks ────────────────────────────────────────────────────

func TestGenerateRecommendations_SyntheticItemContributesNothing(t *testing.T) {
	t.Parallel()
	out := recommend.GenerateRecommendations(risk.DetectRisks(100, testutil.NetworkDownInput("offline")))

	if len(out.Recommendations) != 0 {
		t.Errorf("synthetic network item produced recommendations: %+v", out.Recommendations)
	}
}

func TestGenerateRecommendations_EmptyRisks(t *testing.T) {
	t.Parallel()
	out := recommend.GenerateRecommendations(model.RiskDetectionOutput{})

	if len(out.Recommendations) != 0 {
		t.Errorf("empty risks produced recommendations: %+v", out.Recommendations)
	}
	if out.RulesetVersion != model.RulesetVersion {
		t.Errorf("ruleset version = %q", out.RulesetVersion)
	}
}

// ─── Determinism ───────────────────────────────────────────────────────

func TestGenerateRecommendations_Deterministic(t *testing.T) {
	t.Parallel()
	risks := detectSaturated()
	first := recommend.GenerateRecommendations(risks)
	for i := 0; i < 10; i++ {
		if next := recommend.GenerateRecommendations(risks); !reflect.DeepEqual(first, next) {
			t.Fatalf("run %d diverged from first run", i)
		}
	}
}
