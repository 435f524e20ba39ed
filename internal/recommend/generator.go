// Package recommend maps detected risk items to a deduplicated,
// severity/priority-sorted list of mitigation actions. GenerateRecommendations
// is pure and total.
package recommend

import (
	"sort"

	"github.com/pagesentry/pagesentry/internal/model"
)

// accumulator folds the risks that triggered one action.
type accumulator struct {
	severity     model.Severity
	riskPriority model.MitigationPriority
	riskIDs      map[string]struct{}
}

// GenerateRecommendations walks the risk items in detection order,
// accumulates per-action severity/priority/trigger sets, and emits one
// Recommendation per distinct action in a total deterministic order.
func GenerateRecommendations(risks model.RiskDetectionOutput) model.RecommendationOutput {
	accs := make(map[string]*accumulator)

	for _, item := range risks.RiskItems {
		for _, actionID := range riskActions[item.RuleID] {
			acc, ok := accs[actionID]
			if !ok {
				acc = &accumulator{
					severity:     item.Severity,
					riskPriority: item.MitigationPriority,
					riskIDs:      map[string]struct{}{},
				}
				accs[actionID] = acc
			}
			// Worse severity wins; more urgent priority wins.
			acc.severity = acc.severity.Worse(item.Severity)
			acc.riskPriority = acc.riskPriority.MoreUrgent(item.MitigationPriority)
			acc.riskIDs[item.RuleID] = struct{}{}
		}
	}

	recs := make([]model.Recommendation, 0, len(accs))
	for actionID, acc := range accs {
		action, ok := actionByID(actionID)
		if !ok {
			// Mapping table references an unknown action; skip rather than
			// emit a half-formed recommendation.
			continue
		}

		triggered := make([]string, 0, len(acc.riskIDs))
		for id := range acc.riskIDs {
			triggered = append(triggered, id)
		}
		sort.Strings(triggered)

		recs = append(recs, model.Recommendation{
			ActionID:           action.ID,
			Title:              action.Title,
			Rationale:          action.Rationale,
			Severity:           acc.severity,
			Priority:           action.DefaultPriority.MoreUrgent(acc.riskPriority),
			TriggeredByRiskIDs: triggered,
		})
	}

	// Total order: severity (high first), then priority (p1 first), then
	// action id lexicographically.
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Severity.Rank() != recs[j].Severity.Rank() {
			return recs[i].Severity.Rank() < recs[j].Severity.Rank()
		}
		if recs[i].Priority.Rank() != recs[j].Priority.Rank() {
			return recs[i].Priority.Rank() < recs[j].Priority.Rank()
		}
		return recs[i].ActionID < recs[j].ActionID
	})

	return model.RecommendationOutput{
		Recommendations: recs,
		RulesetVersion:  model.RulesetVersion,
	}
}
