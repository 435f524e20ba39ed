// Package risk classifies a privacy score into an overall risk band and
// evaluates independent threshold rules against the normalized signals to
// produce discrete risk items. DetectRisks is pure and total.
package risk

import (
	"fmt"

	"github.com/pagesentry/pagesentry/internal/model"
)

// DetectRisks maps the privacy score into a band and evaluates every rule in
// the canonical table. Network-sourced rules are skipped (never evaluated,
// never fire) when network signals are unavailable; in that case one
// synthetic low/p3 item is appended instead.
func DetectRisks(score float64, in *model.NormalizedAnalysisInput) model.RiskDetectionOutput {
	clamped := model.ClampScore(model.SanitizeMetric(score))

	out := model.RiskDetectionOutput{
		RiskItems:      []model.RiskItem{},
		RulesetVersion: model.RulesetVersion,
	}

	if band, ok := bandFor(clamped); ok {
		out.OverallRisk = band.Level
		out.OverallExplanation = band.Explanation
	} else {
		// Unreachable with a correct band table; kept as a guard against a
		// configuration bug.
		out.OverallRisk = model.RiskMedium
		out.OverallExplanation = fmt.Sprintf("The privacy score %.2f did not match any risk band; treating it as medium risk.", clamped)
		out.MappingFallbackUsed = true
	}

	networkAvailable := in.NetworkSignals.Available

	for _, r := range rules {
		if r.Source == SourceNetwork && !networkAvailable {
			continue
		}
		value := r.Value(clamped, in)
		if !compare(value, r.Operator, r.Threshold) {
			continue
		}
		out.RiskItems = append(out.RiskItems, model.RiskItem{
			RuleID:             r.ID,
			Title:              r.Title,
			Severity:           r.Severity,
			MitigationPriority: r.MitigationPriority,
			Source:             r.Source,
			Value:              value,
			Threshold:          r.Threshold,
			Operator:           r.Operator,
			Explanation:        r.Explain(value),
		})
	}

	if !networkAvailable {
		out.NetworkFallbackUsed = true
		out.NetworkUnavailableReason = in.NetworkSignals.UnavailableReason
		out.RiskItems = append(out.RiskItems, syntheticNetworkItem(in.NetworkSignals.UnavailableReason))
	}

	return out
}

// syntheticNetworkItem reports that the network leg of the pipeline did not
// run, embedding the collector's reason when one was given.
func syntheticNetworkItem(reason string) model.RiskItem {
	explanation := "Network signals were unavailable for this page; network-level risks could not be evaluated."
	if reason != "" {
		explanation = fmt.Sprintf("Network signals were unavailable (%s); network-level risks could not be evaluated.", reason)
	}
	return model.RiskItem{
		RuleID:             RuleNetworkSignalsUnavailable,
		Title:              "Network signals unavailable",
		Severity:           model.SeverityLow,
		MitigationPriority: model.PriorityP3,
		Source:             SourceNetwork,
		Explanation:        explanation,
	}
}
