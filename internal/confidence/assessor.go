// Package confidence derives a 0-100 confidence score describing how much
// of the signal-collection pipeline was actually available for an analysis.
// The score is independent of how privacy-risky the page itself is.
package confidence

import (
	"fmt"

	"github.com/pagesentry/pagesentry/internal/model"
)

// Penalty codes, one per collection leg.
const (
	CodeContentUnreachable        = "CONTENT_UNREACHABLE"
	CodeContentSignalsUnavailable = "CONTENT_SIGNALS_UNAVAILABLE"
	CodeCookieSignalsUnavailable  = "COOKIE_SIGNALS_UNAVAILABLE"
	CodeNetworkSignalsUnavailable = "NETWORK_SIGNALS_UNAVAILABLE"
)

// penaltyRule is one flat deduction tied to an unmet source flag.
type penaltyRule struct {
	code    string
	penalty float64
	applies func(in *model.NormalizedAnalysisInput) bool
	message func(in *model.NormalizedAnalysisInput) string
}

// penaltyRules is evaluated in declaration order. Each rule applies at most
// once; the rules are independent, so several can apply simultaneously.
var penaltyRules = []penaltyRule{
	{
		code:    CodeContentUnreachable,
		penalty: 20,
		applies: func(in *model.NormalizedAnalysisInput) bool { return !in.SourceFlags.ContentReachable },
		message: func(_ *model.NormalizedAnalysisInput) string {
			return "The page content could not be reached."
		},
	},
	{
		code:    CodeContentSignalsUnavailable,
		penalty: 35,
		applies: func(in *model.NormalizedAnalysisInput) bool { return !in.SourceFlags.ContentSignalsAvailable },
		message: func(_ *model.NormalizedAnalysisInput) string {
			return "Content signals (scripts, storage, tracking heuristics) were not collected."
		},
	},
	{
		code:    CodeCookieSignalsUnavailable,
		penalty: 20,
		applies: func(in *model.NormalizedAnalysisInput) bool { return !in.SourceFlags.CookieSignalsAvailable },
		message: func(_ *model.NormalizedAnalysisInput) string {
			return "Cookie signals were not collected."
		},
	},
	{
		code:    CodeNetworkSignalsUnavailable,
		penalty: 25,
		applies: func(in *model.NormalizedAnalysisInput) bool { return !in.SourceFlags.NetworkSignalsAvailable },
		message: func(in *model.NormalizedAnalysisInput) string {
			if reason := in.NetworkSignals.UnavailableReason; reason != "" {
				return fmt.Sprintf("Network signals were not collected (%s).", reason)
			}
			return "Network signals were not collected."
		},
	},
}

// DeriveConfidence starts at 100 and applies one flat penalty per unmet
// source flag, in fixed order, clamping the result into [0,100]. Reasons
// preserve rule-application order, not severity order.
func DeriveConfidence(in *model.NormalizedAnalysisInput) model.ConfidenceAssessment {
	score := 100.0
	reasons := []model.ConfidenceReason{}

	for _, r := range penaltyRules {
		if !r.applies(in) {
			continue
		}
		score -= r.penalty
		reasons = append(reasons, model.ConfidenceReason{
			Code:    r.code,
			Penalty: r.penalty,
			Message: r.message(in),
		})
	}

	score = model.RoundScore(model.ClampScore(score))

	return model.ConfidenceAssessment{
		Score:          score,
		Level:          levelFor(score),
		Reasons:        reasons,
		RulesetVersion: model.RulesetVersion,
	}
}

// levelFor buckets a confidence score: >=80 high, >=50 medium, else low.
func levelFor(score float64) model.ConfidenceLevel {
	switch {
	case score >= 80:
		return model.ConfidenceHigh
	case score >= 50:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}
