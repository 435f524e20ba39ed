// Package testutil provides shared test doubles and input fixtures for use
// across package tests. Dummies implement the corresponding interfaces from
// the production code, allowing injection into components under test without
// real I/O or side effects.
package testutil

import (
	"sync"

	"github.com/pagesentry/pagesentry/internal/logging"
	"github.com/pagesentry/pagesentry/internal/model"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// ─── Input fixtures ────────────────────────────────────────────────────

// CleanInput returns an input with every collector available and no signal
// activity: score 100, no risks, confidence 100.
func CleanInput() *model.NormalizedAnalysisInput {
	return &model.NormalizedAnalysisInput{
		SourceFlags: model.SourceFlags{
			ContentReachable:        true,
			ContentSignalsAvailable: true,
			CookieSignalsAvailable:  true,
			NetworkSignalsAvailable: true,
		},
		NetworkSignals: model.NetworkSignals{Available: true},
	}
}

// SaturatedInput returns an input that maxes out every penalty factor and
// fires every threshold rule: score 0, overall risk high.
func SaturatedInput() *model.NormalizedAnalysisInput {
	in := CleanInput()
	in.ScriptSignals.ThirdPartyScriptDomainCount = 30
	in.ScriptSignals.ExternalScriptCount = 45
	in.CookieSignals.ThirdPartyCookieEstimateCount = 80
	in.CookieSignals.TotalCookieCount = 95
	in.StorageSignals.LocalStorage = model.StorageArea{ApproxBytes: 5_000_000, KeyCount: 60}
	in.StorageSignals.SessionStorage = model.StorageArea{ApproxBytes: 2_500_000, KeyCount: 12}
	in.TrackingHeuristics = model.TrackingHeuristics{
		TrackerDomainHitCount:   20,
		EndpointPatternHitCount: 14,
		TrackingQueryParamCount: 8,
	}
	in.NetworkSignals = model.NetworkSignals{
		Available:                  true,
		ThirdPartyRequestCount:     62,
		SuspiciousEndpointHitCount: 31,
		KnownTrackerDomainHitCount: 18,
		ShortWindowBurstCount:      36,
	}
	return in
}

// NetworkDownInput returns an otherwise-clean input whose network collector
// failed with the given reason.
func NetworkDownInput(reason string) *model.NormalizedAnalysisInput {
	in := CleanInput()
	in.SourceFlags.NetworkSignalsAvailable = false
	in.NetworkSignals = model.NetworkSignals{
		Available:         false,
		UnavailableReason: reason,
		// Literal junk that must be ignored while network is unavailable.
		ThirdPartyRequestCount:     999,
		SuspiciousEndpointHitCount: 999,
		KnownTrackerDomainHitCount: 999,
		ShortWindowBurstCount:      999,
	}
	return in
}
