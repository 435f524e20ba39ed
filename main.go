// Command pagesentry runs a one-shot privacy analysis: it reads a
// NormalizedAnalysisInput JSON document (or a built-in sample), runs the
// scoring -> risk -> confidence -> recommendation pipeline and prints the
// resulting report as JSON.
// Usage: go run . [-input signals.json] [-url https://example.com] [-pretty]
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pagesentry/pagesentry/internal/analyzer"
	"github.com/pagesentry/pagesentry/internal/cli"
	"github.com/pagesentry/pagesentry/internal/logging"
	"github.com/pagesentry/pagesentry/internal/model"
)

func main() {
	args, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	input, err := loadInput(args.InputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	an := analyzer.NewPipelineAnalyzer(logging.NewStdoutLogger("pagesentry"))
	report := an.Analyze(args.PageURL, input, time.Now().UTC())

	var out []byte
	if args.Pretty {
		out, err = json.MarshalIndent(report, "", "  ")
	} else {
		out, err = json.Marshal(report)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func loadInput(path string) (*model.NormalizedAnalysisInput, error) {
	if path == "" {
		return sampleInput(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}
	var input model.NormalizedAnalysisInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("parsing input file: %w", err)
	}
	return &input, nil
}

// sampleInput is a mid-risk page: some third-party activity, network
// observation working.
func sampleInput() *model.NormalizedAnalysisInput {
	return &model.NormalizedAnalysisInput{
		SourceFlags: model.SourceFlags{
			ContentReachable:        true,
			ContentSignalsAvailable: true,
			CookieSignalsAvailable:  true,
			NetworkSignalsAvailable: true,
		},
		ScriptSignals: model.ScriptSignals{
			ThirdPartyScriptDomainCount: 12,
			ExternalScriptCount:         19,
		},
		CookieSignals: model.CookieSignals{
			ThirdPartyCookieEstimateCount: 14,
			TotalCookieCount:              22,
		},
		StorageSignals: model.StorageSignals{
			LocalStorage:   model.StorageArea{ApproxBytes: 380_000, KeyCount: 24},
			SessionStorage: model.StorageArea{ApproxBytes: 52_000, KeyCount: 6},
		},
		TrackingHeuristics: model.TrackingHeuristics{
			TrackerDomainHitCount:   5,
			EndpointPatternHitCount: 3,
			TrackingQueryParamCount: 2,
		},
		NetworkSignals: model.NetworkSignals{
			Available:                  true,
			ThirdPartyRequestCount:     28,
			SuspiciousEndpointHitCount: 4,
			KnownTrackerDomainHitCount: 3,
			ShortWindowBurstCount:      6,
		},
	}
}
