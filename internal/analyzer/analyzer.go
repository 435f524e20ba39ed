// Package analyzer composes the four pure pipeline stages (score engine,
// risk detector, confidence assessor, recommendation generator) into a
// single AnalysisReport.
package analyzer

import (
	"time"

	"github.com/pagesentry/pagesentry/internal/confidence"
	"github.com/pagesentry/pagesentry/internal/logging"
	"github.com/pagesentry/pagesentry/internal/model"
	"github.com/pagesentry/pagesentry/internal/recommend"
	"github.com/pagesentry/pagesentry/internal/risk"
	"github.com/pagesentry/pagesentry/internal/scoring"
)

// Analyzer turns normalized page signals into a full analysis report.
type Analyzer interface {
	// Analyze runs the pipeline. analyzedAt is supplied by the caller so
	// the pipeline itself stays a deterministic function of its input.
	Analyze(pageURL string, in *model.NormalizedAnalysisInput, analyzedAt time.Time) *model.AnalysisReport
}

// PipelineAnalyzer is the default Analyzer. It holds no state between calls
// and is safe for concurrent use.
type PipelineAnalyzer struct {
	logger logging.Logger
}

// NewPipelineAnalyzer constructs the default analyzer. logger may be nil;
// the pipeline then runs silently.
func NewPipelineAnalyzer(logger logging.Logger) *PipelineAnalyzer {
	if logger != nil {
		logger = logger.With(logging.Field{Key: "component", Value: "pipeline-analyzer"})
	}
	return &PipelineAnalyzer{logger: logger}
}

// Analyze runs score -> risk -> recommendations, with confidence derived
// independently from the same input, and bundles the results.
func (p *PipelineAnalyzer) Analyze(pageURL string, in *model.NormalizedAnalysisInput, analyzedAt time.Time) *model.AnalysisReport {
	score := scoring.ComputeScore(in)
	risks := risk.DetectRisks(score.Score, in)
	conf := confidence.DeriveConfidence(in)
	recs := recommend.GenerateRecommendations(risks)

	if p.logger != nil {
		p.logger.Info("analysis complete",
			logging.Field{Key: "page_url", Value: pageURL},
			logging.Field{Key: "score", Value: score.Score},
			logging.Field{Key: "overall_risk", Value: string(risks.OverallRisk)},
			logging.Field{Key: "confidence", Value: conf.Score},
			logging.Field{Key: "risk_items", Value: len(risks.RiskItems)},
		)
	}

	return &model.AnalysisReport{
		PageURL:         pageURL,
		AnalyzedAt:      analyzedAt,
		Score:           score,
		Risks:           risks,
		Confidence:      conf,
		Recommendations: recs,
		RulesetVersion:  model.RulesetVersion,
	}
}
