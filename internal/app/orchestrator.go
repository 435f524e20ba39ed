package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pagesentry/pagesentry/internal/analyzer"
	"github.com/pagesentry/pagesentry/internal/logging"
	"github.com/pagesentry/pagesentry/internal/model"
	"github.com/pagesentry/pagesentry/internal/store"
)

// Orchestrator ties together the analysis pipeline, the report store and the
// subscriber broadcast used by the WebSocket surface.
type Orchestrator struct {
	cfg      *Config
	analyzer analyzer.Analyzer
	store    *store.Store
	logger   logging.Logger

	subsMu sync.Mutex
	subs   map[string]chan *model.AnalysisReport
}

// NewOrchestrator wires config, analyzer, store and logger. analyzer may be
// nil, in which case the default pipeline analyzer is used.
func NewOrchestrator(cfg *Config, an analyzer.Analyzer, st *store.Store, logger logging.Logger) *Orchestrator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if an == nil {
		an = analyzer.NewPipelineAnalyzer(logger)
	}
	return &Orchestrator{
		cfg:      cfg,
		analyzer: an,
		store:    st,
		logger:   logger,
		subs:     make(map[string]chan *model.AnalysisReport),
	}
}

// AnalyzePage runs the pipeline over the normalized input, persists the
// resulting report and broadcasts it to subscribers.
func (o *Orchestrator) AnalyzePage(ctx context.Context, pageURL string, in *model.NormalizedAnalysisInput) (*model.AnalysisReport, error) {
	if in == nil {
		return nil, fmt.Errorf("normalized input is nil")
	}

	report := o.analyzer.Analyze(pageURL, in, time.Now().UTC())

	if o.store != nil {
		if _, err := o.store.SaveReport(ctx, report); err != nil {
			return nil, fmt.Errorf("persisting report: %w", err)
		}
	}

	o.broadcast(report)
	return report, nil
}

// GetReport loads one persisted report by id.
func (o *Orchestrator) GetReport(ctx context.Context, id string) (*model.AnalysisReport, error) {
	return o.store.GetReport(ctx, id)
}

// LatestReport loads the most recent persisted report for a page.
func (o *Orchestrator) LatestReport(ctx context.Context, pageURL string) (*model.AnalysisReport, error) {
	return o.store.LatestReport(ctx, pageURL)
}

// ListReports lists persisted report summaries, newest first.
func (o *Orchestrator) ListReports(ctx context.Context, pageURL string, limit int) ([]store.ReportSummary, error) {
	return o.store.ListReports(ctx, pageURL, limit)
}

// GetReportDiff returns the audit diff between the given report and its
// predecessor for the same page.
func (o *Orchestrator) GetReportDiff(ctx context.Context, reportID string) (json.RawMessage, error) {
	return o.store.GetDiff(ctx, reportID)
}

// Subscribe registers a report subscriber and returns its id plus the
// receive channel. Callers must Unsubscribe when done.
func (o *Orchestrator) Subscribe() (string, <-chan *model.AnalysisReport) {
	id := uuid.New().String()
	ch := make(chan *model.AnalysisReport, o.cfg.SubscriberBuffer)

	o.subsMu.Lock()
	o.subs[id] = ch
	o.subsMu.Unlock()

	if o.logger != nil {
		o.logger.Debug("subscriber added", logging.Field{Key: "subscriber_id", Value: id})
	}
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (o *Orchestrator) Unsubscribe(id string) {
	o.subsMu.Lock()
	ch, ok := o.subs[id]
	if ok {
		delete(o.subs, id)
	}
	o.subsMu.Unlock()

	if ok {
		close(ch)
	}
}

// broadcast delivers a report to every subscriber. Non-blocking send; a full
// buffer drops the report for that subscriber.
func (o *Orchestrator) broadcast(report *model.AnalysisReport) {
	o.subsMu.Lock()
	defer o.subsMu.Unlock()
	for id, ch := range o.subs {
		select {
		case ch <- report:
		default:
			if o.logger != nil {
				o.logger.Warn("subscriber buffer full, dropping report",
					logging.Field{Key: "subscriber_id", Value: id},
					logging.Field{Key: "report_id", Value: report.ID},
				)
			}
		}
	}
}

// Close releases subscriber channels and the underlying store.
func (o *Orchestrator) Close() {
	o.subsMu.Lock()
	for id, ch := range o.subs {
		delete(o.subs, id)
		close(ch)
	}
	o.subsMu.Unlock()

	if o.store != nil {
		if err := o.store.Close(); err != nil && o.logger != nil {
			o.logger.Warn("closing store", logging.Field{Key: "error", Value: err.Error()})
		}
	}
}
