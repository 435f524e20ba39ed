package store_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/pagesentry/pagesentry/internal/analyzer"
	"github.com/pagesentry/pagesentry/internal/model"
	"github.com/pagesentry/pagesentry/internal/store"
	"github.com/pagesentry/pagesentry/internal/testutil"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	st, err := store.NewStore(db, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleReport(t *testing.T, id, pageURL string, in *model.NormalizedAnalysisInput) *model.AnalysisReport {
	t.Helper()
	an := analyzer.NewPipelineAnalyzer(nil)
	report := an.Analyze(pageURL, in, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	report.ID = id
	return report
}

// ─── Save / load ───────────────────────────────────────────────────────

func TestSaveReport_RoundTrip(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	report := sampleReport(t, "", "https://example.com", testutil.CleanInput())
	id, err := st.SaveReport(ctx, report)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == "" {
		t.Fatal("save returned empty id")
	}
	if report.ID != id {
		t.Errorf("report.ID = %q, want assigned id %q", report.ID, id)
	}

	got, err := st.GetReport(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PageURL != report.PageURL {
		t.Errorf("page url = %q, want %q", got.PageURL, report.PageURL)
	}
	if got.Score.Score != report.Score.Score {
		t.Errorf("score = %v, want %v", got.Score.Score, report.Score.Score)
	}
	if got.Risks.OverallRisk != report.Risks.OverallRisk {
		t.Errorf("overall risk = %s, want %s", got.Risks.OverallRisk, report.Risks.OverallRisk)
	}
	if !got.AnalyzedAt.Equal(report.AnalyzedAt) {
		t.Errorf("analyzed at = %v, want %v", got.AnalyzedAt, report.AnalyzedAt)
	}
}

func TestGetReport_NotFound(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	if _, err := st.GetReport(context.Background(), "missing"); !errors.Is(err, store.ErrReportNotFound) {
		t.Errorf("err = %v, want ErrReportNotFound", err)
	}
}

func TestLatestReport(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	// Fixed ids keep the DESC ordering deterministic when both rows land in
	// the same created_at second.
	first := sampleReport(t, "a-first", "https://example.com", testutil.CleanInput())
	second := sampleReport(t, "b-second", "https://example.com", testutil.SaturatedInput())
	other := sampleReport(t, "c-other", "https://other.example.com", testutil.CleanInput())
	for _, r := range []*model.AnalysisReport{first, second, other} {
		if _, err := st.SaveReport(ctx, r); err != nil {
			t.Fatalf("save %s: %v", r.ID, err)
		}
	}

	got, err := st.LatestReport(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got.ID != "b-second" {
		t.Errorf("latest id = %q, want b-second", got.ID)
	}

	if _, err := st.LatestReport(ctx, "https://never-analyzed.example.com"); !errors.Is(err, store.ErrReportNotFound) {
		t.Errorf("err = %v, want ErrReportNotFound", err)
	}
}

func TestListReports(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	ids := []string{"a-1", "b-2", "c-3"}
	for _, id := range ids {
		url := "https://example.com"
		if id == "c-3" {
			url = "https://other.example.com"
		}
		if _, err := st.SaveReport(ctx, sampleReport(t, id, url, testutil.CleanInput())); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	all, err := st.ListReports(ctx, "", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d summaries, want 3", len(all))
	}
	if all[0].ID != "c-3" {
		t.Errorf("first summary = %q, want newest (c-3)", all[0].ID)
	}

	filtered, err := st.ListReports(ctx, "https://example.com", 0)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("got %d filtered summaries, want 2", len(filtered))
	}

	limited, err := st.ListReports(ctx, "", 1)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("got %d limited summaries, want 1", len(limited))
	}
}

// ─── Audit diffs ───────────────────────────────────────────────────────

func TestSaveReport_DiffOnSecondSaveForSamePage(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	first := sampleReport(t, "a-base", "https://example.com", testutil.CleanInput())
	if _, err := st.SaveReport(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}

	// First report for a page has no predecessor, so no diff.
	if _, err := st.GetDiff(ctx, "a-base"); !errors.Is(err, store.ErrDiffNotFound) {
		t.Errorf("err = %v, want ErrDiffNotFound for first report", err)
	}

	second := sampleReport(t, "b-head", "https://example.com", testutil.SaturatedInput())
	if _, err := st.SaveReport(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	raw, err := st.GetDiff(ctx, "b-head")
	if err != nil {
		t.Fatalf("get diff: %v", err)
	}
	var diff struct {
		BaseID string `json:"base_id"`
		HeadID string `json:"head_id"`
		Chunks []struct {
			Type    string `json:"type"`
			Content string `json:"content"`
		} `json:"chunks"`
	}
	if err := json.Unmarshal(raw, &diff); err != nil {
		t.Fatalf("unmarshal diff: %v", err)
	}
	if diff.BaseID != "a-base" || diff.HeadID != "b-head" {
		t.Errorf("diff base/head = %q/%q, want a-base/b-head", diff.BaseID, diff.HeadID)
	}
	if len(diff.Chunks) == 0 {
		t.Error("diff between different reports has no chunks")
	}
}

func TestSaveReport_NoDiffAcrossDifferentPages(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	ctx := context.Background()

	if _, err := st.SaveReport(ctx, sampleReport(t, "a-1", "https://a.example.com", testutil.CleanInput())); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := st.SaveReport(ctx, sampleReport(t, "b-1", "https://b.example.com", testutil.CleanInput())); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := st.GetDiff(ctx, "b-1"); !errors.Is(err, store.ErrDiffNotFound) {
		t.Errorf("err = %v, want ErrDiffNotFound across pages", err)
	}
}

func TestSaveReport_NilReport(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	if _, err := st.SaveReport(context.Background(), nil); err == nil {
		t.Error("saving nil report did not error")
	}
}
