package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pagesentry/pagesentry/internal/app"
	"github.com/pagesentry/pagesentry/internal/model"
	"github.com/pagesentry/pagesentry/internal/server"
	"github.com/pagesentry/pagesentry/internal/store"
	"github.com/pagesentry/pagesentry/internal/testutil"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	srv, err := server.NewServer(server.Config{
		ListenAddr: ":0",
		AppConfig: &app.Config{
			StorageRoot:      t.TempDir(),
			DatabaseFile:     "test.db",
			SubscriberBuffer: 4,
		},
		Logger: &testutil.DummyLogger{},
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *server.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func postAnalysis(t *testing.T, srv *server.Server, pageURL string, in *model.NormalizedAnalysisInput) *model.AnalysisReport {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/analyses", server.AnalyzeRequest{PageURL: pageURL, Input: *in})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /analyses = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
	report := decodeJSON[*model.AnalysisReport](t, rec)
	if report.ID == "" {
		t.Fatal("created report has no id")
	}
	return report
}

// ─── Health & ruleset ──────────────────────────────────────────────────

func TestHealthz(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeJSON[map[string]string](t, rec)
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
	if body["ruleset_version"] != model.RulesetVersion {
		t.Errorf("ruleset_version = %q, want %q", body["ruleset_version"], model.RulesetVersion)
	}
}

func TestGetRuleset(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/ruleset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	rs := decodeJSON[server.RulesetResponse](t, rec)

	if rs.RulesetVersion != model.RulesetVersion {
		t.Errorf("ruleset version = %q", rs.RulesetVersion)
	}
	if rs.RoundingStrategy != model.RoundingHalfUp2 {
		t.Errorf("rounding strategy = %q", rs.RoundingStrategy)
	}
	if len(rs.Factors) != 5 {
		t.Errorf("got %d factors, want 5", len(rs.Factors))
	}
	if len(rs.Bands) != 3 {
		t.Errorf("got %d bands, want 3", len(rs.Bands))
	}
	if len(rs.Rules) != 9 {
		t.Errorf("got %d rules, want 9", len(rs.Rules))
	}
	if len(rs.Actions) != 6 {
		t.Errorf("got %d actions, want 6", len(rs.Actions))
	}

	var weightSum float64
	for _, f := range rs.Factors {
		weightSum += f.Weight
	}
	if weightSum != 100 {
		t.Errorf("factor weights sum to %v, want 100", weightSum)
	}
}

func TestCORSHeaders(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}

	pre := doJSON(t, srv, http.MethodOptions, "/analyses", nil)
	if pre.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", pre.Code)
	}
	if got := pre.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST" {
		t.Errorf("Access-Control-Allow-Methods = %q, want \"GET, POST\"", got)
	}
}

// ─── Analyses ──────────────────────────────────────────────────────────

func TestCreateAnalysis(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	report := postAnalysis(t, srv, "https://tracker-heavy.example.com", testutil.SaturatedInput())

	if report.Score.Score != 0 {
		t.Errorf("score = %v, want 0", report.Score.Score)
	}
	if report.Risks.OverallRisk != model.RiskHigh {
		t.Errorf("overall risk = %s, want high", report.Risks.OverallRisk)
	}
	if len(report.Recommendations.Recommendations) != 6 {
		t.Errorf("got %d recommendations, want 6", len(report.Recommendations.Recommendations))
	}
	if report.RulesetVersion != model.RulesetVersion {
		t.Errorf("ruleset version = %q", report.RulesetVersion)
	}
}

func TestCreateAnalysis_InvalidJSON(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/analyses", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	body := decodeJSON[map[string]string](t, rec)
	if body["error"] == "" {
		t.Error("error payload missing error field")
	}
}

func TestGetAnalysis(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	created := postAnalysis(t, srv, "https://example.com", testutil.CleanInput())

	rec := doJSON(t, srv, http.MethodGet, "/analyses/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	got := decodeJSON[*model.AnalysisReport](t, rec)
	if got.ID != created.ID {
		t.Errorf("id = %q, want %q", got.ID, created.ID)
	}
	if got.Score.Score != 100 {
		t.Errorf("score = %v, want 100", got.Score.Score)
	}
}

func TestGetAnalysis_NotFound(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/analyses/no-such-report", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestListAnalyses(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	postAnalysis(t, srv, "https://a.example.com", testutil.CleanInput())
	postAnalysis(t, srv, "https://b.example.com", testutil.CleanInput())

	rec := doJSON(t, srv, http.MethodGet, "/analyses", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	all := decodeJSON[[]store.ReportSummary](t, rec)
	if len(all) != 2 {
		t.Errorf("got %d summaries, want 2", len(all))
	}

	filtered := decodeJSON[[]store.ReportSummary](t,
		doJSON(t, srv, http.MethodGet, "/analyses?page_url=https%3A%2F%2Fa.example.com", nil))
	if len(filtered) != 1 || filtered[0].PageURL != "https://a.example.com" {
		t.Errorf("filtered summaries = %+v, want only a.example.com", filtered)
	}

	limited := decodeJSON[[]store.ReportSummary](t,
		doJSON(t, srv, http.MethodGet, "/analyses?limit=1", nil))
	if len(limited) != 1 {
		t.Errorf("got %d limited summaries, want 1", len(limited))
	}
}

// ─── Pages ─────────────────────────────────────────────────────────────

func TestGetLatestForPage(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	created := postAnalysis(t, srv, "https://example.com", testutil.NetworkDownInput("proxy error"))

	rec := doJSON(t, srv, http.MethodGet, "/pages/latest?url=https%3A%2F%2Fexample.com", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	got := decodeJSON[*model.AnalysisReport](t, rec)
	if got.ID != created.ID {
		t.Errorf("id = %q, want %q", got.ID, created.ID)
	}
	if got.Confidence.Level != model.ConfidenceMedium {
		t.Errorf("confidence level = %s, want medium", got.Confidence.Level)
	}
}

func TestGetLatestForPage_MissingURL(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/pages/latest", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetLatestForPage_NotFound(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/pages/latest?url=https%3A%2F%2Funknown.example.com", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// ─── Diffs ─────────────────────────────────────────────────────────────

func TestGetAnalysisDiff(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	first := postAnalysis(t, srv, "https://example.com", testutil.CleanInput())
	second := postAnalysis(t, srv, "https://example.com", testutil.SaturatedInput())

	// The first report for a page has no predecessor to diff against.
	if rec := doJSON(t, srv, http.MethodGet, "/analyses/"+first.ID+"/diff", nil); rec.Code != http.StatusNotFound {
		t.Errorf("first report diff status = %d, want 404", rec.Code)
	}

	rec := doJSON(t, srv, http.MethodGet, "/analyses/"+second.ID+"/diff", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("second report diff status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	diff := decodeJSON[map[string]any](t, rec)
	if diff["base_id"] != first.ID || diff["head_id"] != second.ID {
		t.Errorf("diff base/head = %v/%v, want %s/%s", diff["base_id"], diff["head_id"], first.ID, second.ID)
	}
}

// ─── Swagger ───────────────────────────────────────────────────────────

func TestSwaggerDoc(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/swagger/doc.json", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	doc := decodeJSON[map[string]any](t, rec)
	if doc["swagger"] != "2.0" {
		t.Errorf("swagger version = %v, want 2.0", doc["swagger"])
	}
	if _, ok := doc["paths"].(map[string]any)["/analyses"]; !ok {
		t.Error("swagger doc does not document /analyses")
	}
}
