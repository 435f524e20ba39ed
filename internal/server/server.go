package server

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/pagesentry/pagesentry/internal/app"
	"github.com/pagesentry/pagesentry/internal/logging"
	"github.com/pagesentry/pagesentry/internal/model"
	"github.com/pagesentry/pagesentry/internal/recommend"
	"github.com/pagesentry/pagesentry/internal/risk"
	"github.com/pagesentry/pagesentry/internal/scoring"
	"github.com/pagesentry/pagesentry/internal/store"

	_ "modernc.org/sqlite" // SQLite driver
)

// Server is the HTTP + WebSocket API surface for PageSentry.
type Server struct {
	cfg          Config
	orchestrator *app.Orchestrator
	router       chi.Router
	upgrader     websocket.Upgrader
	logger       logging.Logger
	db           *sql.DB
}

// NewServer creates a new Server with its own Orchestrator and report store.
func NewServer(cfg Config) (*Server, error) {
	if cfg.AppConfig == nil {
		cfg.AppConfig = app.DefaultConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("Server")
	}

	// Make sure storage root exists
	storageRoot, err := expandPath(cfg.AppConfig.StorageRoot)
	if err != nil {
		return nil, fmt.Errorf("expanding storage root path: %w", err)
	}
	cfg.AppConfig.StorageRoot = storageRoot
	if err := os.MkdirAll(cfg.AppConfig.StorageRoot, 0755); err != nil {
		logger.Warn("creating storage root directory", logging.Field{Key: "path", Value: cfg.AppConfig.StorageRoot}, logging.Field{Key: "error", Value: err.Error()})
	}

	db, err := sql.Open("sqlite", filepath.Join(cfg.AppConfig.StorageRoot, cfg.AppConfig.DatabaseFile))
	if err != nil {
		return nil, fmt.Errorf("opening report database: %w", err)
	}

	st, err := store.NewStore(db, logger)
	if err != nil {
		return nil, fmt.Errorf("creating report store: %w", err)
	}

	orch := app.NewOrchestrator(cfg.AppConfig, nil, st, logger)

	r := chi.NewRouter()
	s := &Server{
		cfg:          cfg,
		orchestrator: orch,
		router:       r,
		logger:       logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: tighten for production
				return true
			},
		},
		db: db,
	}

	s.routes()
	return s, nil
}

// Orchestrator returns the underlying orchestrator for advanced use (tests, etc.).
func (s *Server) Orchestrator() *app.Orchestrator {
	return s.orchestrator
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/analyses", s.optionsHandler("GET, POST"))
	r.Options("/analyses/{reportID}", s.optionsHandler("GET"))
	r.Options("/analyses/{reportID}/diff", s.optionsHandler("GET"))
	r.Options("/pages/latest", s.optionsHandler("GET"))
	r.Options("/ruleset", s.optionsHandler("GET"))

	// Analyses
	r.Post("/analyses", s.handleCreateAnalysis)
	r.Get("/analyses", s.handleListAnalyses)
	r.Get("/analyses/{reportID}", s.handleGetAnalysis)
	r.Get("/analyses/{reportID}/diff", s.handleGetAnalysisDiff)

	// Pages
	r.Get("/pages/latest", s.handleGetLatestForPage)

	// Ruleset & health
	r.Get("/ruleset", s.handleGetRuleset)
	r.Get("/healthz", s.handleHealthz)

	// WebSocket stream of newly produced reports
	r.Get("/ws/analyses", s.handleAnalysesWS)

	// Interactive API docs
	r.Get("/swagger/doc.json", s.handleSwaggerDoc)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}

	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) {
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, logging.Field{Key: "body_bytes", Value: len(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// Close shuts down the orchestrator and underlying resources.
func (s *Server) Close() {
	if s.orchestrator != nil {
		s.orchestrator.Close()
	}
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// --- HTTP handlers ---

// Analyses

func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var body AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	report, err := s.orchestrator.AnalyzePage(r.Context(), body.PageURL, &body.Input)
	if err != nil {
		s.logger.Warn("running analysis", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("analysis created",
		logging.Field{Key: "report_id", Value: report.ID},
		logging.Field{Key: "page_url", Value: report.PageURL},
		logging.Field{Key: "score", Value: report.Score.Score},
	)
	writeJSON(w, http.StatusCreated, report)
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	pageURL := r.URL.Query().Get("page_url")
	limitStr := r.URL.Query().Get("limit")

	limit := 0
	if limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
			limit = v
		}
	}

	summaries, err := s.orchestrator.ListReports(r.Context(), pageURL, limit)
	if err != nil {
		s.logger.Warn("listing analyses", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("listed analyses", logging.Field{Key: "count", Value: len(summaries)})
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")

	report, err := s.orchestrator.GetReport(r.Context(), reportID)
	if errors.Is(err, store.ErrReportNotFound) {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		s.logger.Warn("getting analysis", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleGetAnalysisDiff(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")

	diff, err := s.orchestrator.GetReportDiff(r.Context(), reportID)
	if errors.Is(err, store.ErrDiffNotFound) {
		writeError(w, http.StatusNotFound, "no diff for this report")
		return
	}
	if err != nil {
		s.logger.Warn("getting analysis diff", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, diff)
}

// Pages

func (s *Server) handleGetLatestForPage(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, "missing url query parameter")
		return
	}

	report, err := s.orchestrator.LatestReport(r.Context(), url)
	if errors.Is(err, store.ErrReportNotFound) {
		writeError(w, http.StatusNotFound, "no report for this page")
		return
	}
	if err != nil {
		s.logger.Warn("getting latest report", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Ruleset & health

func (s *Server) handleGetRuleset(w http.ResponseWriter, r *http.Request) {
	resp := RulesetResponse{
		RulesetVersion:   model.RulesetVersion,
		RoundingStrategy: model.RoundingHalfUp2,
	}
	for _, f := range scoring.Factors() {
		resp.Factors = append(resp.Factors, RulesetFactor{ID: f.ID, Label: f.Label, Weight: f.Weight, HardCap: f.HardCap})
	}
	for _, b := range risk.Bands() {
		resp.Bands = append(resp.Bands, RulesetBand{Level: string(b.Level), Min: b.Min, Max: b.Max})
	}
	for _, ru := range risk.Rules() {
		resp.Rules = append(resp.Rules, RulesetRule{
			ID:                 ru.ID,
			Title:              ru.Title,
			Severity:           string(ru.Severity),
			MitigationPriority: string(ru.MitigationPriority),
			Source:             ru.Source,
			Operator:           ru.Operator,
			Threshold:          ru.Threshold,
		})
	}
	for _, a := range recommend.Catalog() {
		resp.Actions = append(resp.Actions, RulesetAction{ID: a.ID, Title: a.Title, Rationale: a.Rationale, DefaultPriority: string(a.DefaultPriority)})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "ruleset_version": model.RulesetVersion})
}

// WebSockets

func (s *Server) handleAnalysesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	subID, reports := s.orchestrator.Subscribe()
	defer s.orchestrator.Unsubscribe(subID)

	s.logger.Info("websocket subscriber connected", logging.Field{Key: "subscriber_id", Value: subID})

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case report, ok := <-reports:
			if !ok {
				return
			}
			if err := conn.WriteJSON(report); err != nil {
				// Assume client disconnected.
				return
			}
		}
	}
}

func expandPath(p string) (string, error) {
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, p[1:]), nil
	}
	return p, nil
}
