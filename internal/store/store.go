// Package store persists analysis reports in SQLite and keeps an audit diff
// between consecutive reports for the same page.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/pagesentry/pagesentry/internal/logging"
	"github.com/pagesentry/pagesentry/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

var (
	ErrReportNotFound = errors.New("report not found")
	ErrDiffNotFound   = errors.New("report diff not found")
)

// Store wraps the SQLite database holding persisted reports.
type Store struct {
	db     *sql.DB
	logger logging.Logger
}

// NewStore applies pragmas and the schema to db and returns a Store.
// db should typically be the SQLite DB at <storage root>/pagesentry.db.
func NewStore(db *sql.DB, logger logging.Logger) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	if err := applySchema(db); err != nil {
		return nil, err
	}
	return &Store{db: db, logger: logger}, nil
}

// applySchema applies the SQLite schema to the database and sets appropriate pragmas.
func applySchema(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",   // Write-Ahead Logging for better concurrency
		"PRAGMA synchronous=NORMAL", // Balance between safety and performance
		"PRAGMA foreign_keys=ON",    // Enable foreign key constraints
		"PRAGMA busy_timeout=5000",  // Wait up to 5 seconds on locked database
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// SaveReport assigns the report an id (if it has none), persists it, and —
// when an earlier report exists for the same page — stores an audit diff
// against the most recent one. Returns the persisted report id.
func (s *Store) SaveReport(ctx context.Context, report *model.AnalysisReport) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report is nil")
	}
	if report.ID == "" {
		report.ID = uuid.New().String()
	}

	reportJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	// Look up the previous report for this page before inserting the new one.
	var prevID, prevJSON string
	havePrev := false
	if report.PageURL != "" {
		err := s.db.QueryRowContext(ctx, `
			SELECT id, report_json FROM reports
			WHERE page_url = ?
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		`, report.PageURL).Scan(&prevID, &prevJSON)
		switch {
		case err == nil:
			havePrev = true
		case errors.Is(err, sql.ErrNoRows):
		default:
			return "", fmt.Errorf("query previous report: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rb := tx.Rollback(); rb != nil && rb != sql.ErrTxDone {
			if s.logger != nil {
				s.logger.Warn("rollback failed", logging.Field{Key: "err", Value: rb})
			}
		}
	}()

	now := time.Now().Unix()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO reports
		  (id, page_url, analyzed_at, score, overall_risk, confidence_score, confidence_level, ruleset_version, report_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, report.ID, report.PageURL, report.AnalyzedAt.Unix(), report.Score.Score, string(report.Risks.OverallRisk),
		report.Confidence.Score, string(report.Confidence.Level), report.RulesetVersion, string(reportJSON), now); err != nil {
		return "", fmt.Errorf("insert report: %w", err)
	}

	if havePrev {
		diffJSON, err := computeReportDiffJSON(prevID, report.ID, []byte(prevJSON), reportJSON)
		if err != nil {
			// The diff is an audit nicety; losing it must not lose the report.
			if s.logger != nil {
				s.logger.Warn("computing report diff", logging.Field{Key: "err", Value: err})
			}
		} else if _, err := tx.ExecContext(ctx, `
			INSERT INTO report_diffs (head_id, base_id, page_url, diff_json, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, report.ID, prevID, report.PageURL, diffJSON, now); err != nil {
			return "", fmt.Errorf("insert report diff: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit tx: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("report saved",
			logging.Field{Key: "report_id", Value: report.ID},
			logging.Field{Key: "page_url", Value: report.PageURL},
			logging.Field{Key: "has_diff", Value: havePrev},
		)
	}
	return report.ID, nil
}

// GetReport loads one report by id.
func (s *Store) GetReport(ctx context.Context, id string) (*model.AnalysisReport, error) {
	var reportJSON string
	err := s.db.QueryRowContext(ctx, `SELECT report_json FROM reports WHERE id = ?`, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query report %s: %w", id, err)
	}
	return unmarshalReport(reportJSON)
}

// LatestReport loads the most recent report for a page URL.
func (s *Store) LatestReport(ctx context.Context, pageURL string) (*model.AnalysisReport, error) {
	var reportJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT report_json FROM reports
		WHERE page_url = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, pageURL).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query latest report for %s: %w", pageURL, err)
	}
	return unmarshalReport(reportJSON)
}

// ReportSummary is a lightweight listing row; the full document is loaded
// via GetReport.
type ReportSummary struct {
	ID              string          `json:"id"`
	PageURL         string          `json:"page_url"`
	AnalyzedAt      time.Time       `json:"analyzed_at"`
	Score           float64         `json:"score"`
	OverallRisk     model.RiskLevel `json:"overall_risk"`
	ConfidenceScore float64         `json:"confidence_score"`
	RulesetVersion  string          `json:"ruleset_version"`
}

// ListReports returns report summaries, newest first. pageURL filters when
// non-empty; limit <= 0 means no limit.
func (s *Store) ListReports(ctx context.Context, pageURL string, limit int) ([]ReportSummary, error) {
	query := `
		SELECT id, page_url, analyzed_at, score, overall_risk, confidence_score, ruleset_version
		FROM reports
	`
	args := []any{}
	if pageURL != "" {
		query += ` WHERE page_url = ?`
		args = append(args, pageURL)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	summaries := []ReportSummary{}
	for rows.Next() {
		var sum ReportSummary
		var analyzedAt int64
		var risk string
		if err := rows.Scan(&sum.ID, &sum.PageURL, &analyzedAt, &sum.Score, &risk, &sum.ConfidenceScore, &sum.RulesetVersion); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		sum.AnalyzedAt = time.Unix(analyzedAt, 0).UTC()
		sum.OverallRisk = model.RiskLevel(risk)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// GetDiff returns the stored audit diff whose head is the given report id,
// as raw JSON.
func (s *Store) GetDiff(ctx context.Context, headID string) (json.RawMessage, error) {
	var diffJSON string
	err := s.db.QueryRowContext(ctx, `SELECT diff_json FROM report_diffs WHERE head_id = ?`, headID).Scan(&diffJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDiffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query diff for %s: %w", headID, err)
	}
	return json.RawMessage(diffJSON), nil
}

// DB exposes the underlying database for advanced use (tests, migrations).
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func unmarshalReport(reportJSON string) (*model.AnalysisReport, error) {
	var report model.AnalysisReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("unmarshal stored report: %w", err)
	}
	return &report, nil
}
