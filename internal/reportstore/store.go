// Package reportstore persists analysis reports to disk and indexes the
// analysis history in SQLite.
package reportstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/codewithwu/ContractAI/internal/analyze"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound marks a missing report ID.
var ErrNotFound = errors.New("report not found")

const schema = `CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	file_name TEXT NOT NULL,
	overall_score INTEGER NOT NULL,
	tier TEXT NOT NULL,
	clause_count INTEGER NOT NULL,
	total_findings INTEGER NOT NULL,
	high_risk_clauses INTEGER NOT NULL,
	medium_risk_clauses INTEGER NOT NULL,
	json_path TEXT NOT NULL,
	text_path TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
)`

// Store writes each report as a JSON file plus a human-readable text file
// and keeps a queryable history row per report.
type Store struct {
	dir string
	db  *sql.DB
}

func Open(dir, dbPath string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create reports dir: %w", err)
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history db: %w", err)
	}
	return &Store{dir: dir, db: db}, nil
}

// Saved describes where a report landed.
type Saved struct {
	ID       string `json:"id"`
	JSONPath string `json:"json_path"`
	TextPath string `json:"text_path"`
}

// Save writes the report files and records the history row.
func (s *Store) Save(ctx context.Context, report *analyze.Report) (Saved, error) {
	id := uuid.NewString()
	stamp := report.CreatedAt.Format("20060102_150405")
	base := fmt.Sprintf("contract_analysis_%s_%s", stamp, id[:8])
	jsonPath := filepath.Join(s.dir, base+".json")
	textPath := filepath.Join(s.dir, base+".txt")

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return Saved{}, fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return Saved{}, fmt.Errorf("write json report: %w", err)
	}
	if err := os.WriteFile(textPath, []byte(RenderText(report)), 0o644); err != nil {
		return Saved{}, fmt.Errorf("write text report: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, file_name, overall_score, tier, clause_count,
			total_findings, high_risk_clauses, medium_risk_clauses,
			json_path, text_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, report.FileName, report.OverallScore, string(report.Tier),
		report.ClauseCount, report.TotalFindings,
		report.HighRiskClauseCount, report.MediumRiskClauseCount,
		jsonPath, textPath, report.CreatedAt.UTC(),
	)
	if err != nil {
		return Saved{}, fmt.Errorf("index report: %w", err)
	}

	return Saved{ID: id, JSONPath: jsonPath, TextPath: textPath}, nil
}

// Entry is one history row.
type Entry struct {
	ID                    string    `json:"id"`
	FileName              string    `json:"file_name"`
	OverallScore          int       `json:"overall_risk_score"`
	Tier                  string    `json:"risk_level"`
	ClauseCount           int       `json:"total_clauses"`
	TotalFindings         int       `json:"total_risks_found"`
	HighRiskClauseCount   int       `json:"high_risk_clauses"`
	MediumRiskClauseCount int       `json:"medium_risk_clauses"`
	CreatedAt             time.Time `json:"analyzed_at"`
}

// List returns history entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, file_name, overall_score, tier, clause_count,
			total_findings, high_risk_clauses, medium_risk_clauses, created_at
		 FROM reports ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.FileName, &e.OverallScore, &e.Tier,
			&e.ClauseCount, &e.TotalFindings,
			&e.HighRiskClauseCount, &e.MediumRiskClauseCount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Get loads the full stored report by ID.
func (s *Store) Get(ctx context.Context, id string) (*analyze.Report, error) {
	var jsonPath string
	err := s.db.QueryRowContext(ctx,
		`SELECT json_path FROM reports WHERE id = ?`, id).Scan(&jsonPath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup report: %w", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}
	var report analyze.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode report file: %w", err)
	}
	return &report, nil
}

// Delete removes the history row and both report files.
func (s *Store) Delete(ctx context.Context, id string) error {
	var jsonPath, textPath string
	err := s.db.QueryRowContext(ctx,
		`SELECT json_path, text_path FROM reports WHERE id = ?`, id).
		Scan(&jsonPath, &textPath)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup report: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete report row: %w", err)
	}
	os.Remove(jsonPath)
	os.Remove(textPath)
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
