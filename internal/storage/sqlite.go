package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sharvarianand/intervuex/internal/interview"
)

// SQLite persists sessions, turns and reports in a local SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens the database at dbPath and creates tables if they don't
// exist.
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		persona TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		question TEXT NOT NULL,
		focus TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		answer TEXT,
		score REAL,
		feedback TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);

	CREATE TABLE IF NOT EXISTS reports (
		session_id TEXT PRIMARY KEY,
		overall_score REAL NOT NULL,
		verdict TEXT NOT NULL,
		payload TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateSession records a new session row.
func (s *SQLite) CreateSession(id string, mode interview.Mode, persona string) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, mode, persona, created_at)
		 VALUES (?, ?, ?, ?)`,
		id, string(mode), persona, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// AppendTurn records one turn. Partial turns store NULL for the answer and
// score columns.
func (s *SQLite) AppendTurn(sessionID string, turn interview.Turn) error {
	var answer sql.NullString
	if turn.Answer != nil {
		answer = sql.NullString{String: *turn.Answer, Valid: true}
	}
	var score sql.NullFloat64
	var feedback sql.NullString
	if turn.Evaluation != nil {
		score = sql.NullFloat64{Float64: turn.Evaluation.Score, Valid: true}
		feedback = sql.NullString{String: turn.Evaluation.Feedback, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO turns (session_id, position, question, focus, difficulty, answer, score, feedback, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, turn.Index, turn.Question.Text, turn.Question.Focus,
		string(turn.Question.Difficulty), answer, score, feedback, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}
	return nil
}

// StoreReport records the final report, replacing any previous one for the
// same session.
func (s *SQLite) StoreReport(sessionID string, report interview.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO reports (session_id, overall_score, verdict, payload, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		sessionID, report.OverallScore, string(report.Verdict), string(payload), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// GetReport retrieves a stored report. Returns nil when the session has no
// report yet.
func (s *SQLite) GetReport(sessionID string) (*interview.Report, error) {
	row := s.db.QueryRow(`SELECT payload FROM reports WHERE session_id = ?`, sessionID)

	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan report: %w", err)
	}

	var report interview.Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}

// TurnCount returns the number of recorded turns for a session.
func (s *SQLite) TurnCount(sessionID string) (int, error) {
	row := s.db.QueryRow(`SELECT COUNT(*) FROM turns WHERE session_id = ?`, sessionID)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan turn count: %w", err)
	}
	return count, nil
}
