package provenance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpgo/withholding-calculator/internal/domain"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS calculations (
	id          TEXT PRIMARY KEY,
	case_number TEXT NOT NULL,
	scenario    TEXT NOT NULL,
	actor       TEXT NOT NULL,
	result_json TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_calculations_case_number ON calculations(case_number);
`

// SQLiteStore implements Recorder on a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLiteStore opens (creating if needed) the database at dbPath and applies the schema.
// Use ":memory:" for a throwaway store.
func OpenSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, errors.New("database path is required")
	}

	dsn := ":memory:"
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// a single connection serializes writes and keeps :memory: databases alive
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save inserts rec, assigning an ID and timestamp when they are empty.
func (s *SQLiteStore) Save(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO calculations (id, case_number, scenario, actor, result_json, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CaseNumber, string(rec.Scenario), rec.Actor, rec.ResultJSON, rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save calculation %s: %w", rec.ID, err)
	}
	return nil
}

// FindByCaseNumber returns records whose case number contains fragment, newest first.
// An empty fragment matches every record.
func (s *SQLiteStore) FindByCaseNumber(ctx context.Context, fragment string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, case_number, scenario, actor, result_json, created_at
		 FROM calculations
		 WHERE instr(case_number, ?) > 0
		 ORDER BY created_at DESC, id`,
		fragment,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query calculations: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var scenario string
		if err := rows.Scan(&rec.ID, &rec.CaseNumber, &scenario, &rec.Actor, &rec.ResultJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan calculation: %w", err)
		}
		rec.Scenario = domain.ScenarioKind(scenario)
		records = append(records, rec)
	}
	return records, rows.Err()
}
