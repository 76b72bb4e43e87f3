package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded scrape request. Only operational metadata is stored;
// listing data itself is never persisted.
type Entry struct {
	ID         int64         `json:"id"`
	Make       string        `json:"make,omitempty"`
	Model      string        `json:"model,omitempty"`
	ZipCode    string        `json:"zipCode"`
	Distance   string        `json:"distance"`
	SearchURL  string        `json:"searchUrl"`
	Count      int           `json:"count"`
	TotalFound int           `json:"totalFound"`
	Success    bool          `json:"success"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"durationMs"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Store is the sqlite-backed scrape audit log.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the audit database at dbPath.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db}
	if err := store.initializeSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initializeSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS scrape_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			make TEXT NOT NULL DEFAULT '',
			model TEXT NOT NULL DEFAULT '',
			zip_code TEXT NOT NULL DEFAULT '',
			distance TEXT NOT NULL DEFAULT '',
			search_url TEXT NOT NULL DEFAULT '',
			count INTEGER NOT NULL DEFAULT 0,
			total_found INTEGER NOT NULL DEFAULT 0,
			success INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scrape_history_created_at
			ON scrape_history(created_at DESC);
	`)
	return err
}

// Record appends one scrape to the audit log.
func (s *Store) Record(entry *Entry) error {
	result, err := s.db.Exec(`
		INSERT INTO scrape_history
			(make, model, zip_code, distance, search_url, count, total_found, success, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Make, entry.Model, entry.ZipCode, entry.Distance, entry.SearchURL,
		entry.Count, entry.TotalFound, entry.Success, entry.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to record scrape: %w", err)
	}

	entry.ID, _ = result.LastInsertId()
	entry.DurationMS = entry.Duration.Milliseconds()
	return nil
}

// Recent returns the latest scrapes, newest first.
func (s *Store) Recent(limit int) ([]*Entry, error) {
	if limit < 1 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, make, model, zip_code, distance, search_url,
		       count, total_found, success, duration_ms, created_at
		FROM scrape_history
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.Make, &entry.Model, &entry.ZipCode,
			&entry.Distance, &entry.SearchURL, &entry.Count, &entry.TotalFound,
			&entry.Success, &entry.DurationMS, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
