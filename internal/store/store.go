// ABOUTME: Transcript store backed by sqlite
// ABOUTME: Keyed by file path with an inverted word index for search
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no completed transcript exists for a path.
var ErrNotFound = errors.New("transcript not found")

// Entry pairs an audio file path with its transcript text.
type Entry struct {
	Path       string
	Transcript string
}

// Store persists transcripts in a sqlite database. Rows move from
// status "pending" (queued for transcription) to "completed". Writers
// are serialized by one mutex; reads go straight to sqlite.
type Store struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS transcriptions (
	file_path TEXT PRIMARY KEY,
	transcript TEXT,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	last_modified DATETIME,
	status TEXT DEFAULT 'pending'
);
CREATE TABLE IF NOT EXISTS search_index (
	file_path TEXT,
	word TEXT,
	position INTEGER,
	FOREIGN KEY(file_path) REFERENCES transcriptions(file_path)
);
CREATE INDEX IF NOT EXISTS idx_word ON search_index(word);
`

// Open opens (creating if needed) the transcript database at path.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open transcript db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create transcript schema: %w", err)
	}

	return &Store{db: db, log: logger}, nil
}

// Add stores a completed transcript for path and rebuilds its word
// index. The file's modification time is recorded alongside.
func (s *Store) Add(path, transcript string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("add transcript: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO transcriptions
		(file_path, transcript, last_modified, status)
		VALUES (?, ?, ?, 'completed')`,
		path, transcript, info.ModTime())
	if err != nil {
		return fmt.Errorf("add transcript: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM search_index WHERE file_path = ?`, path); err != nil {
		return fmt.Errorf("clear word index: %w", err)
	}
	ins, err := tx.Prepare(`INSERT INTO search_index (file_path, word, position) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("index transcript: %w", err)
	}
	defer ins.Close()
	for pos, word := range strings.Fields(strings.ToLower(transcript)) {
		if _, err := ins.Exec(path, word, pos); err != nil {
			return fmt.Errorf("index transcript: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("add transcript: %w", err)
	}

	s.log.Debug("transcript stored", zap.String("path", path), zap.Int("chars", len(transcript)))
	return nil
}

// MarkPending records that path is queued for transcription.
func (s *Store) MarkPending(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO transcriptions (file_path, status) VALUES (?, 'pending')
		ON CONFLICT(file_path) DO UPDATE SET status = 'pending'`, path)
	if err != nil {
		return fmt.Errorf("mark pending: %w", err)
	}
	return nil
}

// Get returns the completed transcript for path, or ErrNotFound.
func (s *Store) Get(path string) (string, error) {
	var transcript string
	err := s.db.QueryRow(`
		SELECT transcript FROM transcriptions
		WHERE file_path = ? AND status = 'completed'`, path).Scan(&transcript)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get transcript: %w", err)
	}
	return transcript, nil
}

// Search returns completed transcripts whose indexed words contain the
// query as a case-insensitive substring, newest first. Minimum query
// length is the caller's policy, not the store's.
func (s *Store) Search(query string) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT t.file_path, t.transcript
		FROM transcriptions t
		JOIN search_index si ON t.file_path = si.file_path
		WHERE si.word LIKE ? AND t.status = 'completed'
		ORDER BY t.timestamp DESC`,
		"%"+strings.ToLower(query)+"%")
	if err != nil {
		return nil, fmt.Errorf("search transcripts: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// All returns every completed transcript, newest first.
func (s *Store) All() ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT file_path, transcript FROM transcriptions
		WHERE status = 'completed'
		ORDER BY timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Path, &e.Transcript); err != nil {
			return nil, fmt.Errorf("scan transcript row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read transcript rows: %w", err)
	}
	return entries, nil
}
