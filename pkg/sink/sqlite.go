package sink

import (
	"database/sql"
	"errors"
	"sync"

	_ "modernc.org/sqlite"

	errs "riotscraper/pkg/errors"
)

// SQLiteSink stores records in a single-table SQLite database. The primary
// key on match_id gives the same dedupe guarantee as the file sink's index,
// and each insert commits before Append returns.
type SQLiteSink struct {
	path    string
	db      *sql.DB
	matches map[string]bool
	mu      sync.RWMutex
}

// NewSQLiteSink opens (or creates) the SQLite destination
func NewSQLiteSink(path string, appendMode bool) (*SQLiteSink, error) {
	if path == "" {
		return nil, errs.NewStorageError("open", path, errors.New("destination path is empty"))
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errs.NewStorageError("open", path, err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS matches (
			match_id  TEXT PRIMARY KEY,
			record    BLOB NOT NULL,
			stored_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errs.NewStorageError("create", path, err)
	}

	s := &SQLiteSink{
		path:    path,
		db:      db,
		matches: make(map[string]bool),
	}

	if appendMode {
		if err := s.scanExisting(); err != nil {
			db.Close()
			return nil, err
		}
	} else {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM matches").Scan(&count); err != nil {
			db.Close()
			return nil, errs.NewStorageError("scan", path, err)
		}
		if count > 0 {
			db.Close()
			return nil, errs.NewStorageError("create", path,
				errors.New("destination already contains data; use append mode"))
		}
	}

	return s, nil
}

// scanExisting preloads the membership index from stored rows
func (s *SQLiteSink) scanExisting() error {
	rows, err := s.db.Query("SELECT match_id FROM matches")
	if err != nil {
		return errs.NewStorageError("scan", s.path, err)
	}
	defer rows.Close()

	for rows.Next() {
		var matchID string
		if err := rows.Scan(&matchID); err != nil {
			return errs.NewStorageError("scan", s.path, err)
		}
		s.matches[matchID] = true
	}
	if err := rows.Err(); err != nil {
		return errs.NewStorageError("scan", s.path, err)
	}
	return nil
}

// Contains reports whether a record with the given match ID is stored
func (s *SQLiteSink) Contains(matchID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matches[matchID]
}

// Append inserts one record
func (s *SQLiteSink) Append(record *Record) error {
	data, err := record.Marshal()
	if err != nil {
		return errs.NewStorageError("encode", s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(
		"INSERT INTO matches (match_id, record) VALUES (?, ?)",
		record.MatchID, data,
	); err != nil {
		return errs.NewStorageError("append", s.path, err)
	}

	s.matches[record.MatchID] = true
	return nil
}

// Count returns the number of indexed records
func (s *SQLiteSink) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matches)
}

// Close closes the database handle
func (s *SQLiteSink) Close() error {
	if err := s.db.Close(); err != nil {
		return errs.NewStorageError("close", s.path, err)
	}
	return nil
}
