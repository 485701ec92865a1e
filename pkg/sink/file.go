package sink

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	errs "riotscraper/pkg/errors"
)

// FileSink stores records as JSON Lines: one self-describing record per line,
// appended with a single write so that a kill between appends never leaves a
// torn record. On reopen in append mode the file is scanned once to rebuild
// the membership index; that scan is the whole resumption mechanism, there is
// no separate checkpoint file to lose or corrupt.
type FileSink struct {
	path    string
	file    *os.File
	matches map[string]bool
	mu      sync.RWMutex
}

// NewFileSink opens (or creates) the JSONL destination. In append mode an
// existing file is scanned to preload the membership index; otherwise a
// destination that already holds data is refused.
func NewFileSink(path string, appendMode bool) (*FileSink, error) {
	if path == "" {
		return nil, errs.NewStorageError("open", path, errors.New("destination path is empty"))
	}

	if !appendMode {
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			return nil, errs.NewStorageError("create", path,
				errors.New("destination already contains data; use append mode"))
		}
	}

	// O_APPEND keeps every write at the end of the file while the initial
	// offset of zero lets the preload scan read from the start.
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, errs.NewStorageError("open", path, err)
	}

	s := &FileSink{
		path:    path,
		file:    file,
		matches: make(map[string]bool),
	}

	if appendMode {
		if err := s.scanExisting(); err != nil {
			file.Close()
			return nil, err
		}
	}

	return s, nil
}

// scanExisting reads every stored line once and indexes its match ID
func (s *FileSink) scanExisting() error {
	scanner := bufio.NewScanner(s.file)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var key recordKey
		if err := json.Unmarshal(raw, &key); err != nil {
			return errs.NewStorageError("scan", s.path,
				fmt.Errorf("malformed record on line %d: %w", line, err))
		}
		if key.MatchID == "" {
			return errs.NewStorageError("scan", s.path,
				fmt.Errorf("record on line %d has no match_id", line))
		}
		s.matches[key.MatchID] = true
	}

	if err := scanner.Err(); err != nil {
		return errs.NewStorageError("scan", s.path, err)
	}
	return nil
}

// Contains reports whether a record with the given match ID is stored
func (s *FileSink) Contains(matchID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matches[matchID]
}

// Append writes one record as a single line
func (s *FileSink) Append(record *Record) error {
	data, err := record.Marshal()
	if err != nil {
		return errs.NewStorageError("encode", s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// One write per record: either the whole line lands or none of it does
	if _, err := s.file.Write(append(data, '\n')); err != nil {
		return errs.NewStorageError("append", s.path, err)
	}

	s.matches[record.MatchID] = true
	return nil
}

// Count returns the number of indexed records
func (s *FileSink) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matches)
}

// Close closes the destination file
func (s *FileSink) Close() error {
	if err := s.file.Close(); err != nil {
		return errs.NewStorageError("close", s.path, err)
	}
	return nil
}
