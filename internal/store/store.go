package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when no record with the requested id exists.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateID is returned when appending a record whose id is already taken.
	ErrDuplicateID = errors.New("record id already exists")
	// ErrCorrupted is returned when stored data fails to parse. Callers must
	// surface this as the collection being unavailable, never drop data silently.
	ErrCorrupted = errors.New("collection data corrupted")
)

// Record is one stored document. The caller assigns the "id" field.
type Record map[string]interface{}

// Store persists named collections of JSON records in an embedded SQLite file.
// Every mutating operation is a read-modify-write of a single record performed
// under that collection's mutex, so at most one writer touches a collection at
// a time.
type Store struct {
	db *sql.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open opens (creating if needed) the store at path. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	// SQLite allows a single writer; one connection avoids SQLITE_BUSY churn
	// and keeps :memory: databases coherent across calls.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS records (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		collection TEXT NOT NULL,
		id         TEXT NOT NULL,
		data       TEXT NOT NULL,
		UNIQUE (collection, id)
	);
	CREATE INDEX IF NOT EXISTS idx_records_collection ON records (collection, seq);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}

	return &Store{db: db, locks: make(map[string]*sync.Mutex)}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) lock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

// Append persists rec at the end of the collection. The record's "id" field
// must be set by the caller and unique within the collection.
func (s *Store) Append(collection string, rec Record) (Record, error) {
	id, _ := rec["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("append to %s: record has no id", collection)
	}

	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("append to %s: %w", collection, err)
	}

	_, err = s.db.Exec(`INSERT INTO records (collection, id, data) VALUES (?, ?, ?)`, collection, id, string(data))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("append to %s: id %q: %w", collection, id, ErrDuplicateID)
		}
		return nil, fmt.Errorf("append to %s: %w", collection, err)
	}
	return rec, nil
}

// FindByID returns the record with the given id, or ErrNotFound.
func (s *Store) FindByID(collection, id string) (Record, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM records WHERE collection = ? AND id = ?`, collection, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find in %s: %w", collection, err)
	}
	return decode(collection, data)
}

// UpdateByID shallowly merges fields into the existing record. Fields not named
// in the merge are left untouched. Returns the updated record or ErrNotFound.
func (s *Store) UpdateByID(collection, id string, fields Record) (Record, error) {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	var data string
	err := s.db.QueryRow(`SELECT data FROM records WHERE collection = ? AND id = ?`, collection, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update in %s: %w", collection, err)
	}

	rec, err := decode(collection, data)
	if err != nil {
		return nil, err
	}
	for k, v := range fields {
		if k == "id" {
			continue // id is immutable
		}
		rec[k] = v
	}

	merged, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("update in %s: %w", collection, err)
	}
	if _, err := s.db.Exec(`UPDATE records SET data = ? WHERE collection = ? AND id = ?`, string(merged), collection, id); err != nil {
		return nil, fmt.Errorf("update in %s: %w", collection, err)
	}
	return rec, nil
}

// RemoveByID deletes the record, returning ErrNotFound when absent.
func (s *Store) RemoveByID(collection, id string) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	res, err := s.db.Exec(`DELETE FROM records WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return fmt.Errorf("remove from %s: %w", collection, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove from %s: %w", collection, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns the collection in insertion order. Null or id-less entries
// are skipped defensively; data that fails to parse aborts the whole read.
func (s *Store) ListAll(collection string) ([]Record, error) {
	rows, err := s.db.Query(`SELECT data FROM records WHERE collection = ? ORDER BY seq`, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("list %s: %w", collection, err)
		}
		rec, err := decode(collection, data)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			continue
		}
		if id, _ := rec["id"].(string); id == "" {
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return records, nil
}

func decode(collection, data string) (Record, error) {
	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("parse record in %s: %v: %w", collection, err, ErrCorrupted)
	}
	return rec, nil
}

func isUniqueViolation(err error) bool {
	// mattn/go-sqlite3 reports constraint failures by message; matching the
	// text avoids importing the driver's error types here.
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
