// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache keeps fetched input documents in a SQLite database so that
// converting the same URL again does not hit the network.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry describes one cached document.
type Entry struct {
	URL       string
	Size      int
	FetchedAt time.Time
}

// Store manages the document cache database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the cache database at path, creating its parent
// directory and schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		url TEXT PRIMARY KEY,
		body BLOB NOT NULL,
		fetched_at TEXT NOT NULL
	)`)
	return err
}

// Get returns the cached body for url. The boolean is false when url is not
// cached.
func (s *Store) Get(url string) ([]byte, bool, error) {
	var body []byte
	err := s.db.QueryRow(`SELECT body FROM documents WHERE url = ?`, url).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry %s: %w", url, err)
	}
	return body, true, nil
}

// Put stores body for url, replacing any previous entry.
func (s *Store) Put(url string, body []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO documents (url, body, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		url, body, s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry %s: %w", url, err)
	}
	return nil
}

// List returns all entries, most recently fetched first.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT url, length(body), fetched_at FROM documents ORDER BY fetched_at DESC, url`)
	if err != nil {
		return nil, fmt.Errorf("listing cache: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var fetchedAt string
		if err := rows.Scan(&e.URL, &e.Size, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scanning cache entry: %w", err)
		}
		e.FetchedAt, _ = time.Parse(time.RFC3339, fetchedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear() (int, error) {
	res, err := s.db.Exec(`DELETE FROM documents`)
	if err != nil {
		return 0, fmt.Errorf("clearing cache: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}
