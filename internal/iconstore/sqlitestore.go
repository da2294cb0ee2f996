package iconstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Mavwarf/iconforge/internal/paths"
)

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) a SQLite database at path and creates
// the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Set PRAGMAs before any DDL.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	ddl := `
CREATE TABLE IF NOT EXISTS icons (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp TEXT    NOT NULL,
    source    TEXT    NOT NULL,
    name      TEXT    NOT NULL,
    size      INTEGER NOT NULL DEFAULT 0,
    path      TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_icons_timestamp ON icons(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_icons_name      ON icons(name);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Record(e Entry) error {
	ts := e.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO icons (timestamp, source, name, size, path) VALUES (?, ?, ?, ?, ?)`,
		ts.Format(time.RFC3339), e.Source, e.Name, e.Size, e.Path,
	)
	return err
}

func (s *SQLiteStore) Entries(days int) ([]Entry, error) {
	query := `SELECT timestamp, source, name, size, path FROM icons`
	var args []any
	if days > 0 {
		query += ` WHERE timestamp >= ?`
		args = append(args, DayCutoff(days).Format(time.RFC3339))
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var tsStr string
		var e Entry
		if err := rows.Scan(&tsStr, &e.Source, &e.Name, &e.Size, &e.Path); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, tsStr)
		if err != nil {
			continue
		}
		e.Time = ts
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Remove(name string) (int, error) {
	res, err := s.db.Exec(`DELETE FROM icons WHERE name = ?`, name)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) Clean(days int) (int, error) {
	cutoff := DayCutoff(days).Format(time.RFC3339)
	res, err := s.db.Exec(`DELETE FROM icons WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM icons`)
	return err
}

func (s *SQLiteStore) Path() string {
	return s.path
}
