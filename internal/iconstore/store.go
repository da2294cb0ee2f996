// Package iconstore records every icon iconforge writes, so `list` can
// show what exists and `clean` can prune old entries.
package iconstore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Mavwarf/iconforge/internal/paths"
)

// Sources for an Entry.
const (
	SourcePlaceholder = "placeholder"
	SourceWeb         = "web"
)

// Entry describes one generated or fetched icon file.
type Entry struct {
	Time   time.Time `json:"time"`
	Source string    `json:"source"` // "placeholder" | "web"
	Name   string    `json:"name"`   // file name or app name
	Size   int       `json:"size"`   // pixel edge length
	Path   string    `json:"path"`   // absolute or working-dir-relative output path
}

// Store abstracts icon-record storage. SQLiteStore is the default;
// FileStore is the fallback when the database cannot be opened.
type Store interface {
	Record(e Entry) error
	Entries(days int) ([]Entry, error) // 0 = all
	Remove(name string) (int, error)   // remove entries by name, return removed count
	Clean(days int) (int, error)       // remove entries older than days, return removed count
	Clear() error
	Path() string
	Close() error
}

// DayCutoff returns the timestamp days ago from now.
func DayCutoff(days int) time.Time {
	return time.Now().AddDate(0, 0, -days)
}

// Open returns the default store: SQLite at DataDir()/icons.db, falling
// back to the JSON FileStore next to it if SQLite cannot be opened.
func Open() (Store, error) {
	s, err := NewSQLiteStore(filepath.Join(paths.DataDir(), paths.CacheDBName))
	if err == nil {
		return s, nil
	}
	fmt.Fprintf(os.Stderr, "iconstore: sqlite unavailable (%v), using file store\n", err)
	return NewFileStore(filepath.Join(paths.DataDir(), paths.CacheFileName)), nil
}
