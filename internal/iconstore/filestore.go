package iconstore

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Mavwarf/iconforge/internal/paths"
)

// FileStore implements Store on a single JSON file written atomically.
// Reads are fail-open: a missing or corrupt file behaves as empty.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() []Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}

func (s *FileStore) save(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return paths.AtomicWrite(s.path, data)
}

func (s *FileStore) Record(e Entry) error {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	entries := s.load()
	entries = append(entries, e)
	return s.save(entries)
}

func (s *FileStore) Entries(days int) ([]Entry, error) {
	entries := s.load()
	if days <= 0 {
		return entries, nil
	}
	cutoff := DayCutoff(days)
	var out []Entry
	for _, e := range entries {
		if !e.Time.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *FileStore) Remove(name string) (int, error) {
	entries := s.load()
	kept := entries[:0]
	removed := 0
	for _, e := range entries {
		if e.Name == name {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.save(kept)
}

func (s *FileStore) Clean(days int) (int, error) {
	entries := s.load()
	cutoff := DayCutoff(days)
	kept := entries[:0]
	removed := 0
	for _, e := range entries {
		if e.Time.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.save(kept)
}

func (s *FileStore) Clear() error {
	return s.save(nil)
}

func (s *FileStore) Path() string {
	return s.path
}

// Close is a no-op; FileStore holds no open handles.
func (s *FileStore) Close() error {
	return nil
}
