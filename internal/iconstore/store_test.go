package iconstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// openStores returns one of each Store implementation rooted in a temp dir.
func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "icons.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { sqlStore.Close() })

	return map[string]Store{
		"sqlite": sqlStore,
		"file":   NewFileStore(filepath.Join(t.TempDir(), "icons.json")),
	}
}

func TestRecordAndEntries(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			e := Entry{
				Source: SourcePlaceholder,
				Name:   "32x32.png",
				Size:   32,
				Path:   "/tmp/icons/32x32.png",
			}
			if err := s.Record(e); err != nil {
				t.Fatalf("Record: %v", err)
			}
			if err := s.Record(Entry{Source: SourceWeb, Name: "myapp", Size: 256, Path: "/tmp/icons/myapp.png"}); err != nil {
				t.Fatalf("Record: %v", err)
			}

			entries, err := s.Entries(0)
			if err != nil {
				t.Fatalf("Entries: %v", err)
			}
			if len(entries) != 2 {
				t.Fatalf("len = %d, want 2", len(entries))
			}
			if entries[0].Name != "32x32.png" || entries[0].Source != SourcePlaceholder || entries[0].Size != 32 {
				t.Errorf("entry 0 = %+v", entries[0])
			}
			if entries[1].Name != "myapp" || entries[1].Source != SourceWeb {
				t.Errorf("entry 1 = %+v", entries[1])
			}
			if entries[0].Time.IsZero() {
				t.Error("store should stamp zero record times")
			}
		})
	}
}

func TestEntriesDayFilter(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			old := Entry{Time: time.Now().AddDate(0, 0, -30), Source: SourceWeb, Name: "old", Path: "old.png"}
			recent := Entry{Time: time.Now(), Source: SourceWeb, Name: "recent", Path: "recent.png"}
			for _, e := range []Entry{old, recent} {
				if err := s.Record(e); err != nil {
					t.Fatalf("Record: %v", err)
				}
			}

			entries, err := s.Entries(7)
			if err != nil {
				t.Fatalf("Entries: %v", err)
			}
			if len(entries) != 1 || entries[0].Name != "recent" {
				t.Errorf("entries = %+v, want only recent", entries)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, n := range []string{"a", "b", "a"} {
				if err := s.Record(Entry{Time: time.Now(), Source: SourceWeb, Name: n, Path: n + ".png"}); err != nil {
					t.Fatalf("Record: %v", err)
				}
			}

			removed, err := s.Remove("a")
			if err != nil {
				t.Fatalf("Remove: %v", err)
			}
			if removed != 2 {
				t.Errorf("removed = %d, want 2", removed)
			}

			entries, _ := s.Entries(0)
			if len(entries) != 1 || entries[0].Name != "b" {
				t.Errorf("entries = %+v, want only b", entries)
			}

			removed, err = s.Remove("missing")
			if err != nil {
				t.Fatalf("Remove missing: %v", err)
			}
			if removed != 0 {
				t.Errorf("removed = %d, want 0", removed)
			}
		})
	}
}

func TestClean(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			old := Entry{Time: time.Now().AddDate(0, 0, -30), Source: SourceWeb, Name: "old", Path: "old.png"}
			recent := Entry{Time: time.Now(), Source: SourceWeb, Name: "recent", Path: "recent.png"}
			for _, e := range []Entry{old, recent} {
				if err := s.Record(e); err != nil {
					t.Fatalf("Record: %v", err)
				}
			}

			removed, err := s.Clean(7)
			if err != nil {
				t.Fatalf("Clean: %v", err)
			}
			if removed != 1 {
				t.Errorf("removed = %d, want 1", removed)
			}
			entries, _ := s.Entries(0)
			if len(entries) != 1 || entries[0].Name != "recent" {
				t.Errorf("entries = %+v, want only recent", entries)
			}
		})
	}
}

func TestClear(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Record(Entry{Time: time.Now(), Source: SourceWeb, Name: "x", Path: "x.png"}); err != nil {
				t.Fatalf("Record: %v", err)
			}
			if err := s.Clear(); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			entries, err := s.Entries(0)
			if err != nil {
				t.Fatalf("Entries: %v", err)
			}
			if len(entries) != 0 {
				t.Errorf("entries = %+v, want empty", entries)
			}
		})
	}
}

func TestFileStoreCorruptFileIsEmpty(t *testing.T) {
	p := filepath.Join(t.TempDir(), "icons.json")
	if err := os.WriteFile(p, []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	s := NewFileStore(p)
	entries, err := s.Entries(0)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %+v, want empty for corrupt file", entries)
	}
	// Recording over a corrupt file rewrites it cleanly.
	if err := s.Record(Entry{Time: time.Now(), Source: SourceWeb, Name: "x", Path: "x.png"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	entries, _ = s.Entries(0)
	if len(entries) != 1 {
		t.Errorf("len = %d, want 1", len(entries))
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	p := filepath.Join(t.TempDir(), "icons.db")
	s, err := NewSQLiteStore(p)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := s.Record(Entry{Time: time.Now(), Source: SourcePlaceholder, Name: "keep", Size: 32, Path: "keep.png"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := NewSQLiteStore(p)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	entries, err := s2.Entries(0)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "keep" {
		t.Errorf("entries = %+v, want surviving record", entries)
	}
}
