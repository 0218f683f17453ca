package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/finite-collective/docdesk/pkg/docs"
)

func TestCacheTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := New(NewMemoryStorage(), WithClock(clock))

	c.Put("a.md", "# Hi", docs.Metadata{"author": "X"})

	t.Run("Hit Within TTL Is Idempotent", func(t *testing.T) {
		first, ok := c.Get("a.md")
		if !ok {
			t.Fatal("expected hit")
		}
		second, ok := c.Get("a.md")
		if !ok {
			t.Fatal("expected second hit")
		}
		if first.Content != second.Content || !first.Timestamp.Equal(second.Timestamp) {
			t.Errorf("repeated gets differ: %+v vs %+v", first, second)
		}
		if first.Metadata.Author() != "X" {
			t.Errorf("metadata lost: %v", first.Metadata)
		}
	})

	t.Run("Expired Entry Is Evicted on Read", func(t *testing.T) {
		now = now.Add(DefaultTTL + time.Minute)
		if _, ok := c.Get("a.md"); ok {
			t.Fatal("expected expired entry to miss")
		}
		// The read must have evicted the underlying entry.
		storage := c.storage.(*MemoryStorage)
		if _, ok := storage.Load("a.md"); ok {
			t.Error("expired entry still present in storage")
		}
	})

	t.Run("Put Overwrites", func(t *testing.T) {
		c.Put("b.md", "v1", nil)
		c.Put("b.md", "v2", nil)
		entry, ok := c.Get("b.md")
		if !ok || entry.Content != "v2" {
			t.Errorf("expected v2, got %+v ok=%v", entry, ok)
		}
	})

	t.Run("Absent Key Misses", func(t *testing.T) {
		if _, ok := c.Get("missing.md"); ok {
			t.Error("expected miss for absent key")
		}
	})
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "docs.json")

	s, err := NewFileStorage(path)
	if err != nil {
		t.Fatalf("NewFileStorage failed: %v", err)
	}
	s.Store("a.md", Entry{Content: "persisted", Timestamp: time.Now()})

	// A fresh storage over the same path sees the entry (session survival).
	s2, err := NewFileStorage(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	entry, ok := s2.Load("a.md")
	if !ok || entry.Content != "persisted" {
		t.Errorf("expected persisted entry, got %+v ok=%v", entry, ok)
	}

	s2.Delete("a.md")
	s3, err := NewFileStorage(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s3.Load("a.md"); ok {
		t.Error("deleted entry reappeared after reload")
	}
}
