package store_test

import (
	"context"
	"testing"
	"time"
)

func TestWatch(t *testing.T) {
	s, _ := setupStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)

	if err := s.Write(ctx, "watched.md", "content", nil); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatal("event channel closed before event arrived")
			}
			if ev.Path == "watched.md" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for watch event")
		}
	}
}
