package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// MemoryStorage is a process-local Storage, used in tests and as a fallback
// when no cache file location is available.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string]Entry)}
}

func (m *MemoryStorage) Load(key string) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[key]
	return entry, ok
}

func (m *MemoryStorage) Store(key string, entry Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry
}

func (m *MemoryStorage) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// FileStorage persists entries to a single JSON file so cached documents
// survive across sessions. Every mutation rewrites the file; the working set
// is a handful of documentation pages, so simplicity wins over batching.
type FileStorage struct {
	mu      sync.Mutex
	path    string
	entries map[string]Entry
}

// NewFileStorage loads (or initializes) storage at the given file path.
// A missing or corrupt file starts empty rather than failing.
func NewFileStorage(path string) (*FileStorage, error) {
	s := &FileStorage{path: path, entries: make(map[string]Entry)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		s.entries = make(map[string]Entry)
	}
	return s, nil
}

func (f *FileStorage) Load(key string) (Entry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[key]
	return entry, ok
}

func (f *FileStorage) Store(key string, entry Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = entry
	f.flush()
}

func (f *FileStorage) Delete(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	f.flush()
}

// flush persists under the held lock; write failures leave the in-memory
// state authoritative for the session.
func (f *FileStorage) flush() {
	data, err := json.MarshalIndent(f.entries, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return
	}
	_ = os.Rename(tmp, f.path)
}
