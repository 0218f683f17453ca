// Package cache provides the client-side document cache: entries keyed by
// document path, overwritten on every fetch or save and treated as absent
// once their TTL has elapsed.
package cache

import (
	"time"

	"github.com/finite-collective/docdesk/pkg/docs"
)

// DefaultTTL is how long a cached document stays valid.
const DefaultTTL = 24 * time.Hour

// Entry is one cached document.
type Entry struct {
	Content   string        `json:"content"`
	Metadata  docs.Metadata `json:"metadata"`
	Timestamp time.Time     `json:"timestamp"`
}

// Storage is the key-value layer beneath the cache. Keeping it an interface
// makes the TTL policy testable independent of the storage medium.
type Storage interface {
	// Load returns the entry for a key, reporting whether it was present.
	Load(key string) (Entry, bool)

	// Store unconditionally overwrites the entry for a key.
	Store(key string, entry Entry)

	// Delete removes the entry for a key if present.
	Delete(key string)
}

// Cache enforces the TTL policy over a Storage.
type Cache struct {
	storage Storage
	ttl     time.Duration
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides the default time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a cache over the given storage.
func New(storage Storage, opts ...Option) *Cache {
	c := &Cache{storage: storage, ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the entry for a document path, or ok=false when absent or
// expired. Expired entries are evicted on read; there is no background sweep.
func (c *Cache) Get(path string) (Entry, bool) {
	entry, ok := c.storage.Load(path)
	if !ok {
		return Entry{}, false
	}
	if c.now().Sub(entry.Timestamp) > c.ttl {
		c.storage.Delete(path)
		return Entry{}, false
	}
	return entry, true
}

// Put stores content and metadata for a document path, stamping the current
// time. Any previous entry is overwritten.
func (c *Cache) Put(path, content string, meta docs.Metadata) {
	c.storage.Store(path, Entry{
		Content:   content,
		Metadata:  meta,
		Timestamp: c.now(),
	})
}
