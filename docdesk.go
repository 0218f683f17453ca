package docdesk

import (
	"log/slog"

	"github.com/finite-collective/docdesk/pkg/cache"
	"github.com/finite-collective/docdesk/pkg/client"
	"github.com/finite-collective/docdesk/pkg/docs"
	"github.com/finite-collective/docdesk/pkg/store"
)

// Version exposes the version of the library.
const Version = "0.1.0"

// --- Types ---

// Node is a public alias for a documentation tree node.
type Node = docs.Node

// Document is a public alias for a documentation file.
type Document = docs.Document

// Metadata is a public alias for document metadata.
type Metadata = docs.Metadata

// Client is a public alias for the file-service client.
type Client = client.Client

// Store is a public alias for the document store.
type Store = store.Store

// --- Errors ---

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = docs.ErrNotFound

// --- Constructors ---

// NewStore opens a document store over the given root directory.
func NewStore(root string, opts ...StoreOption) (*Store, error) {
	cfg := store.Config{Root: root, Logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return store.New(cfg)
}

// StoreOption configures NewStore.
type StoreOption func(*store.Config)

// WithIgnore excludes paths matching the glob patterns from the tree.
func WithIgnore(patterns ...string) StoreOption {
	return func(cfg *store.Config) { cfg.Ignore = patterns }
}

// WithLogger sets the store's logger.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(cfg *store.Config) { cfg.Logger = logger }
}

// NewClient creates a file-service client for the given base URL.
func NewClient(baseURL string) *Client {
	return client.New(baseURL)
}

// NewCache creates a document cache persisted at the given file path, with
// the default 24 hour TTL.
func NewCache(path string) (*cache.Cache, error) {
	storage, err := cache.NewFileStorage(path)
	if err != nil {
		return nil, err
	}
	return cache.New(storage), nil
}

// EstimateReadingTime reports a human-readable reading time for Markdown
// content, counting fenced code blocks at a slower pace.
func EstimateReadingTime(content string) string {
	return docs.EstimateReadingTime(content)
}
