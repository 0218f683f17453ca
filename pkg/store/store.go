// Package store implements the file-service backend: a documentation vault
// rooted at a directory, with sidecar metadata, atomic writes and change
// notification.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/finite-collective/docdesk/pkg/docs"
)

// Config holds the configuration for the filesystem store.
type Config struct {
	Root   string
	Ignore []string // doublestar globs matched against root-relative paths
	Logger *slog.Logger
}

// Store serves a document root directory. Concurrent writers to the same
// path race and the later write wins; there is no locking by design.
type Store struct {
	root   string
	ignore []string
	logger *slog.Logger
}

// New creates a store over the given document root.
func New(cfg Config) (*Store, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve document root: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{root: root, ignore: cfg.Ignore, logger: logger}, nil
}

// Root returns the absolute document root path.
func (s *Store) Root() string { return s.root }

// Initialize ensures the document root exists.
func (s *Store) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("failed to create document root: %w", err)
	}
	return nil
}

// Health confirms the document root is accessible.
func (s *Store) Health(ctx context.Context) error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("document root inaccessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("document root is not a directory: %s", s.root)
	}
	return nil
}

// Tree walks the document root and returns the documentation hierarchy.
// Dotted entries and sidecar files never appear as nodes; sidecar metadata
// is merged into the owning file's node. Folders left empty after filtering
// are omitted. Siblings are sorted folders-first, then by name.
func (s *Store) Tree(ctx context.Context) ([]*docs.Node, error) {
	tree, err := s.buildTree(ctx, s.root, "")
	if err != nil {
		return nil, err
	}
	docs.Sort(tree)
	return tree, nil
}

func (s *Store) buildTree(ctx context.Context, dir, rel string) ([]*docs.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	var nodes []*docs.Node
	for _, entry := range entries {
		name := entry.Name()
		if s.skip(name) {
			continue
		}

		relPath := name
		if rel != "" {
			relPath = rel + "/" + name
		}
		if s.ignored(relPath) {
			continue
		}

		if entry.IsDir() {
			children, err := s.buildTree(ctx, filepath.Join(dir, name), relPath)
			if err != nil {
				return nil, err
			}
			if len(children) == 0 {
				continue
			}
			nodes = append(nodes, docs.NewFolder(name, children))
			continue
		}

		meta := s.fileMetadata(filepath.Join(dir, name), relPath)
		node := docs.NewFile(name, relPath, meta)
		if notesPath, ok := meta["notesPath"].(string); ok {
			node.NotesPath = notesPath
		}
		if notes, ok := meta["notes"].(string); ok && node.NotesPath == "" {
			node.Notes = notes
		}
		nodes = append(nodes, node)
	}

	return nodes, nil
}

// fileMetadata merges derived defaults, frontmatter and the sidecar, the
// sidecar winning. Metadata absence is not an error; a malformed sidecar is
// logged and counts as empty.
func (s *Store) fileMetadata(fullPath, relPath string) docs.Metadata {
	derived := docs.Metadata{}
	var front docs.Metadata

	if data, err := os.ReadFile(fullPath); err == nil {
		content := string(data)
		derived = deriveMetadata(relPath, content)
		front, _ = parseFrontmatter(content)
	}

	sidecar, err := ReadSidecar(fullPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("ignoring malformed sidecar", "path", relPath, "error", err)
	}

	return mergeMetadata(derived, front, sidecar)
}

// Read returns the document at the given root-relative path.
func (s *Store) Read(ctx context.Context, path string) (docs.Document, error) {
	fullPath, err := s.resolve(path)
	if err != nil {
		return docs.Document{}, err
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return docs.Document{}, fmt.Errorf("%w: %s", docs.ErrNotFound, path)
		}
		return docs.Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return docs.Document{
		Path:     path,
		Content:  string(data),
		Metadata: s.fileMetadata(fullPath, path),
	}, nil
}

// Write persists content at the given root-relative path, creating parent
// directories as needed, and serializes metadata to the sidecar when
// supplied. Existing files are overwritten unconditionally.
func (s *Store) Write(ctx context.Context, path, content string, meta docs.Metadata) error {
	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if err := writeFileAtomic(fullPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if meta != nil {
		if err := writeSidecar(fullPath, meta); err != nil {
			return fmt.Errorf("failed to write sidecar for %s: %w", path, err)
		}
	}

	s.logger.Debug("document written", "path", path, "bytes", len(content))
	return nil
}

// skip filters entries that never become nodes: hidden files and sidecars.
func (s *Store) skip(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasSuffix(name, MetaSuffix)
}

func (s *Store) ignored(relPath string) bool {
	for _, pattern := range s.ignore {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
	}
	return false
}

// resolve joins a root-relative path onto the root and rejects escapes.
func (s *Store) resolve(path string) (string, error) {
	cleaned := filepath.Clean("/" + filepath.FromSlash(path))
	full := filepath.Join(s.root, cleaned)
	if full != s.root && !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes document root: %s", path)
	}
	return full, nil
}
