package store_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/finite-collective/docdesk/pkg/docs"
	"github.com/finite-collective/docdesk/pkg/store"
)

func setupStore(t *testing.T, ignore ...string) (*store.Store, string) {
	t.Helper()

	root := t.TempDir()
	s, err := store.New(store.Config{Root: root, Ignore: ignore})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s, root
}

func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestTree(t *testing.T) {
	ctx := context.Background()

	t.Run("Skips Hidden and Sidecar Entries", func(t *testing.T) {
		s, root := setupStore(t)
		writeFixture(t, root, "README.md", "# Hello")
		writeFixture(t, root, "README.md.meta.json", `{"author":"X"}`)
		writeFixture(t, root, ".hidden.md", "secret")
		writeFixture(t, root, ".git/config", "")

		tree, err := s.Tree(ctx)
		if err != nil {
			t.Fatalf("Tree failed: %v", err)
		}
		if len(tree) != 1 {
			t.Fatalf("expected 1 node, got %d", len(tree))
		}
		if tree[0].Name != "README.md" || !tree[0].IsFile() {
			t.Errorf("unexpected node: %+v", tree[0])
		}
		if tree[0].Metadata.Author() != "X" {
			t.Errorf("sidecar metadata not merged: %v", tree[0].Metadata)
		}
	})

	t.Run("Omits Folders Left Empty After Filtering", func(t *testing.T) {
		s, root := setupStore(t)
		writeFixture(t, root, "keep/a.md", "content")
		writeFixture(t, root, "drop/.hidden", "")
		if err := os.MkdirAll(filepath.Join(root, "empty"), 0755); err != nil {
			t.Fatal(err)
		}

		tree, err := s.Tree(ctx)
		if err != nil {
			t.Fatalf("Tree failed: %v", err)
		}
		if len(tree) != 1 || tree[0].Name != "keep" {
			t.Fatalf("expected only 'keep', got %d nodes", len(tree))
		}
	})

	t.Run("Sorts Folders First Then Alphabetical", func(t *testing.T) {
		s, root := setupStore(t)
		writeFixture(t, root, "zebra.md", "z")
		writeFixture(t, root, "apple.md", "a")
		writeFixture(t, root, "sub/inner.md", "i")

		tree, err := s.Tree(ctx)
		if err != nil {
			t.Fatalf("Tree failed: %v", err)
		}
		got := []string{tree[0].Name, tree[1].Name, tree[2].Name}
		want := []string{"sub", "apple.md", "zebra.md"}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
			}
		}
	})

	t.Run("File Paths Are Unique and Resolvable", func(t *testing.T) {
		s, root := setupStore(t)
		writeFixture(t, root, "a.md", "a")
		writeFixture(t, root, "x/a.md", "nested a")
		writeFixture(t, root, "x/y/a.md", "deeper a")

		tree, err := s.Tree(ctx)
		if err != nil {
			t.Fatalf("Tree failed: %v", err)
		}

		seen := map[string]bool{}
		docs.Walk(tree, func(n *docs.Node) bool {
			if n.IsFile() {
				if seen[n.Path] {
					t.Errorf("duplicate path %s", n.Path)
				}
				seen[n.Path] = true
				if docs.FindByPath(tree, n.Path) != n {
					t.Errorf("path %s does not resolve to its node", n.Path)
				}
			}
			return true
		})
		if len(seen) != 3 {
			t.Errorf("expected 3 files, got %d", len(seen))
		}
	})

	t.Run("Honors Ignore Globs", func(t *testing.T) {
		s, root := setupStore(t, "drafts/**")
		writeFixture(t, root, "a.md", "a")
		writeFixture(t, root, "drafts/b.md", "b")

		tree, err := s.Tree(ctx)
		if err != nil {
			t.Fatalf("Tree failed: %v", err)
		}
		if docs.FindByPath(tree, "drafts/b.md") != nil {
			t.Error("ignored path appeared in tree")
		}
		if docs.FindByPath(tree, "a.md") == nil {
			t.Error("expected a.md in tree")
		}
	})
}

func TestReadWrite(t *testing.T) {
	ctx := context.Background()

	t.Run("Round Trip With Metadata", func(t *testing.T) {
		s, _ := setupStore(t)
		meta := docs.Metadata{"author": "X", "difficulty": "Advanced"}

		if err := s.Write(ctx, "guide/new.md", "# Title", meta); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		doc, err := s.Read(ctx, "guide/new.md")
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if doc.Content != "# Title" {
			t.Errorf("content: got %q", doc.Content)
		}
		if doc.Metadata.Author() != "X" || doc.Metadata.Difficulty() != "Advanced" {
			t.Errorf("metadata not round-tripped: %v", doc.Metadata)
		}
	})

	t.Run("Missing Document Is NotFound", func(t *testing.T) {
		s, _ := setupStore(t)
		_, err := s.Read(ctx, "nope.md")
		if !errors.Is(err, docs.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Last Writer Wins", func(t *testing.T) {
		s, _ := setupStore(t)
		if err := s.Write(ctx, "a.md", "first", nil); err != nil {
			t.Fatal(err)
		}
		if err := s.Write(ctx, "a.md", "second", nil); err != nil {
			t.Fatal(err)
		}
		doc, err := s.Read(ctx, "a.md")
		if err != nil {
			t.Fatal(err)
		}
		if doc.Content != "second" {
			t.Errorf("got %q, want second", doc.Content)
		}
	})

	t.Run("Rejects Escaping Paths", func(t *testing.T) {
		s, root := setupStore(t)
		// A rejection or a write confined to the root are both fine;
		// the file must not land outside.
		_ = s.Write(ctx, "../outside.md", "x", nil)
		if _, err := os.Stat(filepath.Join(root, "..", "outside.md")); err == nil {
			t.Error("write escaped the document root")
		}
	})

	t.Run("Malformed Sidecar Treated As Empty", func(t *testing.T) {
		s, root := setupStore(t)
		writeFixture(t, root, "doc.md", "plain content")
		writeFixture(t, root, "doc.md.meta.json", "{not json")

		doc, err := s.Read(ctx, "doc.md")
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if doc.Metadata.Author() != "" {
			t.Errorf("expected no author, got %q", doc.Metadata.Author())
		}
	})

	t.Run("Frontmatter Merged Under Sidecar", func(t *testing.T) {
		s, root := setupStore(t)
		writeFixture(t, root, "doc.md", "---\nauthor: FromFront\ntopic: trees\n---\nbody")
		writeFixture(t, root, "doc.md.meta.json", `{"author":"FromSidecar"}`)

		doc, err := s.Read(ctx, "doc.md")
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if doc.Metadata.Author() != "FromSidecar" {
			t.Errorf("sidecar should win: got %q", doc.Metadata.Author())
		}
		if doc.Metadata["topic"] != "trees" {
			t.Errorf("frontmatter key lost: %v", doc.Metadata)
		}
	})
}

func TestReadSidecar(t *testing.T) {
	root := t.TempDir()
	docPath := filepath.Join(root, "a.md")

	t.Run("Missing Is ErrNotExist", func(t *testing.T) {
		_, err := store.ReadSidecar(docPath)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected fs.ErrNotExist, got %v", err)
		}
	})

	t.Run("Malformed Is a Parse Error", func(t *testing.T) {
		if err := os.WriteFile(store.SidecarPath(docPath), []byte("{oops"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := store.ReadSidecar(docPath)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected parse error, got %v", err)
		}
	})
}

func TestHealth(t *testing.T) {
	ctx := context.Background()

	s, _ := setupStore(t)
	if err := s.Health(ctx); err != nil {
		t.Errorf("expected healthy store, got %v", err)
	}

	missing, err := store.New(store.Config{Root: filepath.Join(t.TempDir(), "gone")})
	if err != nil {
		t.Fatal(err)
	}
	if err := missing.Health(ctx); err == nil {
		t.Error("expected health failure for missing root")
	}
}
