// Package docs holds the documentation domain model: the file tree, document
// payloads, metadata and the reading-time estimate derived from content.
package docs

import (
	"sort"
	"strings"
)

// Kind discriminates the two node variants of the tree.
type Kind string

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
)

// Node is a folder or file in the documentation hierarchy.
//
// Kind is fixed at construction and never changes. A folder carries Children
// (insertion order is display order); a file carries Path (slash-separated,
// relative to the document root) and optionally Metadata. A file may hold
// inline note text in Notes or point at a second document via NotesPath, but
// never both.
type Node struct {
	Name      string   `json:"name"`
	Kind      Kind     `json:"type"`
	Path      string   `json:"path,omitempty"`
	Children  []*Node  `json:"children,omitempty"`
	Metadata  Metadata `json:"metadata,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	NotesPath string   `json:"notesPath,omitempty"`
}

// NewFolder constructs a folder node.
func NewFolder(name string, children []*Node) *Node {
	return &Node{Name: name, Kind: KindFolder, Children: children}
}

// NewFile constructs a file node.
func NewFile(name, path string, meta Metadata) *Node {
	return &Node{Name: name, Kind: KindFile, Path: path, Metadata: meta}
}

// IsFolder reports whether the node is a folder.
func (n *Node) IsFolder() bool { return n.Kind == KindFolder }

// IsFile reports whether the node is a file.
func (n *Node) IsFile() bool { return n.Kind == KindFile }

// FindByPath searches the tree depth-first and returns the first file node
// whose Path matches exactly, or nil when no node matches.
func FindByPath(tree []*Node, path string) *Node {
	for _, n := range tree {
		if n.IsFile() && n.Path == path {
			return n
		}
		if n.IsFolder() {
			if found := FindByPath(n.Children, path); found != nil {
				return found
			}
		}
	}
	return nil
}

// FirstFile returns the first file node in display order, or nil for a tree
// without files. The desk uses it for the initial selection.
func FirstFile(tree []*Node) *Node {
	for _, n := range tree {
		if n.IsFile() {
			return n
		}
		if found := FirstFile(n.Children); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits every node depth-first. The visitor returns false to stop.
func Walk(tree []*Node, visit func(*Node) bool) bool {
	for _, n := range tree {
		if !visit(n) {
			return false
		}
		if n.IsFolder() {
			if !Walk(n.Children, visit) {
				return false
			}
		}
	}
	return true
}

// Sort orders siblings at every level: folders before files, then by name,
// case-insensitive. Directory-scan order is platform-dependent, so the tree
// builder normalizes it here for deterministic output.
func Sort(tree []*Node) {
	sort.SliceStable(tree, func(i, j int) bool {
		a, b := tree[i], tree[j]
		if a.IsFolder() != b.IsFolder() {
			return a.IsFolder()
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	for _, n := range tree {
		if n.IsFolder() {
			Sort(n.Children)
		}
	}
}
