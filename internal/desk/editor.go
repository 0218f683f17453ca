package desk

import (
	"strings"

	"github.com/finite-collective/docdesk/pkg/docs"
)

// Editor is the embedded editing session: at most one active file, its
// working content and a modified flag. The session itself never touches the
// network; loading and saving run through the desk's command layer, and only
// a confirmed save clears modified.
type Editor struct {
	active   *docs.Node
	content  string
	modified bool
}

// NewEditor creates an empty editing session.
func NewEditor() *Editor {
	return &Editor{}
}

// ActiveFile returns the loaded file node, or nil.
func (e *Editor) ActiveFile() *docs.Node { return e.active }

// Content returns the working content.
func (e *Editor) Content() string { return e.content }

// Modified reports whether the working content differs from the last
// loaded or saved state.
func (e *Editor) Modified() bool { return e.modified }

// Guard reports whether a new file may be loaded. When unsaved changes exist
// and force is false it returns ErrUnsavedChanges and leaves the session
// untouched; the caller confirms with the user and retries with force.
func (e *Editor) Guard(force bool) error {
	if e.modified && !force {
		return docs.ErrUnsavedChanges
	}
	return nil
}

// Load replaces the session with freshly fetched content.
func (e *Editor) Load(node *docs.Node, content string) {
	e.active = node
	e.content = content
	e.modified = false
}

// Edit replaces the working content and marks the session modified.
func (e *Editor) Edit(content string) {
	if content == e.content {
		return
	}
	e.content = content
	e.modified = true
}

// Snapshot returns what a save must persist. Without an active file it
// returns ErrNoActiveFile.
func (e *Editor) Snapshot() (path, content string, meta docs.Metadata, err error) {
	if e.active == nil {
		return "", "", nil, docs.ErrNoActiveFile
	}
	meta = e.active.Metadata
	if meta == nil {
		meta = docs.Metadata{}
	}
	return e.active.Path, e.content, meta, nil
}

// MarkSaved clears the modified flag once a save is acknowledged. A failed
// save never reaches here, so the flag survives and the user can retry.
func (e *Editor) MarkSaved() {
	e.modified = false
}

// NormalizeDocName trims a user-entered name and ensures the documentation
// file extension.
func NormalizeDocName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Trim(name, "/")
	if name == "" {
		return ""
	}
	if !strings.HasSuffix(name, ".md") {
		name += ".md"
	}
	return name
}

func baseName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
