// Package docdesk is the composition root for the documentation desk.
//
// It ties the document store (Persistence Layer) to the HTTP file-service
// and the terminal desktop that browses it.
//
// Philosophy:
//
// Docdesk treats a directory of Markdown files as the single source of truth
// for a documentation site. Everything else derives from it: metadata lives
// in sidecar files next to the documents, reading times are computed from
// content, and the desktop UI is a pure view over the service.
//
// Features:
//
//   - **Local File-Service**: A small HTTP API over the document root with
//     health, tree listing, read and write operations.
//   - **Sidecar Metadata**: `<path>.meta.json` files merged with YAML
//     frontmatter and path-derived defaults.
//   - **Window Desktop**: Draggable, resizable, maximizable terminal windows
//     over a taskbar, hosting the tree, viewer, notes, metadata and editor.
//   - **Document Cache**: A 24 hour TTL cache so revisited pages render
//     instantly and survive restarts.
//   - **Offline Fallback**: A static tree keeps the desk usable when the
//     service is down.
//
// Usage:
//
//	st, err := docdesk.NewStore("./docs")
//	c := docdesk.NewClient("http://localhost:3001")
package docdesk
